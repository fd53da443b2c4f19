package main

import (
	"fmt"
	"os"

	"github.com/sidelines/sidelines/cmd/cli/auth"
	"github.com/sidelines/sidelines/cmd/cli/posts"
	"github.com/sidelines/sidelines/cmd/cli/root"
	"github.com/sidelines/sidelines/cmd/cli/transfers"
)

func main() {
	rootCmd := root.New()
	auth.InitAuth(rootCmd)
	posts.InitPosts(rootCmd)
	transfers.InitTransfers(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
