package posts

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sidelines/sidelines/cmd/cli/client"
	"github.com/sidelines/sidelines/cmd/cli/config"
	"github.com/sidelines/sidelines/cmd/cli/output"
	"github.com/sidelines/sidelines/cmd/cli/root"
	"github.com/sidelines/sidelines/internal/models"
)

// ==========================
// Init Posts
// ==========================
func InitPosts(rootCmd *cobra.Command) {
	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "Read and write forum posts",
	}

	postsCmd.AddCommand(
		listPostsCmd(),
		createPostCmd(),
		deletePostCmd(),
		likePostCmd(),
		commentCmd(),
	)

	rootCmd.AddCommand(postsCmd)
}

// ==========================
// LIST
// ==========================
func listPostsCmd() *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("page", strconv.Itoa(page))
			q.Set("limit", strconv.Itoa(limit))

			var posts []models.Post
			if err := client.Do(cmd.Context(), http.MethodGet, "/api/posts?"+q.Encode(), "", nil, &posts); err != nil {
				return err
			}
			if root.WantsJSON(cmd) {
				return output.PrintJSON(cmd.OutOrStdout(), posts)
			}

			rows := make([][]any, 0, len(posts))
			for _, p := range posts {
				rows = append(rows, []any{p.ID, p.Title, p.Username, p.Likes, len(p.Comments), p.CreatedAt.Format("2006-01-02 15:04")})
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Title", "Author", "Likes", "Comments", "Posted"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 10, "posts per page")
	return cmd
}

// ==========================
// CREATE
// ==========================
func createPostCmd() *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.LoadToken()
			if err != nil {
				return err
			}
			var resp struct {
				PostID int `json:"post_id"`
			}
			payload := map[string]string{"title": title, "content": content}
			if err := client.Do(cmd.Context(), http.MethodPost, "/api/posts", token, payload, &resp); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created post %d\n", resp.PostID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "post title")
	cmd.Flags().StringVar(&content, "content", "", "post body")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

// ==========================
// DELETE
// ==========================
func deletePostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete one of your posts",
		Args:  postIDArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return authedMessage(cmd, http.MethodDelete, "/api/posts/"+args[0], nil)
		},
	}
}

func likePostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "like [id]",
		Short: "Like a post",
		Args:  postIDArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return authedMessage(cmd, http.MethodPost, "/api/posts/"+args[0]+"/like", nil)
		},
	}
}

func commentCmd() *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "comment [id]",
		Short: "Comment on a post",
		Args:  postIDArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return authedMessage(cmd, http.MethodPost, "/api/posts/"+args[0]+"/comments", map[string]string{"content": content})
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "comment text")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func postIDArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	if id, err := strconv.Atoi(args[0]); err != nil || id <= 0 {
		return fmt.Errorf("invalid post id %q", args[0])
	}
	return nil
}

// authedMessage sends an authenticated request and prints the API's message.
func authedMessage(cmd *cobra.Command, method, path string, payload any) error {
	token, err := config.LoadToken()
	if err != nil {
		return err
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := client.Do(cmd.Context(), method, path, token, payload, &resp); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
	return nil
}
