package auth

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/sidelines/sidelines/cmd/cli/client"
	"github.com/sidelines/sidelines/cmd/cli/config"
	"github.com/sidelines/sidelines/cmd/cli/output"
	"github.com/sidelines/sidelines/cmd/cli/root"
	"github.com/sidelines/sidelines/internal/models"
)

// InitAuth registers signup, login, logout and whoami on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(signupCmd(), loginCmd(), logoutCmd(), whoamiCmd())
}

// ==========================
// Signup
// ==========================
func signupCmd() *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				UserID int `json:"user_id"`
			}
			payload := map[string]string{"username": username, "email": email, "password": password}
			if err := client.Do(cmd.Context(), http.MethodPost, "/api/signup", "", payload, &resp); err != nil {
				return fmt.Errorf("signup failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered user %d. Run `sidelines login` to get a token.\n", resp.UserID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	for _, f := range []string{"username", "email", "password"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

// ==========================
// Login
// ==========================

// loginCmd logs in and stores the JWT for subsequent commands.
func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store a token locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				Token string `json:"token"`
				User  struct {
					Username string `json:"username"`
				} `json:"user"`
			}
			payload := map[string]string{"email": email, "password": password}
			if err := client.Do(cmd.Context(), http.MethodPost, "/api/login", "", payload, &resp); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if resp.Token == "" {
				return fmt.Errorf("login succeeded but no token returned")
			}
			if err := config.SaveToken(resp.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s. Token stored locally.\n", resp.User.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ClearToken(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.LoadToken()
			if err != nil {
				return err
			}
			var me models.PublicUser
			if err := client.Do(cmd.Context(), http.MethodGet, "/api/me", token, nil, &me); err != nil {
				return err
			}
			if root.WantsJSON(cmd) {
				return output.PrintJSON(cmd.OutOrStdout(), me)
			}
			output.RenderTable(cmd.OutOrStdout(),
				[]string{"ID", "Username", "Email", "Joined"},
				[][]any{{me.ID, me.Username, me.Email, me.CreatedAt.Format("2006-01-02")}},
			)
			return nil
		},
	}
}
