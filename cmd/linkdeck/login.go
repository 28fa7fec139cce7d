// Login command establishes a session with the remote API.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linkdecklabs/linkdeck/pkg/types"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to your linkdeck account",
	Long: `Login authenticates against the API and stores the session token
locally, so later commands run as you until you log out.

Example:
  linkdeck login --email ada@example.com --password hunter22`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email (required)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (required)")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	guard, err := invokeGuard()
	if err != nil {
		return err
	}

	form := types.LoginForm{Email: loginEmail, Password: loginPassword}
	if err := guard.Login(cmd.Context(), form); err != nil {
		return err
	}

	user, _ := guard.CurrentUser()
	if flagJSON {
		return printJSON(user)
	}
	fmt.Printf("Logged in as %s (@%s)\n", user.Email, user.Username)
	return nil
}
