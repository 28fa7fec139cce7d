// Register command creates an account and logs straight in.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linkdecklabs/linkdeck/pkg/types"
)

var (
	registerEmail    string
	registerUsername string
	registerPassword string
	registerConfirm  string
	registerName     string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new linkdeck account",
	Long: `Register creates an account and establishes a session. The username
becomes your public page path, so it is limited to letters, digits,
hyphens and underscores.

Example:
  linkdeck register --email ada@example.com --username ada --password hunter22 --confirm-password hunter22`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "account email (required)")
	registerCmd.Flags().StringVar(&registerUsername, "username", "", "public username (required)")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "password, at least 6 characters (required)")
	registerCmd.Flags().StringVar(&registerConfirm, "confirm-password", "", "password again (required)")
	registerCmd.Flags().StringVar(&registerName, "name", "", "display name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("confirm-password")
}

func runRegister(cmd *cobra.Command, args []string) error {
	guard, err := invokeGuard()
	if err != nil {
		return err
	}

	form := types.RegisterForm{
		Email:           registerEmail,
		Username:        registerUsername,
		Password:        registerPassword,
		ConfirmPassword: registerConfirm,
		Name:            registerName,
	}
	if err := guard.Register(cmd.Context(), form); err != nil {
		return err
	}

	user, _ := guard.CurrentUser()
	if flagJSON {
		return printJSON(user)
	}
	fmt.Printf("Account created. Logged in as %s (@%s)\n", user.Email, user.Username)
	return nil
}
