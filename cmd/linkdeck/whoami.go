// Whoami command shows the current session's user.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linkdecklabs/linkdeck/pkg/types"
)

var whoamiRefresh bool

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	whoamiCmd.Flags().BoolVar(&whoamiRefresh, "refresh", false, "fetch the profile from the server instead of the local session")
}

func runWhoami(cmd *cobra.Command, args []string) error {
	guard, err := invokeGuard()
	if err != nil {
		return err
	}

	var user types.User
	if whoamiRefresh {
		user, err = guard.RefreshUser(cmd.Context())
		if err != nil {
			return err
		}
	} else {
		var ok bool
		user, ok = guard.CurrentUser()
		if !ok {
			return types.ErrNotAuthenticated
		}
	}

	if flagJSON {
		return printJSON(user)
	}
	fmt.Printf("%s (@%s)\n", user.Email, user.Username)
	if user.Name != "" {
		fmt.Printf("Name: %s\n", user.Name)
	}
	if user.Bio != "" {
		fmt.Printf("Bio: %s\n", user.Bio)
	}
	return nil
}
