// Logout command clears the stored session.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the local session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		guard, err := invokeGuard()
		if err != nil {
			return err
		}
		if err := guard.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}
