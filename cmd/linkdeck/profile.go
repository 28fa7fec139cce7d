// Profile command shows a public page by username.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linkdecklabs/linkdeck/pkg/types"
)

var profileCmd = &cobra.Command{
	Use:   "profile <username>",
	Short: "Show a public linkdeck page",
	Long: `Profile fetches the public page for a username, the same view a
visitor gets. No login is needed.

Example:
  linkdeck profile ada`,
	Args: cobra.ExactArgs(1),
	RunE: runProfile,
}

func runProfile(cmd *cobra.Command, args []string) error {
	client, err := invokeClient()
	if err != nil {
		return err
	}

	profile, err := client.PublicProfile(cmd.Context(), args[0])
	if errors.Is(err, types.ErrProfileNotFound) {
		return fmt.Errorf("no page for @%s: %w", args[0], err)
	}
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(profile)
	}
	fmt.Printf("@%s", profile.Username)
	if profile.Name != "" {
		fmt.Printf(" (%s)", profile.Name)
	}
	fmt.Println()
	if profile.Bio != "" {
		fmt.Println(profile.Bio)
	}
	for i, l := range profile.Links {
		fmt.Printf("%2d. %-30s %s\n", i+1, truncate(l.Title, 30), l.URL)
	}
	return nil
}
