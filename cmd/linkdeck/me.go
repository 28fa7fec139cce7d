// Me command edits the current user's profile settings.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linkdecklabs/linkdeck/pkg/types"
)

var (
	meName   string
	meBio    string
	meAvatar string
	meTheme  string
)

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Update your profile settings",
	Long: `Me updates profile settings on your account. Only the flags you pass
are sent.

Example:
  linkdeck me --name "Ada L." --bio "links and levers"
  linkdeck me --theme dark`,
	Args: cobra.NoArgs,
	RunE: runMe,
}

func init() {
	meCmd.Flags().StringVar(&meName, "name", "", "display name")
	meCmd.Flags().StringVar(&meBio, "bio", "", "short bio shown on your page")
	meCmd.Flags().StringVar(&meAvatar, "avatar", "", "avatar image URL")
	meCmd.Flags().StringVar(&meTheme, "theme", "", "page theme")
}

func runMe(cmd *cobra.Command, args []string) error {
	guard, err := invokeGuard()
	if err != nil {
		return err
	}
	if !guard.IsAuthenticated() {
		return types.ErrNotAuthenticated
	}

	var patch types.UserPatch
	if cmd.Flags().Changed("name") {
		patch.Name = &meName
	}
	if cmd.Flags().Changed("bio") {
		patch.Bio = &meBio
	}
	if cmd.Flags().Changed("avatar") {
		patch.Avatar = &meAvatar
	}
	if cmd.Flags().Changed("theme") {
		patch.Theme = &meTheme
	}
	if patch == (types.UserPatch{}) {
		return fmt.Errorf("nothing to update; pass at least one field flag")
	}

	client, err := invokeClient()
	if err != nil {
		return err
	}
	if _, err := client.UpdateMe(cmd.Context(), patch); err != nil {
		return err
	}

	// Refresh the stored session copy so whoami reflects the change.
	user, err := guard.RefreshUser(cmd.Context())
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(user)
	}
	fmt.Printf("Profile updated for @%s\n", user.Username)
	return nil
}
