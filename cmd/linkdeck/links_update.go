// Links update command edits an existing link.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linkdecklabs/linkdeck/pkg/types"
)

var (
	updateTitle       string
	updateURL         string
	updateDescription string
	updateIcon        string
	updateColor       string
)

var linksUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a link",
	Long: `Update edits a link. Only the flags you pass are sent; everything
else is left untouched.

Example:
  linkdeck links update abc123 --title "New title"
  linkdeck links update abc123 --url blog.example.com --color "#ff6600"`,
	Args: cobra.ExactArgs(1),
	RunE: runLinksUpdate,
}

func init() {
	linksUpdateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	linksUpdateCmd.Flags().StringVar(&updateURL, "url", "", "new destination URL")
	linksUpdateCmd.Flags().StringVar(&updateDescription, "description", "", "new description")
	linksUpdateCmd.Flags().StringVar(&updateIcon, "icon", "", "new icon name")
	linksUpdateCmd.Flags().StringVar(&updateColor, "color", "", "new accent color")
}

func runLinksUpdate(cmd *cobra.Command, args []string) error {
	mgr, err := invokeManager()
	if err != nil {
		return err
	}

	var patch types.LinkPatch
	if cmd.Flags().Changed("title") {
		patch.Title = &updateTitle
	}
	if cmd.Flags().Changed("url") {
		patch.URL = &updateURL
	}
	if cmd.Flags().Changed("description") {
		patch.Description = &updateDescription
	}
	if cmd.Flags().Changed("icon") {
		patch.Icon = &updateIcon
	}
	if cmd.Flags().Changed("color") {
		patch.Color = &updateColor
	}
	if patch == (types.LinkPatch{}) {
		return fmt.Errorf("nothing to update; pass at least one field flag")
	}

	updated, err := mgr.Update(cmd.Context(), args[0], patch)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(updated)
	}
	fmt.Printf("Updated %q (%s)\n", updated.Title, updated.ID)
	return nil
}
