// Links add command creates a new link.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linkdecklabs/linkdeck/pkg/types"
)

var (
	addTitle       string
	addURL         string
	addDescription string
	addIcon        string
	addColor       string
)

var linksAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a link to your page",
	Long: `Add creates a new link at the end of your page. A bare domain is
accepted and gets an https:// prefix.

Example:
  linkdeck links add --title "My blog" --url blog.example.com
  linkdeck links add --title GitHub --url https://github.com/ada --icon github`,
	Args: cobra.NoArgs,
	RunE: runLinksAdd,
}

func init() {
	linksAddCmd.Flags().StringVar(&addTitle, "title", "", "link title (required)")
	linksAddCmd.Flags().StringVar(&addURL, "url", "", "destination URL (required)")
	linksAddCmd.Flags().StringVar(&addDescription, "description", "", "short description")
	linksAddCmd.Flags().StringVar(&addIcon, "icon", "", "icon name")
	linksAddCmd.Flags().StringVar(&addColor, "color", "", "accent color")
	_ = linksAddCmd.MarkFlagRequired("title")
	_ = linksAddCmd.MarkFlagRequired("url")
}

func runLinksAdd(cmd *cobra.Command, args []string) error {
	mgr, err := invokeManager()
	if err != nil {
		return err
	}

	draft := types.LinkDraft{
		Title:       addTitle,
		URL:         addURL,
		Description: addDescription,
		Icon:        addIcon,
		Color:       addColor,
	}
	created, err := mgr.Create(cmd.Context(), draft)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(created)
	}
	fmt.Printf("Added %q -> %s (%s)\n", created.Title, created.URL, created.ID)
	return nil
}
