// Links rm command deletes a link.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmYes bool

var linksRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a link",
	Long: `Rm deletes a link permanently. Prompts for confirmation unless --yes
is given.

Example:
  linkdeck links rm abc123
  linkdeck links rm abc123 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runLinksRm,
}

func init() {
	linksRmCmd.Flags().BoolVar(&rmYes, "yes", false, "skip the confirmation prompt")
}

func runLinksRm(cmd *cobra.Command, args []string) error {
	if !rmYes {
		ok, err := confirm(fmt.Sprintf("Delete link %s?", args[0]))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted")
			return nil
		}
	}

	mgr, err := invokeManager()
	if err != nil {
		return err
	}
	if err := mgr.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Printf("Deleted %s\n", args[0])
	return nil
}
