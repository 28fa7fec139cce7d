// Open command records a click and prints the destination.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:     "open <link-id>",
	Aliases: []string{"click"},
	Short:   "Record a click and print the destination URL",
	Long: `Open records a click against a link, the same way a visitor tapping
it would, and prints the destination URL.

Example:
  linkdeck open abc123`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func runOpen(cmd *cobra.Command, args []string) error {
	client, err := invokeClient()
	if err != nil {
		return err
	}

	result, err := client.TrackClick(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(result)
	}
	fmt.Println(result.URL)
	return nil
}
