// Links enable/disable commands flip a link's visibility.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var linksEnableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Show a link on your public page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetActive(cmd, args[0], true)
	},
}

var linksDisableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Hide a link from your public page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetActive(cmd, args[0], false)
	},
}

func runSetActive(cmd *cobra.Command, id string, active bool) error {
	mgr, err := invokeManager()
	if err != nil {
		return err
	}

	updated, err := mgr.SetActive(cmd.Context(), id, active)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(updated)
	}
	verb := "Enabled"
	if !active {
		verb = "Disabled"
	}
	fmt.Printf("%s %q (%s)\n", verb, updated.Title, updated.ID)
	return nil
}
