// Links parent command groups link collection subcommands.
package main

import (
	"github.com/spf13/cobra"
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Manage your link collection",
}

func init() {
	linksCmd.AddCommand(linksListCmd)
	linksCmd.AddCommand(linksAddCmd)
	linksCmd.AddCommand(linksUpdateCmd)
	linksCmd.AddCommand(linksRmCmd)
	linksCmd.AddCommand(linksEnableCmd)
	linksCmd.AddCommand(linksDisableCmd)
	linksCmd.AddCommand(linksReorderCmd)
}
