// Version command for the linkdeck CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linkdecklabs/linkdeck/pkg/linkdeck"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the linkdeck version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("linkdeck", linkdeck.Version)
	},
}
