// Root command for the linkdeck CLI.
package main

import (
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/linkdecklabs/linkdeck/internal/cache"
	"github.com/linkdecklabs/linkdeck/internal/di"
	"github.com/linkdecklabs/linkdeck/internal/search"
	"github.com/linkdecklabs/linkdeck/internal/store"
	"github.com/linkdecklabs/linkdeck/pkg/linkdeck"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// injector holds the wired client core, built by PersistentPreRunE and
// torn down by PersistentPostRunE.
var injector do.Injector

var rootCmd = &cobra.Command{
	Use:     "linkdeck",
	Short:   "Linkdeck manages your link-in-bio page from the terminal",
	Version: linkdeck.Version,
	Long: `Linkdeck is a client for the linkdeck API. It keeps a local cache of
your link collection so reads are fast and survive being offline, and it
pushes edits to the server as you make them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		injector = di.NewContainer(di.Params{
			ConfigDir: flagConfigDir,
			DataDir:   flagDataDir,
		})

		// Build the core eagerly so configuration and storage problems
		// surface before the subcommand runs.
		if _, err := do.Invoke[*store.Store](injector); err != nil {
			return err
		}
		if _, err := do.Invoke[*cache.Cache](injector); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeCore()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: platform data dir)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(linksCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(meCmd)
}

// closeCore shuts the client core down in dependency order: pipeline
// first so its timer stops, then the cache so background refetches
// drain, then the store.
func closeCore() error {
	if injector == nil {
		return nil
	}
	if p, err := do.Invoke[*search.Pipeline](injector); err == nil {
		p.Close()
	}
	if c, err := do.Invoke[*cache.Cache](injector); err == nil {
		c.Close()
	}
	if st, err := do.Invoke[*store.Store](injector); err == nil {
		return st.Close()
	}
	return nil
}
