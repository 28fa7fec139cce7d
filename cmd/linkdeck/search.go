// Search command looks up public profiles by name.
package main

import (
	"fmt"
	"strings"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/linkdecklabs/linkdeck/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search public profiles",
	Long: `Search finds public profiles whose username or name matches the
query. Queries need at least a few characters.

Example:
  linkdeck search ada`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	pipeline, err := do.Invoke[*search.Pipeline](injector)
	if err != nil {
		return err
	}

	// The pipeline settles through debounce, commit and fetch; wait for
	// the state that ends the sequence for this query.
	done := make(chan search.Snapshot, 1)
	unsubscribe := pipeline.Subscribe(func(snap search.Snapshot) {
		switch snap.State {
		case search.StateResults, search.StateEmpty, search.StateError, search.StateTooShort, search.StateIdle:
			select {
			case done <- snap:
			default:
			}
		}
	})
	defer unsubscribe()

	pipeline.Input(strings.Join(args, " "))

	var snap search.Snapshot
	select {
	case snap = <-done:
	case <-cmd.Context().Done():
		return cmd.Context().Err()
	}

	switch snap.State {
	case search.StateTooShort:
		return fmt.Errorf("query too short")
	case search.StateIdle:
		return fmt.Errorf("empty query")
	case search.StateError:
		return snap.Err
	case search.StateEmpty:
		fmt.Println("No profiles found")
		return nil
	}

	if flagJSON {
		return printJSON(snap.Results)
	}
	for _, hit := range snap.Results {
		name := hit.Name
		if name == "" {
			name = hit.Username
		}
		fmt.Printf("@%-20s %-30s %d links\n", hit.Username, truncate(name, 30), hit.Count.Links)
	}
	return nil
}
