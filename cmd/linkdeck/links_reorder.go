// Links reorder command rearranges the link collection.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linkdecklabs/linkdeck/internal/links"
)

var (
	reorderFrom   int
	reorderTo     int
	reorderFilter string
	reorderAll    bool
)

var linksReorderCmd = &cobra.Command{
	Use:   "reorder [id...]",
	Short: "Rearrange your links",
	Long: `Reorder rearranges the links on your page. Pass link IDs in the
desired order, or move a single link with --from and --to (1-based
positions in the list you currently see, so --filter and --all narrow
it the same way they narrow list).

The submitted order covers the links you can see; links outside the
current view keep their place.

Example:
  linkdeck links reorder id3 id1 id2
  linkdeck links reorder --from 5 --to 1
  linkdeck links reorder --filter github --from 2 --to 1`,
	RunE: runLinksReorder,
}

func init() {
	linksReorderCmd.Flags().IntVar(&reorderFrom, "from", 0, "position of the link to move (1-based)")
	linksReorderCmd.Flags().IntVar(&reorderTo, "to", 0, "position to move it to (1-based)")
	linksReorderCmd.Flags().StringVar(&reorderFilter, "filter", "", "filter by title, description or URL")
	linksReorderCmd.Flags().BoolVar(&reorderAll, "all", false, "include inactive links in the view")
}

func runLinksReorder(cmd *cobra.Command, args []string) error {
	mgr, err := invokeManager()
	if err != nil {
		return err
	}

	byPosition := cmd.Flags().Changed("from") || cmd.Flags().Changed("to")
	if byPosition && len(args) > 0 {
		return fmt.Errorf("pass either link IDs or --from/--to, not both")
	}

	var orderedIDs []string
	switch {
	case byPosition:
		if reorderFrom < 1 || reorderTo < 1 {
			return fmt.Errorf("--from and --to are 1-based positions")
		}
		collection, err := mgr.List(cmd.Context(), reorderAll)
		if err != nil {
			return err
		}
		visible := links.Filter(collection, reorderFilter, reorderAll)
		orderedIDs, err = links.CandidateOrder(visible, reorderFrom-1, reorderTo-1)
		if err != nil {
			return err
		}
	case len(args) > 0:
		orderedIDs = args
	default:
		return fmt.Errorf("pass link IDs in the desired order, or --from and --to")
	}

	if err := mgr.Reorder(cmd.Context(), orderedIDs); err != nil {
		return err
	}

	fmt.Printf("Reordered %d links\n", len(orderedIDs))
	return nil
}
