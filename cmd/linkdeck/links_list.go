// Links list command shows the link collection.
package main

import (
	"fmt"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/linkdecklabs/linkdeck/internal/links"
	"github.com/linkdecklabs/linkdeck/internal/store"
	"github.com/linkdecklabs/linkdeck/pkg/types"
)

var (
	linksListAll    bool
	linksListFilter string
	linksListCached bool
)

var linksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your links",
	Long: `List shows your links in display order. By default only active links
are shown; --all includes disabled ones. --filter narrows the list by a
case-insensitive match against title, description and URL.

With --cached the list is read from the last stored server response
without going to the network, which works offline.

Example:
  linkdeck links list
  linkdeck links list --all --filter github
  linkdeck links list --cached`,
	Args: cobra.NoArgs,
	RunE: runLinksList,
}

func init() {
	linksListCmd.Flags().BoolVar(&linksListAll, "all", false, "include inactive links")
	linksListCmd.Flags().StringVar(&linksListFilter, "filter", "", "filter by title, description or URL")
	linksListCmd.Flags().BoolVar(&linksListCached, "cached", false, "read the last stored response instead of the network")
}

func runLinksList(cmd *cobra.Command, args []string) error {
	var collection []types.Link

	if linksListCached {
		st, err := do.Invoke[*store.Store](injector)
		if err != nil {
			return err
		}
		key := string(links.ListKey(linksListAll))
		fetchedAt, ok, err := st.LoadSnapshot(key, &collection)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no stored link list; run without --cached first")
		}
		if !flagJSON {
			fmt.Printf("Cached at %s\n", fetchedAt.Local().Format("2006-01-02 15:04"))
		}
	} else {
		mgr, err := invokeManager()
		if err != nil {
			return err
		}
		collection, err = mgr.List(cmd.Context(), linksListAll)
		if err != nil {
			return err
		}
	}

	visible := links.Filter(collection, linksListFilter, linksListAll)

	if flagJSON {
		return printJSON(visible)
	}
	if len(visible) == 0 {
		fmt.Println("No links")
		return nil
	}
	for i, l := range visible {
		marker := " "
		if !l.IsActive {
			marker = "off"
		}
		fmt.Printf("%2d. %-30s %-40s %6s clicks %3s  %s\n",
			i+1, truncate(l.Title, 30), truncate(l.URL, 40), formatCount(l.Clicks), marker, l.ID)
	}
	return nil
}
