// Dashboard command shows account stats and recent activity.
package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/linkdecklabs/linkdeck/internal/cache"
	"github.com/linkdecklabs/linkdeck/internal/links"
	"github.com/linkdecklabs/linkdeck/pkg/types"
)

var dashboardActivity int

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show click stats for your page",
	Long: `Dashboard shows totals and top links for your page. With --activity N
it lists the N most recent click events instead.

Example:
  linkdeck dashboard
  linkdeck dashboard --activity 20`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().IntVar(&dashboardActivity, "activity", 0, "show the N most recent events instead of stats")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	guard, err := invokeGuard()
	if err != nil {
		return err
	}
	if !guard.IsAuthenticated() {
		return types.ErrNotAuthenticated
	}

	client, err := invokeClient()
	if err != nil {
		return err
	}
	c, err := do.Invoke[*cache.Cache](injector)
	if err != nil {
		return err
	}

	if dashboardActivity > 0 {
		key := cache.NewKey(string(links.PrefixDashboard), "activity", strconv.Itoa(dashboardActivity))
		events, err := cache.Fetch(cmd.Context(), c, key, func(ctx context.Context) ([]types.Analytics, error) {
			return client.DashboardActivity(ctx, dashboardActivity)
		})
		if err != nil {
			return err
		}
		return printActivity(events)
	}

	key := cache.NewKey(string(links.PrefixDashboard), "stats")
	stats, err := cache.Fetch(cmd.Context(), c, key, func(ctx context.Context) (types.DashboardStats, error) {
		return client.DashboardStats(ctx)
	})
	if err != nil {
		return err
	}
	return printStats(stats)
}

func printStats(stats types.DashboardStats) error {
	if flagJSON {
		return printJSON(stats)
	}
	fmt.Printf("Links: %d (%d active)\n", stats.TotalLinks, stats.ActiveLinks)
	fmt.Printf("Clicks: %s total, %s this week", formatCount(stats.TotalClicks), formatCount(stats.RecentClicks))
	if stats.GrowthRate != 0 {
		fmt.Printf(" (%+.1f%%)", stats.GrowthRate)
	}
	fmt.Println()
	if len(stats.TopLinks) > 0 {
		fmt.Println("Top links:")
		for _, top := range stats.TopLinks {
			fmt.Printf("  %-30s %s clicks\n", truncate(top.Title, 30), formatCount(top.Clicks))
		}
	}
	return nil
}

func printActivity(events []types.Analytics) error {
	if flagJSON {
		return printJSON(events)
	}
	if len(events) == 0 {
		fmt.Println("No recent activity")
		return nil
	}
	for _, ev := range events {
		where := ev.Country
		if ev.City != "" {
			where = ev.City + ", " + ev.Country
		}
		fmt.Printf("%s  %-12s %-20s %s\n",
			ev.CreatedAt.Local().Format("2006-01-02 15:04"), ev.Event, truncate(where, 20), ev.LinkID)
	}
	return nil
}
