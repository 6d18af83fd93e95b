package cmd

import (
	"fmt"
	"sort"

	"github.com/matheuskafuri/eowatch/internal/cache"
	"github.com/matheuskafuri/eowatch/internal/notify"
	"github.com/spf13/cobra"
)

var flagSeenLimit int

var seenCmd = &cobra.Command{
	Use:   "seen",
	Short: "List executive orders already recorded",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		set, err := cache.Open(cfg.CachePath()).Load()
		if err != nil {
			return fmt.Errorf("reading seen-set: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(set) == 0 {
			fmt.Fprintln(out, "No executive orders recorded yet.")
			return nil
		}

		items := sortedItems(set)
		if flagSeenLimit > 0 && len(items) > flagSeenLimit {
			items = items[:flagSeenLimit]
		}
		console := notify.NewConsole(out)
		for _, item := range items {
			fmt.Fprintln(out, console.Line(item))
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show seen-set statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		path := cfg.CachePath()
		count, size, err := cache.Open(path).Stats()
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Seen-set: %s\n", path)
		fmt.Fprintf(out, "Orders: %d\n", count)
		fmt.Fprintf(out, "Size: %s\n", formatBytes(size))
		return nil
	},
}

func init() {
	seenCmd.Flags().IntVar(&flagSeenLimit, "limit", 0, "show at most this many orders (0 for all)")
}

// sortedItems orders by signing date, newest first, then document number.
func sortedItems(set cache.SeenSet) []cache.Item {
	items := make([]cache.Item, 0, len(set))
	for _, item := range set {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].SigningDate != items[j].SigningDate {
			return items[i].SigningDate > items[j].SigningDate
		}
		return items[i].DocumentNumber > items[j].DocumentNumber
	})
	return items
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
