package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angeloromano11/bitiacora/internal/config"
	"github.com/angeloromano11/bitiacora/internal/memory"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show journal statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				cfg = config.Default()
			}

			store, closeStore, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			stats := memory.NewAggregator(store).Compute()

			fmt.Printf("Entries:  %d\n", stats.TotalEntries)
			fmt.Printf("Sessions: %d\n", stats.TotalSessions)
			fmt.Printf("Topics:   %d distinct\n", stats.TotalTopics)
			fmt.Printf("People:   %d distinct\n", stats.TotalPeople)

			printTop := func(label string, counts []memory.LabelCount) {
				if len(counts) == 0 {
					return
				}
				fmt.Printf("\n%s:\n", label)
				for _, c := range counts {
					fmt.Printf("  %-20s %d\n", c.Label, c.Count)
				}
			}
			printTop("Top topics", stats.TopTopics)
			printTop("Top emotions", stats.TopEmotions)
			printTop("Top people", stats.TopPeople)
			return nil
		},
	}
}
