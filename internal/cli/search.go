package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/angeloromano11/bitiacora/internal/config"
	"github.com/angeloromano11/bitiacora/internal/memory"
)

func newSearchCmd() *cobra.Command {
	var (
		limit  int
		topic  string
		person string
	)

	cmd := &cobra.Command{
		Use:   "search [terms...]",
		Short: "Search stored memories by weighted relevance",
		Long: `Search the journal. Term matches in content, topics, people, places,
and emotions are weighted, with people and places ranking highest.

Examples:
  bitiacora search grandmother stories
  bitiacora search --topic travel
  bitiacora search --person "my mother"`,
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

			engine := memory.NewEngine(store)

			switch {
			case topic != "":
				printEntries(engine.SearchByTopic(topic, limit))
			case person != "":
				printEntries(engine.SearchByPerson(person, limit))
			case len(args) > 0:
				printResults(engine.Search(strings.Join(args, " "), limit))
			default:
				return fmt.Errorf("give search terms, --topic, or --person")
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum results")
	cmd.Flags().StringVar(&topic, "topic", "", "list recent memories with this exact topic")
	cmd.Flags().StringVar(&person, "person", "", "list recent memories mentioning this person")

	return cmd
}

func printResults(results []memory.SearchResult) {
	if len(results) == 0 {
		fmt.Println("No matching memories.")
		return
	}
	for i, r := range results {
		fmt.Printf("%d. %s\n", i+1, preview(r.Content, 100))
		meta := []string{fmt.Sprintf("score %.2f (%s)", r.Score, r.Match)}
		if len(r.MatchedTerms) > 0 {
			meta = append(meta, "matched: "+strings.Join(r.MatchedTerms, ", "))
		}
		meta = append(meta, r.CreatedAt.Format("2006-01-02"))
		fmt.Printf("   %s\n", strings.Join(meta, " | "))
	}
}

func printEntries(entries []memory.Entry) {
	if len(entries) == 0 {
		fmt.Println("No matching memories.")
		return
	}
	for i, e := range entries {
		fmt.Printf("%d. %s\n", i+1, preview(e.Content, 100))
		fmt.Printf("   %s\n", e.CreatedAt.Format("2006-01-02"))
	}
}
