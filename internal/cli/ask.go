package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/angeloromano11/bitiacora/internal/assistant"
	"github.com/angeloromano11/bitiacora/internal/config"
	"github.com/angeloromano11/bitiacora/internal/memory"
)

func newAskCmd() *cobra.Command {
	var (
		topK    int
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about your stored memories",
		Long: `Ask a single question. The answer is grounded on the most relevant
stored memories and never invents details that are not in your journal.

Examples:
  bitiacora ask "What do I remember about my grandmother?"
  bitiacora ask "When did I live in Ohio?" --verbose`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")

			cfg, err := config.Load()
			if err != nil {
				cfg = config.Default()
			}

			store, closeStore, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			a := assistant.New(buildGenerator(cfg), memory.NewEngine(store), memory.NewAggregator(store))
			a.SetParams(generationParams(cfg))
			if topK > 0 {
				a.SetTopK(topK)
			} else if cfg.Search.TopK > 0 {
				a.SetTopK(cfg.Search.TopK)
			}

			ans, err := a.AskQuestion(cmd.Context(), question)
			if err != nil {
				if errors.Is(err, assistant.ErrNotConfigured) {
					return fmt.Errorf("no provider configured. Run `bitiacora setup` first")
				}
				return err
			}

			fmt.Println(ans.Message.Content)
			if verbose {
				fmt.Printf("\n(%d memories from %d sessions)\n", ans.Sources, ans.Sessions)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&topK, "top-k", 0, "maximum memories to ground the answer on")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show how many memories grounded the answer")

	return cmd
}
