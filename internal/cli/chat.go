package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	prompt "github.com/c-bata/go-prompt"
	"github.com/spf13/cobra"

	"github.com/angeloromano11/bitiacora/internal/assistant"
	"github.com/angeloromano11/bitiacora/internal/config"
	"github.com/angeloromano11/bitiacora/internal/memory"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Open an interactive conversation about your memories",
		Long: `Start a chat session with the memory assistant. Suggested questions
derived from your journal appear as completions; press Tab to browse them.

Commands inside the session:
  /clear   discard the conversation so far
  /exit    leave the chat`,
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

			a := assistant.New(buildGenerator(cfg), memory.NewEngine(store), memory.NewAggregator(store))
			a.SetParams(generationParams(cfg))
			if cfg.Search.TopK > 0 {
				a.SetTopK(cfg.Search.TopK)
			}
			if !a.Configured() {
				return fmt.Errorf("no provider configured. Run `bitiacora setup` first")
			}

			session := &chatSession{assistant: a}

			fmt.Println("Chat with your journal. Press Tab for suggested questions, /exit to leave.")
			p := prompt.New(
				session.execute,
				session.complete,
				prompt.OptionPrefix("you> "),
				prompt.OptionTitle("bitiacora chat"),
				prompt.OptionSetExitCheckerOnInput(func(in string, breakline bool) bool {
					return session.done
				}),
			)
			p.Run()
			return nil
		},
	}
}

type chatSession struct {
	assistant *assistant.Assistant
	done      bool
}

func (c *chatSession) execute(in string) {
	in = strings.TrimSpace(in)
	switch in {
	case "":
		return
	case "/exit", "/quit":
		c.done = true
		fmt.Println("Goodbye.")
		return
	case "/clear":
		c.assistant.ClearHistory()
		fmt.Println("Conversation cleared.")
		return
	}
	if c.done {
		return
	}

	ans, err := c.assistant.AskQuestion(context.Background(), in)
	if err != nil {
		if errors.Is(err, assistant.ErrNotConfigured) {
			fmt.Println("No provider configured. Run `bitiacora setup` first.")
			return
		}
		fmt.Printf("error: %v\n", err)
		return
	}
	fmt.Println(ans.Message.Content)
	if ans.Sources > 0 {
		fmt.Printf("(%d memories from %d sessions)\n", ans.Sources, ans.Sessions)
	}
}

func (c *chatSession) complete(d prompt.Document) []prompt.Suggest {
	suggestions := []prompt.Suggest{
		{Text: "/clear", Description: "Discard the conversation so far"},
		{Text: "/exit", Description: "Leave the chat"},
	}
	for _, q := range c.assistant.SuggestedQuestions() {
		suggestions = append(suggestions, prompt.Suggest{Text: q, Description: "Suggested question"})
	}
	return prompt.FilterHasPrefix(suggestions, d.TextBeforeCursor(), true)
}
