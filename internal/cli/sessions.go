package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angeloromano11/bitiacora/internal/config"
	"github.com/angeloromano11/bitiacora/internal/memory"
)

func newSessionsCmd() *cobra.Command {
	var showEntries bool

	cmd := &cobra.Command{
		Use:   "sessions [session-id]",
		Short: "List recorded sessions, or show one session's entries",
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

			if len(args) > 0 {
				return printSessionEntries(store, args[0])
			}

			sessions, err := store.Sessions()
			if err != nil {
				return fmt.Errorf("list sessions: %w", err)
			}
			if len(sessions) == 0 {
				fmt.Println("No sessions recorded. Run `bitiacora record` to start one.")
				return nil
			}

			for _, s := range sessions {
				title := s.Title
				if title == "" {
					title = "(untitled)"
				}
				fmt.Printf("[%s] %-10s %s\n", s.CreatedAt.Format("2006-01-02 15:04"), s.Type, title)
				fmt.Printf("  id: %s\n", s.ID)
				if showEntries {
					if err := printSessionEntries(store, s.ID); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showEntries, "entries", false, "include each session's entries")

	return cmd
}

func printSessionEntries(store *memory.Store, sessionID string) error {
	entries, err := store.EntriesForSession(sessionID)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("  (no entries)")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("  [%s] %s\n", e.Type, preview(e.Content, 90))
	}
	return nil
}
