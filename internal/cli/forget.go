package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angeloromano11/bitiacora/internal/config"
)

func newForgetCmd() *cobra.Command {
	var (
		entriesOnly bool
		yes         bool
	)

	cmd := &cobra.Command{
		Use:   "forget <session-id>",
		Short: "Delete a session and its memories",
		Long: `Delete a recorded session. By default the session and every entry in
it are removed. With --entries-only the session is kept but emptied.

Examples:
  bitiacora forget 3f0c2b1a-...
  bitiacora forget 3f0c2b1a-... --entries-only`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID := args[0]

			cfg, err := config.Load()
			if err != nil {
				cfg = config.Default()
			}

			store, closeStore, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			if !yes && !confirmPrompt(fmt.Sprintf("Delete session %s? This cannot be undone.", sessionID)) {
				fmt.Println("Aborted.")
				return nil
			}

			if entriesOnly {
				if err := store.DeleteForSession(sessionID); err != nil {
					return fmt.Errorf("delete entries: %w", err)
				}
				fmt.Println("Entries deleted; session kept.")
				return nil
			}

			if err := store.DeleteSession(sessionID); err != nil {
				return err
			}
			fmt.Println("Session deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&entriesOnly, "entries-only", false, "delete the entries but keep the session")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
