package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/angeloromano11/bitiacora/internal/config"
	"github.com/angeloromano11/bitiacora/internal/interview"
	"github.com/angeloromano11/bitiacora/internal/memory"
)

func newRecordCmd() *cobra.Command {
	var (
		interviewType string
		subcategory   string
		title         string
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a memory through a guided interview",
		Long: `Start a guided interview session. The interviewer asks an opening
question, follows up on each of your answers, and saves the whole
exchange as a session in your journal.

Type 'done' on a line by itself to end the interview.

Examples:
  bitiacora record
  bitiacora record --type legacy
  bitiacora record --type memory --subcategory childhood`,
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

			sess, err := store.CreateSession(memory.Session{
				Title: title,
				Type:  interviewType,
			})
			if err != nil {
				return fmt.Errorf("create session: %w", err)
			}

			gen := interview.New(buildGenerator(cfg))
			opener := gen.StartInterview(sess.ID, cfg.UserName, interviewType, subcategory)

			fmt.Println(opener)
			reader := bufio.NewReader(os.Stdin)

			// The opener is the first question entry in the session.
			if err := appendExchange(store, sess.ID, opener, ""); err != nil {
				return err
			}

			for {
				fmt.Print("> ")
				response := strings.TrimSpace(readLine(reader))
				if response == "" {
					continue
				}
				if response == "done" {
					break
				}

				if err := appendExchange(store, sess.ID, "", response); err != nil {
					return err
				}

				question := gen.GenerateFollowUp(cmd.Context(), response)
				fmt.Println()
				fmt.Println(question)
				if err := appendExchange(store, sess.ID, question, ""); err != nil {
					return err
				}
			}

			fmt.Println()
			fmt.Println(gen.EndInterview())
			return nil
		},
	}

	cmd.Flags().StringVarP(&interviewType, "type", "t", interview.TypeMemory, "interview type: memory, legacy, life, job, speech")
	cmd.Flags().StringVarP(&subcategory, "subcategory", "s", "", "opening question subcategory (e.g. childhood, family)")
	cmd.Flags().StringVar(&title, "title", "", "session title")

	return cmd
}

// appendExchange stores an interviewer question or a user response,
// running extraction so responses are indexed for search.
func appendExchange(store *memory.Store, sessionID, question, response string) error {
	var e memory.Entry
	switch {
	case question != "":
		e = memory.Entry{SessionID: sessionID, Type: memory.EntryQuestion, Content: question}
	case response != "":
		e = memory.Entry{SessionID: sessionID, Type: memory.EntryResponse, Content: response}
		memory.Extract(&e)
	default:
		return nil
	}
	if _, err := store.Append(e); err != nil {
		return fmt.Errorf("save entry: %w", err)
	}
	return nil
}
