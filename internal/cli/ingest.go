package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/angeloromano11/bitiacora/internal/config"
	"github.com/angeloromano11/bitiacora/internal/memory"
)

func newIngestCmd() *cobra.Command {
	var (
		title         string
		interviewType string
	)

	cmd := &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Import written memories from text files",
		Long: `Import plain-text files into the journal. Each file becomes a session
and each paragraph becomes an indexed memory entry.

Examples:
  bitiacora ingest diary-1998.txt
  bitiacora ingest letters/*.txt --type legacy`,
		Args: cobra.MinimumNArgs(1),
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

			for _, path := range args {
				n, err := ingestFile(store, path, title, interviewType)
				if err != nil {
					return err
				}
				fmt.Printf("%s: %d memories imported\n", path, n)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "session title (defaults to the file name)")
	cmd.Flags().StringVarP(&interviewType, "type", "t", "memory", "session type to record")

	return cmd
}

func ingestFile(store *memory.Store, path, title, sessionType string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	paragraphs := splitParagraphs(string(data))
	if len(paragraphs) == 0 {
		return 0, nil
	}

	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	sess, err := store.CreateSession(memory.Session{Title: title, Type: sessionType})
	if err != nil {
		return 0, fmt.Errorf("create session: %w", err)
	}

	bar := progressbar.Default(int64(len(paragraphs)), "importing")
	for _, p := range paragraphs {
		e := memory.Entry{SessionID: sess.ID, Type: memory.EntryResponse, Content: p}
		memory.Extract(&e)
		if _, err := store.Append(e); err != nil {
			return 0, fmt.Errorf("save entry: %w", err)
		}
		bar.Add(1)
	}
	return len(paragraphs), nil
}

// splitParagraphs breaks text on blank lines; single newlines inside a
// paragraph are joined so wrapped prose stays one memory.
func splitParagraphs(text string) []string {
	var out []string
	for _, block := range strings.Split(text, "\n\n") {
		p := strings.TrimSpace(strings.Join(strings.Fields(block), " "))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
