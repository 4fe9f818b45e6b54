// Package cli defines the Cobra command tree for the bitiacora CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// version, commit, date are set via -ldflags at build time.
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bitiacora",
	Short: "A personal memory journal with guided interviews and grounded Q&A",
	Long: `Bitiacora captures personal memories through guided interviews, indexes
them by topics, people, places, and emotions, and answers questions about
your own past grounded only on what you actually recorded.

Run 'bitiacora setup' to configure a generation provider, then
'bitiacora record' to capture your first memory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute(v, c, d string) {
	version, commit, date = v, c, d
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(
		newSetupCmd(),
		newRecordCmd(),
		newAskCmd(),
		newChatCmd(),
		newSearchCmd(),
		newStatsCmd(),
		newSessionsCmd(),
		newForgetCmd(),
		newIngestCmd(),
		newWatchCmd(),
		newMCPCmd(),
		newVersionCmd(),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("bitiacora %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
