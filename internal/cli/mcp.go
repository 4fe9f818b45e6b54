package cli

import (
	"github.com/spf13/cobra"

	"github.com/angeloromano11/bitiacora/internal/config"
	"github.com/angeloromano11/bitiacora/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the journal over the Model Context Protocol (stdio)",
		Long: `Run an MCP server on stdin/stdout so external assistants can search
your memories, read journal statistics, and list sessions.

Example Claude Desktop configuration:
  { "mcpServers": { "bitiacora": { "command": "bitiacora", "args": ["mcp"] } } }`,
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

			return mcp.NewServer(store, version).Run()
		},
	}
}
