package main

import (
	"fmt"
	"os"

	"tweetvault/pkg/mcp"

	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the tweetvault MCP server (stdio)",
	Long: `Start a Model Context Protocol (MCP) server that exposes the archive's search,
tagging, swipe, and stats operations as MCP tools via STDIO.

The --db flag is optional. If not provided, a system-specific default location will be used:
- Windows: %USERPROFILE%\AppData\Roaming\tweetvault\tweetvault.db
- macOS: ~/Library/Application Support/tweetvault/tweetvault.db
- Linux: ~/.local/share/tweetvault/tweetvault.db

Example:
  tweetvault mcp
  tweetvault mcp --db tweetvault.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}

		srv, err := mcp.NewArchiveMCPServer(path, walMode, syncMode)
		if err != nil {
			return err
		}
		defer srv.Close()

		srv.RegisterTools()

		// Log to stderr so we don't contaminate the JSON-RPC stream on stdout.
		fmt.Fprintf(os.Stderr, "tweetvault MCP server started. DB: %s (WAL: %t, Sync: %s)\n", srv.DBPath, walMode, syncMode)
		fmt.Fprintln(os.Stderr, "Available tools: ping, search_entries, get_entry, tag_entry, swipe_entry, list_tags, archive_stats")
		fmt.Fprintln(os.Stderr, "Listening for MCP JSON-RPC on STDIN/STDOUT ... (Ctrl+C to quit)")

		// Run the server (blocks until stdio closes).
		return srv.Start()
	},
}
