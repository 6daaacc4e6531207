// Package mcp exposes the archive to AI agents over the Model Context
// Protocol with a stdio transport.
package mcp

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	tweetvault "tweetvault/pkg"
	pkgdb "tweetvault/pkg/db"
	"tweetvault/pkg/utils"
)

type ArchiveMCPServer struct {
	mcpServer *server.MCPServer
	db        *sql.DB
	DBPath    string
}

// NewArchiveMCPServer spins up an MCP server backed by the SQLite database
// at dbPath, creating or migrating the schema as needed.
func NewArchiveMCPServer(dbPath string, walMode bool, syncMode string) (*ArchiveMCPServer, error) {
	resolvedPath, err := utils.ResolveAndEnsureDBPath(dbPath)
	if err != nil {
		return nil, err
	}

	s := server.NewMCPServer(
		"tweetvault",
		tweetvault.Version,
		server.WithResourceCapabilities(true, true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	dbConn, err := pkgdb.OpenDB(resolvedPath, walMode, syncMode)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := pkgdb.UpgradeDB(dbConn, resolvedPath, pkgdb.TargetSchemaVersion); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("failed to initialize database schema for '%s': %w", resolvedPath, err)
	}

	return &ArchiveMCPServer{
		mcpServer: s,
		db:        dbConn,
		DBPath:    resolvedPath,
	}, nil
}

// RegisterTools wires every archive tool onto the server.
func (s *ArchiveMCPServer) RegisterTools() {
	RegisterPingTool(s.mcpServer)
	RegisterSearchEntriesTool(s.mcpServer, s.db)
	RegisterGetEntryTool(s.mcpServer, s.db)
	RegisterTagEntryTool(s.mcpServer, s.db)
	RegisterSwipeEntryTool(s.mcpServer, s.db)
	RegisterListTagsTool(s.mcpServer, s.db)
	RegisterArchiveStatsTool(s.mcpServer, s.db)
}

// Start runs the stdio event loop. Make sure to register tools beforehand.
func (s *ArchiveMCPServer) Start() error {
	return server.ServeStdio(s.mcpServer)
}

// DB returns the underlying *sql.DB.
func (s *ArchiveMCPServer) DB() *sql.DB {
	return s.db
}

// MCPRawServer exposes the raw mcp-go server.
func (s *ArchiveMCPServer) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}

// Close cleans up allocated resources.
func (s *ArchiveMCPServer) Close() error {
	if s.db != nil {
		// TRUNCATE mode waits for transactions and writes the WAL back to the main DB.
		_, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE);")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: WAL checkpoint failed during close: %v\n", err)
		}
		return s.db.Close()
	}
	return nil
}
