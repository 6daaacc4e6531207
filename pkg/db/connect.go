package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// syncModes lists the values accepted for the synchronous pragma.
var syncModes = map[string]bool{
	"OFF":    true,
	"NORMAL": true,
	"FULL":   true,
	"EXTRA":  true,
}

// OpenDB opens the SQLite database at baseDSN (a file path or ":memory:").
// enableWAL switches the journal_mode to WAL, syncMode sets the synchronous
// pragma (OFF, NORMAL, FULL or EXTRA; empty leaves the driver default).
// Foreign key enforcement is switched on for the connection.
func OpenDB(baseDSN string, enableWAL bool, syncMode string) (*sql.DB, error) {
	params := url.Values{}

	if enableWAL {
		params.Add("_journal_mode", "WAL")
	}

	if syncMode != "" {
		mode := strings.ToUpper(syncMode)
		if !syncModes[mode] {
			return nil, fmt.Errorf("invalid sync mode %q: must be one of OFF, NORMAL, FULL, EXTRA", syncMode)
		}
		params.Add("_synchronous", mode)
	}

	dsn := baseDSN
	if len(params) > 0 {
		if strings.Contains(baseDSN, "?") {
			dsn += "&" + params.Encode()
		} else {
			dsn += "?" + params.Encode()
		}
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database '%s': %w", dsn, err)
	}

	if err = conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database '%s': %w", dsn, err)
	}

	// Needed for the ON DELETE CASCADE constraints on entry_tags.
	if _, err = conn.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys for '%s': %w", dsn, err)
	}

	return conn, nil
}

// CloseDB checkpoints the WAL back into the main database file and closes
// the connection. The checkpoint is best effort; a failure there does not
// prevent the close.
func CloseDB(conn *sql.DB) error {
	if conn == nil {
		return nil
	}
	_, _ = conn.Exec("PRAGMA wal_checkpoint(TRUNCATE);")
	return conn.Close()
}
