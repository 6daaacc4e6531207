package db

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	// TargetSchemaVersion is the highest schema version this build of the
	// code supports for the archivedb component. The CLI passes it to
	// UpgradeDB.
	TargetSchemaVersion int64 = 1
	// ArchiveDBComponent is the name under which the archive schema is
	// versioned in tweetvault_versions.
	ArchiveDBComponent = "archivedb"
)

// GetComponentSchemaVersion retrieves the schema version recorded for a
// component. Returns 0 when the component is unknown or the versions table
// does not exist yet.
func GetComponentSchemaVersion(db *sql.DB, componentName string) (int64, error) {
	query := `SELECT version FROM tweetvault_versions WHERE component = ?;`
	row := db.QueryRow(query, componentName)

	var version int64
	err := row.Scan(&version)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		if strings.Contains(err.Error(), "no such table") && strings.Contains(err.Error(), "tweetvault_versions") {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to scan version for component '%s': %w", componentName, err)
	}
	return version, nil
}

// InitializeSchema creates all archivedb tables and records the given schema
// version for the component.
func InitializeSchema(db *sql.DB, schemaVersionToSet int64) error {
	if _, err := db.Exec(SchemaV1); err != nil {
		return fmt.Errorf("failed to execute schema v1 SQL: %w", err)
	}

	insertVersionSQL := `
INSERT INTO tweetvault_versions (component, version) VALUES (?, ?)
ON CONFLICT(component) DO UPDATE SET version = excluded.version, created_at = unixepoch();`

	if _, err := db.Exec(insertVersionSQL, ArchiveDBComponent, schemaVersionToSet); err != nil {
		return fmt.Errorf("failed to record version %d for component %s: %w", schemaVersionToSet, ArchiveDBComponent, err)
	}

	fmt.Fprintf(os.Stderr, "Component %s initialized at schema version %d\n", ArchiveDBComponent, schemaVersionToSet)
	return nil
}

// UpgradeDB brings the archivedb component of the connected database up to
// appTargetSchemaVersion. dbIdentifierForLog only appears in messages.
func UpgradeDB(db *sql.DB, dbIdentifierForLog string, appTargetSchemaVersion int64) error {
	currentDBVersion, err := GetComponentSchemaVersion(db, ArchiveDBComponent)
	if err != nil {
		return err
	}

	switch {
	case currentDBVersion == 0:
		// Fresh or unversioned database.
		fmt.Fprintf(os.Stderr, "Component %s in database '%s' is uninitialized. Initializing at schema version %d...\n", ArchiveDBComponent, dbIdentifierForLog, appTargetSchemaVersion)
		if err := InitializeSchema(db, appTargetSchemaVersion); err != nil {
			return fmt.Errorf("failed to initialize component %s in database '%s': %w", ArchiveDBComponent, dbIdentifierForLog, err)
		}
		return nil
	case currentDBVersion == appTargetSchemaVersion:
		fmt.Fprintf(os.Stderr, "Component %s in database '%s' is up to date (schema version %d).\n", ArchiveDBComponent, dbIdentifierForLog, currentDBVersion)
		return nil
	case currentDBVersion < appTargetSchemaVersion:
		return fmt.Errorf("component %s in database '%s' has schema version %d, which is older than application's target schema version %d. Automatic migration from this older version is not yet supported", ArchiveDBComponent, dbIdentifierForLog, currentDBVersion, appTargetSchemaVersion)
	default:
		return fmt.Errorf("component %s in database '%s' has schema version %d, which is newer than application's target schema version %d. Please upgrade the application", ArchiveDBComponent, dbIdentifierForLog, currentDBVersion, appTargetSchemaVersion)
	}
}
