package main

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"tweetvault/pkg/archive"
	"tweetvault/pkg/config"
	pkgdb "tweetvault/pkg/db"
	"tweetvault/pkg/utils"
)

// loadConfig reads the config file named by --config (or the default
// location) with environment overrides applied.
func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

// resolveDBPath picks the database location: the --db flag wins, then the
// config file, then the platform default. The parent directory is created
// when missing.
func resolveDBPath() (string, error) {
	path := dbPath
	if path == "" {
		cfg, err := loadConfig()
		if err != nil {
			return "", err
		}
		path = cfg.DBPath
	}
	return utils.ResolveAndEnsureDBPath(path)
}

// openDB opens the archive database and brings its schema up to date.
func openDB() (*sql.DB, error) {
	path, err := resolveDBPath()
	if err != nil {
		return nil, err
	}

	dbConn, err := pkgdb.OpenDB(path, walMode, syncMode)
	if err != nil {
		return nil, err
	}

	if err := pkgdb.UpgradeDB(dbConn, path, pkgdb.TargetSchemaVersion); err != nil {
		dbConn.Close()
		return nil, err
	}

	return dbConn, nil
}

// formatTimestamp converts a Unix timestamp (float64, seconds since epoch)
// to a human-readable string in RFC3339 format.
func formatTimestamp(timestamp float64) string {
	timeObj := time.Unix(int64(timestamp), 0)
	return timeObj.Format(time.RFC3339)
}

func formatTagsList(tags []archive.Tag) string {
	if len(tags) == 0 {
		return "none"
	}

	tagNames := make([]string, len(tags))
	for i, tag := range tags {
		tagNames[i] = tag.Name
	}

	return strings.Join(tagNames, ", ")
}

func printEntry(entry archive.Entry) {
	fmt.Println("Entry Details:")
	fmt.Printf("ID:           %s\n", entry.ID)
	fmt.Printf("Kind:         %s\n", entry.Kind)
	fmt.Printf("Length:       %s (%d chars)\n", entry.Length, entry.CharCount)
	fmt.Printf("Favorites:    %d\n", entry.FavoriteCount)
	fmt.Printf("Retweets:     %d\n", entry.RetweetCount)
	fmt.Printf("Swipe:        %s\n", swipeLabel(entry.Swipe))
	fmt.Printf("Reviewed:     %t\n", entry.Reviewed)
	fmt.Printf("Tags:         %s\n", formatTagsList(entry.Tags))
	if entry.Notes != "" {
		fmt.Printf("Notes:        %s\n", entry.Notes)
	}
	fmt.Printf("Created At:   %s\n", formatTimestamp(entry.CreatedAt))
	fmt.Println("\nText:")
	fmt.Println("------------------------------------------------------------")
	fmt.Println(entry.Text)
	fmt.Println("------------------------------------------------------------")

	if entry.Quoted != nil {
		fmt.Println("Quotes:")
		fmt.Printf("  %s (%s)\n", entry.Quoted.Text, entry.Quoted.ID)
	}
}

func swipeLabel(verdict string) string {
	if verdict == archive.SwipeNone {
		return "unreviewed"
	}
	return verdict
}

func splitTagsFlag(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			tags = append(tags, name)
		}
	}
	return tags
}
