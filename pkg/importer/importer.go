// Package importer ingests a Twitter archive export (tweets.js) into the
// local database. Classification into kinds happens here, once, at import
// time; nothing downstream ever reclassifies an entry.
package importer

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"tweetvault/pkg/archive"
)

var ErrMalformedArchive = errors.New("malformed archive file")

// statusURLPattern recognizes links to individual tweets, which is how the
// export represents quote tweets.
var statusURLPattern = regexp.MustCompile(`(?:twitter|x)\.com/[^/\s]+/status/(\d+)`)

const (
	insertEntryStatement = `
	INSERT OR IGNORE INTO entries (id, text, created_at, favorite_count, retweet_count, kind, char_count, length, in_reply_to_id, quoted_id, media_url, media_kind)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	recordImportStatement = `
	INSERT INTO imports (id, file, entries_added, entries_skipped)
	VALUES (?, ?, ?, ?)
	`

	listImportsStatement = `
	SELECT id, file, entries_added, entries_skipped, created_at
	FROM imports
	ORDER BY created_at DESC
	`
)

// Options tunes the import. SelfID is the archive owner's numeric account
// id; when set, replies to that account are classified as thread
// continuations even if the parent tweet is missing from the file.
type Options struct {
	SelfID string
}

// Result summarizes one import run.
type Result struct {
	ImportID string `json:"import_id"`
	File     string `json:"file"`
	Added    int    `json:"added"`
	Skipped  int    `json:"skipped"`
	Total    int    `json:"total"`
}

// Record is one row of import history.
type Record struct {
	ID        string  `json:"id"`
	File      string  `json:"file"`
	Added     int     `json:"added"`
	Skipped   int     `json:"skipped"`
	CreatedAt float64 `json:"created_at"`
}

// tweet mirrors the subset of the export's tweet object the importer
// reads. All counters arrive as strings.
type tweet struct {
	IDStr                string   `json:"id_str"`
	FullText             string   `json:"full_text"`
	CreatedAt            string   `json:"created_at"`
	FavoriteCount        string   `json:"favorite_count"`
	RetweetCount         string   `json:"retweet_count"`
	InReplyToStatusIDStr string   `json:"in_reply_to_status_id_str"`
	InReplyToUserIDStr   string   `json:"in_reply_to_user_id_str"`
	Entities             entities `json:"entities"`
	ExtendedEntities     entities `json:"extended_entities"`
}

type entities struct {
	Media []mediaEntity `json:"media"`
	URLs  []urlEntity   `json:"urls"`
}

type mediaEntity struct {
	MediaURLHTTPS string `json:"media_url_https"`
	Type          string `json:"type"`
}

type urlEntity struct {
	ExpandedURL string `json:"expanded_url"`
}

type tweetWrapper struct {
	Tweet tweet `json:"tweet"`
}

// ImportFile reads a tweets.js export from disk and loads it.
func ImportFile(ctx context.Context, db *sql.DB, path string, opts Options) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read archive file: %w", err)
	}
	return Import(ctx, db, path, data, opts)
}

// Import parses raw tweets.js content and inserts every tweet it holds.
// Reruns are idempotent: tweets already present are skipped, not
// duplicated.
func Import(ctx context.Context, db *sql.DB, file string, data []byte, opts Options) (Result, error) {
	tweets, err := parseArchive(data)
	if err != nil {
		return Result{}, err
	}

	// First pass: the set of own tweet ids, so replies into the author's
	// own chain classify as thread continuations.
	ownIDs := make(map[string]bool, len(tweets))
	for _, tw := range tweets {
		if tw.IDStr != "" {
			ownIDs[tw.IDStr] = true
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertEntryStatement)
	if err != nil {
		return Result{}, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	result := Result{File: file, Total: len(tweets)}
	for _, tw := range tweets {
		if tw.IDStr == "" {
			result.Skipped++
			continue
		}

		entry := toEntry(tw, ownIDs, opts.SelfID)

		res, err := stmt.ExecContext(
			ctx,
			entry.ID,
			entry.Text,
			entry.CreatedAt,
			entry.FavoriteCount,
			entry.RetweetCount,
			entry.Kind,
			entry.CharCount,
			entry.Length,
			entry.InReplyToID,
			entry.QuotedID,
			entry.MediaURL,
			entry.MediaKind,
		)
		if err != nil {
			return Result{}, fmt.Errorf("failed to insert tweet %s: %w", entry.ID, err)
		}

		added, err := res.RowsAffected()
		if err != nil {
			return Result{}, err
		}
		if added > 0 {
			result.Added++
		} else {
			result.Skipped++
		}
	}

	result.ImportID = uuid.New().String()
	if _, err := tx.ExecContext(ctx, recordImportStatement, result.ImportID, file, result.Added, result.Skipped); err != nil {
		return Result{}, fmt.Errorf("failed to record import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Result{}, fmt.Errorf("failed to commit import: %w", err)
	}

	return result, nil
}

// ListImports returns the import history, newest first.
func ListImports(ctx context.Context, db *sql.DB) ([]Record, error) {
	rows, err := db.QueryContext(ctx, listImportsStatement)
	if err != nil {
		return nil, fmt.Errorf("failed to query imports: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var rec Record

		err := rows.Scan(&rec.ID, &rec.File, &rec.Added, &rec.Skipped, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan import row: %w", err)
		}

		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating import rows: %w", err)
	}

	return records, nil
}

// parseArchive strips the JavaScript assignment wrapper the export uses
// (window.YTD.tweets.part0 = [...]) and decodes the tweet array.
func parseArchive(data []byte) ([]tweet, error) {
	start := bytes.IndexByte(data, '[')
	if start < 0 {
		return nil, fmt.Errorf("%w: no JSON array found", ErrMalformedArchive)
	}

	var wrappers []tweetWrapper
	if err := json.Unmarshal(data[start:], &wrappers); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedArchive, err)
	}

	tweets := make([]tweet, 0, len(wrappers))
	for _, w := range wrappers {
		tweets = append(tweets, w.Tweet)
	}
	return tweets, nil
}

// toEntry converts one export tweet into an archive entry, deciding its
// kind. Exactly one kind applies, checked in priority order.
func toEntry(tw tweet, ownIDs map[string]bool, selfID string) archive.Entry {
	quotedID := quotedStatusID(tw)
	mediaURL, mediaKind := firstMedia(tw)

	var kind string
	switch {
	case strings.HasPrefix(tw.FullText, "RT @"):
		kind = archive.KindRetweet
	case tw.InReplyToStatusIDStr != "" && (ownIDs[tw.InReplyToStatusIDStr] || (selfID != "" && tw.InReplyToUserIDStr == selfID)):
		kind = archive.KindThread
	case tw.InReplyToStatusIDStr != "":
		kind = archive.KindReply
	case quotedID != "":
		kind = archive.KindQuote
	case mediaURL != "":
		kind = archive.KindMedia
	default:
		kind = archive.KindText
	}

	charCount := utf8.RuneCountInString(tw.FullText)

	return archive.Entry{
		ID:            tw.IDStr,
		Text:          tw.FullText,
		CreatedAt:     parseCreatedAt(tw.CreatedAt),
		FavoriteCount: forgivingAtoi(tw.FavoriteCount),
		RetweetCount:  forgivingAtoi(tw.RetweetCount),
		Kind:          kind,
		CharCount:     charCount,
		Length:        archive.LengthBucket(charCount),
		InReplyToID:   tw.InReplyToStatusIDStr,
		QuotedID:      quotedID,
		MediaURL:      mediaURL,
		MediaKind:     mediaKind,
	}
}

// parseCreatedAt handles the export's ruby-style timestamp. Unparseable
// values degrade to zero rather than failing the import.
func parseCreatedAt(value string) float64 {
	parsed, err := time.Parse(time.RubyDate, value)
	if err != nil {
		return 0
	}
	return float64(parsed.Unix())
}

func forgivingAtoi(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

// quotedStatusID extracts the id of a quoted tweet from the expanded URL
// entities, falling back to a scan of the raw text.
func quotedStatusID(tw tweet) string {
	for _, u := range tw.Entities.URLs {
		if m := statusURLPattern.FindStringSubmatch(u.ExpandedURL); m != nil {
			return m[1]
		}
	}
	if m := statusURLPattern.FindStringSubmatch(tw.FullText); m != nil {
		return m[1]
	}
	return ""
}

func firstMedia(tw tweet) (string, string) {
	media := tw.ExtendedEntities.Media
	if len(media) == 0 {
		media = tw.Entities.Media
	}
	if len(media) == 0 {
		return "", ""
	}
	return media[0].MediaURLHTTPS, media[0].Type
}
