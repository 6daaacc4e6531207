package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrEntryExists   = errors.New("entry already exists")
	ErrInvalidKind   = errors.New("invalid entry kind")
	ErrInvalidSwipe  = errors.New("invalid swipe verdict")
)

// entryColumns is shared by every statement that hydrates a full Entry so
// scanEntry stays in one place.
const entryColumns = `e.id, e.text, e.created_at, e.favorite_count, e.retweet_count, e.kind, e.char_count, e.length, e.in_reply_to_id, e.quoted_id, e.media_url, e.media_kind, e.score, e.swipe, e.notes, e.reviewed, e.reviewed_at`

const (
	createEntryStatement = `
	INSERT INTO entries (id, text, created_at, favorite_count, retweet_count, kind, char_count, length, in_reply_to_id, quoted_id, media_url, media_kind)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	getEntryStatement = `
	SELECT ` + entryColumns + `
	FROM entries e
	WHERE e.id = ?
	`

	entryExistsStatement = `
	SELECT 1 FROM entries WHERE id = ?
	`

	getQuotedStatement = `
	SELECT id, text, media_url, media_kind, created_at
	FROM entries
	WHERE id = ?
	`

	swipeEntryStatement = `
	UPDATE entries
	SET swipe = ?, reviewed = ?, reviewed_at = ?
	WHERE id = ?
	`

	deleteEntryStatement = `
	DELETE FROM entries
	WHERE id = ?
	`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var entry Entry
	err := row.Scan(
		&entry.ID,
		&entry.Text,
		&entry.CreatedAt,
		&entry.FavoriteCount,
		&entry.RetweetCount,
		&entry.Kind,
		&entry.CharCount,
		&entry.Length,
		&entry.InReplyToID,
		&entry.QuotedID,
		&entry.MediaURL,
		&entry.MediaKind,
		&entry.Score,
		&entry.Swipe,
		&entry.Notes,
		&entry.Reviewed,
		&entry.ReviewedAt,
	)
	return entry, err
}

// CreateEntry inserts an archived entry. The length bucket is always
// recomputed from the character count so the two can never disagree.
func CreateEntry(ctx context.Context, db *sql.DB, entry Entry) (Entry, error) {
	if entry.ID == "" {
		return Entry{}, errors.New("entry id cannot be empty")
	}
	if entry.Kind == "" {
		entry.Kind = KindText
	}
	if !ValidKind(entry.Kind) {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidKind, entry.Kind)
	}
	if entry.CharCount == 0 {
		entry.CharCount = utf8.RuneCountInString(entry.Text)
	}
	entry.Length = LengthBucket(entry.CharCount)
	if entry.CreatedAt == 0 {
		entry.CreatedAt = float64(time.Now().Unix())
	}

	_, err := db.ExecContext(
		ctx,
		createEntryStatement,
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
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return Entry{}, ErrEntryExists
		}
		return Entry{}, err
	}

	return GetEntry(ctx, db, entry.ID)
}

// GetEntry retrieves a single entry decorated with its tags and, when it
// quotes another archived entry, that entry's inlined fields.
func GetEntry(ctx context.Context, db *sql.DB, id string) (Entry, error) {
	entry, err := scanEntry(db.QueryRowContext(ctx, getEntryStatement, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrEntryNotFound
		}
		return Entry{}, err
	}

	tags, err := ListTagsForEntry(ctx, db, entry.ID)
	if err != nil {
		return Entry{}, err
	}
	entry.Tags = tags

	if entry.QuotedID != "" {
		quoted, err := getQuotedEntry(ctx, db, entry.QuotedID)
		if err != nil {
			return Entry{}, err
		}
		entry.Quoted = quoted
	}

	return entry, nil
}

// getQuotedEntry resolves a quoted-entry decoration. A missing target is
// not an error; the decoration just stays empty.
func getQuotedEntry(ctx context.Context, db *sql.DB, id string) (*QuotedEntry, error) {
	var quoted QuotedEntry

	err := db.QueryRowContext(ctx, getQuotedStatement, id).Scan(
		&quoted.ID,
		&quoted.Text,
		&quoted.MediaURL,
		&quoted.MediaKind,
		&quoted.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &quoted, nil
}

func entryExists(ctx context.Context, db *sql.DB, id string) error {
	var one int

	err := db.QueryRowContext(ctx, entryExistsStatement, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrEntryNotFound
	}
	return err
}

// UpdateEntry changes the mutable curation fields. Nil means leave the
// field alone; historical fields are never updated. Setting reviewed also
// stamps or clears reviewed_at.
func UpdateEntry(ctx context.Context, db *sql.DB, id string, notes *string, score *float64, reviewed *bool) (Entry, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)

	if notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *notes)
	}
	if score != nil {
		sets = append(sets, "score = ?")
		args = append(args, *score)
	}
	if reviewed != nil {
		var reviewedAt float64
		if *reviewed {
			reviewedAt = float64(time.Now().Unix())
		}
		sets = append(sets, "reviewed = ?", "reviewed_at = ?")
		args = append(args, *reviewed, reviewedAt)
	}
	if len(sets) == 0 {
		return GetEntry(ctx, db, id)
	}
	args = append(args, id)

	res, err := db.ExecContext(ctx, "UPDATE entries SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return Entry{}, err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return Entry{}, err
	}
	if rowsAffected == 0 {
		return Entry{}, ErrEntryNotFound
	}

	return GetEntry(ctx, db, id)
}

// SwipeEntry records a triage verdict. An empty verdict clears the swipe
// and returns the entry to the unreviewed pool.
func SwipeEntry(ctx context.Context, db *sql.DB, id, verdict string) (Entry, error) {
	if !ValidSwipe(verdict) {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidSwipe, verdict)
	}

	reviewed := verdict != SwipeNone
	var reviewedAt float64
	if reviewed {
		reviewedAt = float64(time.Now().Unix())
	}

	res, err := db.ExecContext(ctx, swipeEntryStatement, verdict, reviewed, reviewedAt, id)
	if err != nil {
		return Entry{}, err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return Entry{}, err
	}
	if rowsAffected == 0 {
		return Entry{}, ErrEntryNotFound
	}

	return GetEntry(ctx, db, id)
}

func DeleteEntry(ctx context.Context, db *sql.DB, id string) error {
	res, err := db.ExecContext(ctx, deleteEntryStatement, id)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}
