package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTagNotFound     = errors.New("tag not found")
	ErrDuplicateTag    = errors.New("tag already exists")
	ErrEmptyTagName    = errors.New("tag name cannot be empty")
	ErrInvalidCategory = errors.New("invalid tag category")
)

const (
	createTagStatement = `
	INSERT INTO tags (name, category, color, created_at)
	VALUES (?, ?, ?, unixepoch())
	`

	ensureTagStatement = `
	INSERT OR IGNORE INTO tags (name, category, color, created_at)
	VALUES (?, ?, '', unixepoch())
	`

	getTagStatement = `
	SELECT name, category, color, created_at
	FROM tags
	WHERE name = ?
	`

	listTagsStatement = `
	SELECT t.name, t.category, t.color, t.created_at, COUNT(et.entry_id) AS entry_count
	FROM tags t
	LEFT JOIN entry_tags et ON et.tag = t.name
	GROUP BY t.name, t.category, t.color, t.created_at
	ORDER BY entry_count DESC, t.name ASC
	`

	deleteTagStatement = `
	DELETE FROM tags
	WHERE name = ?
	`

	tagEntryStatement = `
	INSERT OR IGNORE INTO entry_tags (entry_id, tag, source, created_at)
	VALUES (?, ?, ?, unixepoch())
	`

	untagEntryStatement = `
	DELETE FROM entry_tags
	WHERE entry_id = ? AND tag = ?
	`

	listEntryTagsStatement = `
	SELECT t.name, t.category, t.color, t.created_at
	FROM entry_tags et
	JOIN tags t ON t.name = et.tag
	WHERE et.entry_id = ?
	ORDER BY t.name ASC
	`
)

// NormalizeTagName case-folds and trims a tag name. Tag identity is always
// the normalized form.
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func CreateTag(ctx context.Context, db *sql.DB, name, category, color string) (Tag, error) {
	name = NormalizeTagName(name)
	if name == "" {
		return Tag{}, ErrEmptyTagName
	}
	if category == "" {
		category = CategoryCustom
	}
	if !ValidCategory(category) {
		return Tag{}, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	_, err := db.ExecContext(ctx, createTagStatement, name, category, color)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return Tag{}, ErrDuplicateTag
		}
		return Tag{}, err
	}

	return GetTag(ctx, db, name)
}

func GetTag(ctx context.Context, db *sql.DB, name string) (Tag, error) {
	var tag Tag

	err := db.QueryRowContext(ctx, getTagStatement, NormalizeTagName(name)).Scan(
		&tag.Name,
		&tag.Category,
		&tag.Color,
		&tag.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Tag{}, ErrTagNotFound
		}
		return Tag{}, err
	}

	return tag, nil
}

// EnsureTag creates the tag if it does not exist yet. An existing tag
// keeps its original category and color.
func EnsureTag(ctx context.Context, db *sql.DB, name, category string) (Tag, error) {
	name = NormalizeTagName(name)
	if name == "" {
		return Tag{}, ErrEmptyTagName
	}
	if category == "" {
		category = CategoryCustom
	}
	if !ValidCategory(category) {
		return Tag{}, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	if _, err := db.ExecContext(ctx, ensureTagStatement, name, category); err != nil {
		return Tag{}, err
	}

	return GetTag(ctx, db, name)
}

// ListTags returns every tag with the number of entries carrying it.
func ListTags(ctx context.Context, db *sql.DB) ([]Tag, error) {
	rows, err := db.QueryContext(ctx, listTagsStatement)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	tags := []Tag{}
	for rows.Next() {
		var tag Tag

		err := rows.Scan(
			&tag.Name,
			&tag.Category,
			&tag.Color,
			&tag.CreatedAt,
			&tag.EntryCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}

		tags = append(tags, tag)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag rows: %w", err)
	}

	return tags, nil
}

// DeleteTag removes a tag; its entry associations go with it.
func DeleteTag(ctx context.Context, db *sql.DB, name string) error {
	res, err := db.ExecContext(ctx, deleteTagStatement, NormalizeTagName(name))
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTagNotFound
	}

	return nil
}

// TagEntry attaches a tag to an entry, creating the tag on first use.
// Tagging an entry with a tag it already carries is a no-op.
func TagEntry(ctx context.Context, db *sql.DB, entryID, name, source string) (Tag, error) {
	if err := entryExists(ctx, db, entryID); err != nil {
		return Tag{}, err
	}
	if source == "" {
		source = SourceManual
	}

	tag, err := EnsureTag(ctx, db, name, CategoryCustom)
	if err != nil {
		return Tag{}, err
	}

	if _, err := db.ExecContext(ctx, tagEntryStatement, entryID, tag.Name, source); err != nil {
		return Tag{}, err
	}

	return tag, nil
}

// UntagEntry detaches a tag from an entry. Detaching a tag the entry does
// not carry is a no-op; the tag itself is never deleted here.
func UntagEntry(ctx context.Context, db *sql.DB, entryID, name string) error {
	if err := entryExists(ctx, db, entryID); err != nil {
		return err
	}

	_, err := db.ExecContext(ctx, untagEntryStatement, entryID, NormalizeTagName(name))
	return err
}

// ListTagsForEntry returns the tags attached to one entry, deduplicated
// by name.
func ListTagsForEntry(ctx context.Context, db *sql.DB, entryID string) ([]Tag, error) {
	rows, err := db.QueryContext(ctx, listEntryTagsStatement, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []Tag{}
	for rows.Next() {
		var tag Tag

		err := rows.Scan(
			&tag.Name,
			&tag.Category,
			&tag.Color,
			&tag.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		tags = append(tags, tag)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}
