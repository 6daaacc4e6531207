package db

const (
	// SchemaV1 defines the SQL statements for version 1 of the database
	// schema, covering the 'archivedb' component.
	//
	// entries holds the archived tweets. The immutable columns (text,
	// timestamps, counters, kind, thread/quote linkage) are written once by
	// the importer; the curation columns (score, swipe, notes, reviewed)
	// change over the life of the archive. swipe is '' while the entry has
	// not been triaged.
	SchemaV1 = `
CREATE TABLE IF NOT EXISTS tweetvault_versions (
    component TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    created_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS entries (
    id TEXT PRIMARY KEY,
    text TEXT NOT NULL,
    created_at REAL NOT NULL DEFAULT (unixepoch()),
    favorite_count INTEGER NOT NULL DEFAULT 0,
    retweet_count INTEGER NOT NULL DEFAULT 0,
    kind VARCHAR(16) NOT NULL DEFAULT 'text',
    char_count INTEGER NOT NULL DEFAULT 0,
    length VARCHAR(8) NOT NULL DEFAULT 'short',
    in_reply_to_id TEXT NOT NULL DEFAULT '',
    quoted_id TEXT NOT NULL DEFAULT '',
    media_url TEXT NOT NULL DEFAULT '',
    media_kind VARCHAR(16) NOT NULL DEFAULT '',
    score REAL NOT NULL DEFAULT 0,
    swipe VARCHAR(16) NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    reviewed BOOLEAN NOT NULL DEFAULT FALSE,
    reviewed_at REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_entries_created_at ON entries(created_at);
CREATE INDEX IF NOT EXISTS idx_entries_kind ON entries(kind);
CREATE INDEX IF NOT EXISTS idx_entries_swipe ON entries(swipe);
CREATE INDEX IF NOT EXISTS idx_entries_in_reply_to ON entries(in_reply_to_id);
CREATE INDEX IF NOT EXISTS idx_entries_quoted ON entries(quoted_id);

CREATE TABLE IF NOT EXISTS tags (
    name VARCHAR(64) PRIMARY KEY,
    category VARCHAR(16) NOT NULL DEFAULT 'custom',
    color VARCHAR(16) NOT NULL DEFAULT '',
    created_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS entry_tags (
    entry_id TEXT NOT NULL REFERENCES entries(id) ON DELETE CASCADE,
    tag VARCHAR(64) NOT NULL REFERENCES tags(name) ON DELETE CASCADE,
    source VARCHAR(8) NOT NULL DEFAULT 'manual',
    created_at REAL DEFAULT (unixepoch()),
    PRIMARY KEY (entry_id, tag)
);

CREATE INDEX IF NOT EXISTS idx_entry_tags_tag ON entry_tags(tag);

CREATE TABLE IF NOT EXISTS imports (
    id UUID PRIMARY KEY,
    file TEXT NOT NULL,
    entries_added INTEGER NOT NULL DEFAULT 0,
    entries_skipped INTEGER NOT NULL DEFAULT 0,
    created_at REAL DEFAULT (unixepoch())
);
`
)
