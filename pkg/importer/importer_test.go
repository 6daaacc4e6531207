package importer

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"tweetvault/pkg/archive"
	"tweetvault/pkg/db"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := db.OpenDB(":memory:", true, "NORMAL")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	// A second pool connection would see its own empty :memory: database.
	testDB.SetMaxOpenConns(1)

	if err := db.InitializeSchema(testDB, db.TargetSchemaVersion); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}

	return testDB
}

// archiveFixture covers one tweet of each kind plus a wrapper with no id.
const archiveFixture = `window.YTD.tweets.part0 = [
  {
    "tweet" : {
      "id_str" : "9001",
      "full_text" : "Just had a great idea about building tools",
      "created_at" : "Mon Sep 28 10:00:00 +0000 2020",
      "favorite_count" : "12",
      "retweet_count" : "3"
    }
  },
  {
    "tweet" : {
      "id_str" : "9002",
      "full_text" : "RT @someone: the original text",
      "created_at" : "Mon Sep 28 10:01:00 +0000 2020",
      "favorite_count" : "0",
      "retweet_count" : "0"
    }
  },
  {
    "tweet" : {
      "id_str" : "9003",
      "full_text" : "@other replying to you",
      "created_at" : "Mon Sep 28 10:02:00 +0000 2020",
      "favorite_count" : "1",
      "retweet_count" : "0",
      "in_reply_to_status_id_str" : "555",
      "in_reply_to_user_id_str" : "777"
    }
  },
  {
    "tweet" : {
      "id_str" : "9004",
      "full_text" : "and one more thing on that idea",
      "created_at" : "Mon Sep 28 10:03:00 +0000 2020",
      "favorite_count" : "5",
      "retweet_count" : "banana",
      "in_reply_to_status_id_str" : "9001",
      "in_reply_to_user_id_str" : "42"
    }
  },
  {
    "tweet" : {
      "id_str" : "9005",
      "full_text" : "this take is excellent https://t.co/abc",
      "created_at" : "Mon Sep 28 10:04:00 +0000 2020",
      "favorite_count" : "2",
      "retweet_count" : "0",
      "entities" : {
        "urls" : [
          {"expanded_url" : "https://twitter.com/foo/status/888777666"}
        ]
      }
    }
  },
  {
    "tweet" : {
      "id_str" : "9006",
      "full_text" : "look at this view",
      "created_at" : "Mon Sep 28 10:05:00 +0000 2020",
      "favorite_count" : "30",
      "retweet_count" : "4",
      "extended_entities" : {
        "media" : [
          {"media_url_https" : "https://pbs.twimg.com/media/xyz.jpg", "type" : "photo"}
        ]
      }
    }
  },
  {
    "tweet" : {}
  }
]`

func TestImportClassifiesKinds(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()

	result, err := Import(ctx, testDB, "tweets.js", []byte(archiveFixture), Options{})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.Total != 7 {
		t.Errorf("Expected 7 tweets in file, got %d", result.Total)
	}
	if result.Added != 6 {
		t.Errorf("Expected 6 added, got %d", result.Added)
	}
	if result.Skipped != 1 {
		t.Errorf("Expected 1 skipped (no id), got %d", result.Skipped)
	}
	if result.ImportID == "" {
		t.Errorf("Expected an import id to be assigned")
	}

	wantKinds := map[string]string{
		"9001": archive.KindText,
		"9002": archive.KindRetweet,
		"9003": archive.KindReply,
		"9004": archive.KindThread,
		"9005": archive.KindQuote,
		"9006": archive.KindMedia,
	}
	for id, want := range wantKinds {
		entry, err := archive.GetEntry(ctx, testDB, id)
		if err != nil {
			t.Fatalf("GetEntry(%s) failed: %v", id, err)
		}
		if entry.Kind != want {
			t.Errorf("Entry %s: expected kind %q, got %q", id, want, entry.Kind)
		}
	}

	plain, err := archive.GetEntry(ctx, testDB, "9001")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if plain.FavoriteCount != 12 || plain.RetweetCount != 3 {
		t.Errorf("Expected counters 12/3, got %d/%d", plain.FavoriteCount, plain.RetweetCount)
	}
	// Mon Sep 28 10:00:00 +0000 2020
	if plain.CreatedAt != 1601287200 {
		t.Errorf("Expected created_at 1601287200, got %v", plain.CreatedAt)
	}
	if plain.Length != archive.LengthShort {
		t.Errorf("Expected short bucket, got %q", plain.Length)
	}

	// Unparseable counters degrade to zero instead of failing the import.
	thread, err := archive.GetEntry(ctx, testDB, "9004")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if thread.RetweetCount != 0 {
		t.Errorf("Expected unparseable retweet_count to become 0, got %d", thread.RetweetCount)
	}
	if thread.InReplyToID != "9001" {
		t.Errorf("Expected in_reply_to_id 9001, got %q", thread.InReplyToID)
	}

	quote, err := archive.GetEntry(ctx, testDB, "9005")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if quote.QuotedID != "888777666" {
		t.Errorf("Expected quoted_id 888777666, got %q", quote.QuotedID)
	}

	media, err := archive.GetEntry(ctx, testDB, "9006")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if media.MediaURL != "https://pbs.twimg.com/media/xyz.jpg" || media.MediaKind != "photo" {
		t.Errorf("Expected media decoration, got %q / %q", media.MediaURL, media.MediaKind)
	}
}

func TestImportIdempotent(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()

	first, err := Import(ctx, testDB, "tweets.js", []byte(archiveFixture), Options{})
	if err != nil {
		t.Fatalf("First import failed: %v", err)
	}
	if first.Added != 6 {
		t.Fatalf("Expected 6 added on first run, got %d", first.Added)
	}

	second, err := Import(ctx, testDB, "tweets.js", []byte(archiveFixture), Options{})
	if err != nil {
		t.Fatalf("Second import failed: %v", err)
	}
	if second.Added != 0 {
		t.Errorf("Expected 0 added on rerun, got %d", second.Added)
	}
	if second.Skipped != 7 {
		t.Errorf("Expected 7 skipped on rerun, got %d", second.Skipped)
	}

	// Both runs are recorded in the history.
	records, err := ListImports(ctx, testDB)
	if err != nil {
		t.Fatalf("ListImports failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 import records, got %d", len(records))
	}
	addedCounts := map[int]bool{}
	for _, rec := range records {
		if rec.File != "tweets.js" {
			t.Errorf("Expected file tweets.js, got %q", rec.File)
		}
		addedCounts[rec.Added] = true
	}
	if !addedCounts[6] || !addedCounts[0] {
		t.Errorf("Expected one record with 6 added and one with 0, got %+v", records)
	}
}

func TestImportSelfIDThreadDetection(t *testing.T) {
	// A reply to the owner's account whose parent tweet is missing from
	// the file (deleted, or in another part) still counts as a thread
	// continuation when SelfID is provided.
	const selfReply = `window.YTD.tweets.part0 = [
  {
    "tweet" : {
      "id_str" : "8001",
      "full_text" : "continuing my earlier point",
      "created_at" : "Mon Sep 28 11:00:00 +0000 2020",
      "favorite_count" : "0",
      "retweet_count" : "0",
      "in_reply_to_status_id_str" : "7999",
      "in_reply_to_user_id_str" : "42"
    }
  }
]`

	ctx := context.Background()

	withSelf := setupTestDB(t)
	defer withSelf.Close()
	if _, err := Import(ctx, withSelf, "tweets.js", []byte(selfReply), Options{SelfID: "42"}); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	entry, err := archive.GetEntry(ctx, withSelf, "8001")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if entry.Kind != archive.KindThread {
		t.Errorf("Expected thread kind with SelfID, got %q", entry.Kind)
	}

	withoutSelf := setupTestDB(t)
	defer withoutSelf.Close()
	if _, err := Import(ctx, withoutSelf, "tweets.js", []byte(selfReply), Options{}); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	entry, err = archive.GetEntry(ctx, withoutSelf, "8001")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if entry.Kind != archive.KindReply {
		t.Errorf("Expected reply kind without SelfID, got %q", entry.Kind)
	}
}

func TestImportMalformedArchive(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()

	_, err := Import(ctx, testDB, "tweets.js", []byte("var nothing = 1;"), Options{})
	if !errors.Is(err, ErrMalformedArchive) {
		t.Errorf("Expected ErrMalformedArchive for missing array, got %v", err)
	}

	_, err = Import(ctx, testDB, "tweets.js", []byte(`window.YTD.tweets.part0 = [{"tweet": }]`), Options{})
	if !errors.Is(err, ErrMalformedArchive) {
		t.Errorf("Expected ErrMalformedArchive for broken JSON, got %v", err)
	}
}
