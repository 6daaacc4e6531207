package archive

import (
	"context"
	"errors"
	"testing"
)

func entryIDs(entries []Entry) []string {
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}
	return ids
}

func assertIDs(t *testing.T, entries []Entry, want ...string) {
	t.Helper()

	got := entryIDs(entries)
	if len(got) != len(want) {
		t.Fatalf("Expected entries %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected entries %v, got %v", want, got)
		}
	}
}

func TestListEntriesEmptyArchive(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()

	page, err := ListEntries(ctx, testDB, DefaultFilters())
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}

	if len(page.Entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(page.Entries))
	}
	want := Pagination{Page: 1, Limit: 50, Total: 0, TotalPages: 0}
	if page.Pagination != want {
		t.Errorf("Expected pagination %+v, got %+v", want, page.Pagination)
	}
}

func TestListEntriesSearchWithStemming(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	seedEntry(t, ctx, testDB, Entry{ID: "1", Text: "I love running every morning", CreatedAt: 100})
	seedEntry(t, ctx, testDB, Entry{ID: "2", Text: "Studies show exercise helps", CreatedAt: 200})
	seedEntry(t, ctx, testDB, Entry{ID: "3", Text: "RT running marathon", Kind: KindRetweet, CreatedAt: 300})

	// The retweet toggle removes entry 3 even though its text matches.
	filters := DefaultFilters()
	filters.Search = "running"
	page, err := ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "1")
	if page.Pagination.Total != 1 {
		t.Errorf("Expected total 1, got %d", page.Pagination.Total)
	}

	// With retweets allowed, both textual matches come back.
	filters.ExcludeRetweets = false
	page, err = ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "3", "1")

	// An irregular form reaches the same entries through its stem:
	// "ran" stems to "run", which substring-matches "running".
	filters = DefaultFilters()
	filters.Search = "ran"
	page, err = ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "1")
}

func TestListEntriesSearchPhrase(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	seedEntry(t, ctx, testDB, Entry{ID: "1", Text: "Deep Work changed how I think", CreatedAt: 100})
	seedEntry(t, ctx, testDB, Entry{ID: "2", Text: "deep thoughts about work", CreatedAt: 200})

	// A quoted phrase must match contiguously, case-insensitively.
	filters := DefaultFilters()
	filters.Search = `"deep work"`
	page, err := ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "1")
}

func TestListEntriesSearchRequiresAllTokens(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	seedEntry(t, ctx, testDB, Entry{ID: "1", Text: "morning running routine", CreatedAt: 100})
	seedEntry(t, ctx, testDB, Entry{ID: "2", Text: "morning coffee", CreatedAt: 200})
	seedEntry(t, ctx, testDB, Entry{ID: "3", Text: "running shoes", CreatedAt: 300})

	// Each single token matches its own subset...
	filters := DefaultFilters()
	filters.Search = "running"
	page, err := ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "3", "1")

	filters.Search = "morning"
	page, err = ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "2", "1")

	// ...but the combined query only admits entries matching every token.
	filters.Search = "running morning"
	page, err = ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "1")
}

func TestListEntriesTagANDSemantics(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	seedEntry(t, ctx, testDB, Entry{ID: "1", Text: "both", CreatedAt: 100})
	seedEntry(t, ctx, testDB, Entry{ID: "2", Text: "philosophy only", CreatedAt: 200})
	seedEntry(t, ctx, testDB, Entry{ID: "3", Text: "art only", CreatedAt: 300})
	seedEntry(t, ctx, testDB, Entry{ID: "4", Text: "all three", CreatedAt: 400})

	attach := func(id string, names ...string) {
		for _, name := range names {
			if _, err := TagEntry(ctx, testDB, id, name, SourceManual); err != nil {
				t.Fatalf("TagEntry(%s, %s) failed: %v", id, name, err)
			}
		}
	}
	attach("1", "philosophy", "art")
	attach("2", "philosophy")
	attach("3", "art")
	attach("4", "philosophy", "art", "music")

	// Multiple tags intersect: only entries carrying every requested tag.
	filters := DefaultFilters()
	filters.Tags = []string{"philosophy", "art"}
	page, err := ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "4", "1")
	if page.Pagination.Total != 2 {
		t.Errorf("Expected total 2, got %d", page.Pagination.Total)
	}

	// An entry carrying only two of three requested tags must not match.
	filters.Tags = []string{"philosophy", "art", "music"}
	page, err = ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "4")

	// A single tag is plain membership.
	filters.Tags = []string{"philosophy"}
	page, err = ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "4", "2", "1")

	// Tag names are case-folded before matching.
	filters.Tags = []string{"PHILOSOPHY", "Art"}
	page, err = ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "4", "1")

	// An unknown tag is not an error, it just matches nothing.
	filters.Tags = []string{"nope"}
	page, err = ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(page.Entries) != 0 || page.Pagination.Total != 0 {
		t.Errorf("Expected empty result for unknown tag, got %v", entryIDs(page.Entries))
	}
}

func TestListEntriesThreadVisibility(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	// t1 opens a thread; t2 continues it; t3 is a continuation whose
	// parent never made it into the archive; t4 carries the thread kind
	// without any parent reference.
	seedEntry(t, ctx, testDB, Entry{ID: "t1", Text: "thread opener", CreatedAt: 100})
	seedEntry(t, ctx, testDB, Entry{ID: "t2", Text: "thread continuation", Kind: KindThread, InReplyToID: "t1", CreatedAt: 200})
	seedEntry(t, ctx, testDB, Entry{ID: "t3", Text: "orphaned continuation", Kind: KindThread, InReplyToID: "gone-404", CreatedAt: 300})
	seedEntry(t, ctx, testDB, Entry{ID: "t4", Text: "starter with thread kind", Kind: KindThread, CreatedAt: 400})

	// Interior continuations are always hidden from listings; entries
	// whose parent cannot be resolved are treated as starters.
	page, err := ListEntries(ctx, testDB, DefaultFilters())
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "t4", "t3", "t1")

	// The explicit toggle also removes continuations with a parent id,
	// resolvable or not, but keeps starters.
	filters := DefaultFilters()
	filters.ExcludeThreads = true
	page, err = ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "t4", "t1")

	// thread-start is detected structurally: something replies to t1.
	filters = DefaultFilters()
	filters.Kind = "thread-start"
	page, err = ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "t1")
}

func TestListEntriesKindFilters(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	seedEntry(t, ctx, testDB, Entry{ID: "a", Text: "plain", CreatedAt: 100})
	seedEntry(t, ctx, testDB, Entry{ID: "b", Text: "with media", Kind: KindMedia, MediaURL: "https://example.com/x.png", CreatedAt: 200})
	seedEntry(t, ctx, testDB, Entry{ID: "c", Text: "a reply", Kind: KindReply, InReplyToID: "999", CreatedAt: 300})
	seedEntry(t, ctx, testDB, Entry{ID: "d", Text: "RT someone", Kind: KindRetweet, CreatedAt: 400})

	// Retweets and replies are hidden by default.
	page, err := ListEntries(ctx, testDB, DefaultFilters())
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "b", "a")

	filters := DefaultFilters()
	filters.Kind = KindMedia
	page, err = ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "b")

	// Asking for retweets while the exclusion toggle is still on yields
	// nothing; the toggle has to be dropped too.
	filters = DefaultFilters()
	filters.Kind = KindRetweet
	page, err = ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(page.Entries) != 0 {
		t.Errorf("Expected contradictory filters to match nothing, got %v", entryIDs(page.Entries))
	}

	filters.ExcludeRetweets = false
	page, err = ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "d")

	filters = DefaultFilters()
	filters.ExcludeReplies = false
	page, err = ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "c", "b", "a")
}

func TestListEntriesSwipeAndReviewedFilters(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	seedEntry(t, ctx, testDB, Entry{ID: "1", Text: "liked", CreatedAt: 100})
	seedEntry(t, ctx, testDB, Entry{ID: "2", Text: "disliked", CreatedAt: 200})
	seedEntry(t, ctx, testDB, Entry{ID: "3", Text: "untouched", CreatedAt: 300})

	if _, err := SwipeEntry(ctx, testDB, "1", SwipeLike); err != nil {
		t.Fatalf("SwipeEntry failed: %v", err)
	}
	if _, err := SwipeEntry(ctx, testDB, "2", SwipeDislike); err != nil {
		t.Fatalf("SwipeEntry failed: %v", err)
	}

	filters := DefaultFilters()
	filters.Swipe = SwipeLike
	page, err := ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "1")

	// The unreviewed pseudo-value selects entries with no verdict at all.
	filters.Swipe = "unreviewed"
	page, err = ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "3")

	filters = DefaultFilters()
	filters.Reviewed = "true"
	page, err = ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "2", "1")

	filters.Reviewed = "false"
	page, err = ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "3")
}

func TestListEntriesLengthFilter(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	seedEntry(t, ctx, testDB, Entry{ID: "1", Text: "short", CharCount: 50, CreatedAt: 100})
	seedEntry(t, ctx, testDB, Entry{ID: "2", Text: "medium", CharCount: 200, CreatedAt: 200})
	seedEntry(t, ctx, testDB, Entry{ID: "3", Text: "long", CharCount: 400, CreatedAt: 300})

	filters := DefaultFilters()
	filters.Length = LengthMedium
	page, err := ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "2")
}

func TestListEntriesSorting(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	seedEntry(t, ctx, testDB, Entry{ID: "1", Text: "oldest", CreatedAt: 100, FavoriteCount: 5})
	seedEntry(t, ctx, testDB, Entry{ID: "2", Text: "middle", CreatedAt: 200, FavoriteCount: 1})
	seedEntry(t, ctx, testDB, Entry{ID: "3", Text: "newest", CreatedAt: 300, FavoriteCount: 3})

	// Default: newest first.
	page, err := ListEntries(ctx, testDB, DefaultFilters())
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "3", "2", "1")

	// Only a literal asc (any case) flips the direction.
	filters := DefaultFilters()
	filters.Order = "ASC"
	page, err = ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "1", "2", "3")

	filters.Order = "sideways"
	page, err = ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "3", "2", "1")

	filters = DefaultFilters()
	filters.Sort = "favorite_count"
	page, err = ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "1", "3", "2")

	// Anything off the allow-list silently falls back to creation time.
	filters = DefaultFilters()
	filters.Sort = "invalid_column"
	page, err = ListEntries(ctx, testDB, filters)
	if err != nil {
		t.Fatalf("ListEntries failed with fallback sort: %v", err)
	}
	assertIDs(t, page.Entries, "3", "2", "1")
}

func TestListEntriesPagination(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	ids := []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7"}
	for i, id := range ids {
		seedEntry(t, ctx, testDB, Entry{ID: id, Text: "entry " + id, CreatedAt: float64(100 + i)})
	}

	filters := DefaultFilters()
	filters.Limit = 3

	seen := map[string]bool{}
	fetched := 0
	var totalPages int
	for pageNum := 1; ; pageNum++ {
		filters.Page = pageNum
		page, err := ListEntries(ctx, testDB, filters)
		if err != nil {
			t.Fatalf("ListEntries page %d failed: %v", pageNum, err)
		}
		if page.Pagination.Total != len(ids) {
			t.Errorf("Page %d: expected total %d, got %d", pageNum, len(ids), page.Pagination.Total)
		}
		totalPages = page.Pagination.TotalPages
		if len(page.Entries) == 0 {
			break
		}
		for _, entry := range page.Entries {
			if seen[entry.ID] {
				t.Errorf("Entry %s appeared on more than one page", entry.ID)
			}
			seen[entry.ID] = true
		}
		fetched += len(page.Entries)
	}

	// Walking every page yields each matching entry exactly once.
	if fetched != len(ids) {
		t.Errorf("Expected to fetch %d entries across pages, got %d", len(ids), fetched)
	}
	if totalPages != 3 {
		t.Errorf("Expected 3 total pages for 7 entries at limit 3, got %d", totalPages)
	}

	// Nonsense paging values fall back to the defaults instead of failing.
	page, err := ListEntries(ctx, testDB, Filters{Page: -2, Limit: 0})
	if err != nil {
		t.Fatalf("ListEntries with bad paging failed: %v", err)
	}
	if page.Pagination.Page != 1 || page.Pagination.Limit != 50 {
		t.Errorf("Expected page 1 limit 50, got %+v", page.Pagination)
	}
}

func TestListEntriesPaginationWithMultiTagGrouping(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	both := []string{"g1", "g2", "g3", "g4", "g5"}
	for i, id := range both {
		seedEntry(t, ctx, testDB, Entry{ID: id, Text: "grouped " + id, CreatedAt: float64(100 + i)})
		for _, name := range []string{"alpha", "beta"} {
			if _, err := TagEntry(ctx, testDB, id, name, SourceManual); err != nil {
				t.Fatalf("TagEntry failed: %v", err)
			}
		}
	}
	seedEntry(t, ctx, testDB, Entry{ID: "g6", Text: "alpha only", CreatedAt: 200})
	if _, err := TagEntry(ctx, testDB, "g6", "alpha", SourceManual); err != nil {
		t.Fatalf("TagEntry failed: %v", err)
	}

	filters := DefaultFilters()
	filters.Tags = []string{"alpha", "beta"}
	filters.Limit = 2

	// The join produces two rows per matching entry; the total must count
	// groups, not rows.
	seen := map[string]bool{}
	for pageNum := 1; pageNum <= 3; pageNum++ {
		filters.Page = pageNum
		page, err := ListEntries(ctx, testDB, filters)
		if err != nil {
			t.Fatalf("ListEntries page %d failed: %v", pageNum, err)
		}
		if page.Pagination.Total != len(both) {
			t.Errorf("Page %d: expected total %d, got %d", pageNum, len(both), page.Pagination.Total)
		}
		if page.Pagination.TotalPages != 3 {
			t.Errorf("Page %d: expected 3 total pages, got %d", pageNum, page.Pagination.TotalPages)
		}
		for _, entry := range page.Entries {
			if seen[entry.ID] {
				t.Errorf("Entry %s appeared on more than one page", entry.ID)
			}
			seen[entry.ID] = true
		}
	}

	if len(seen) != len(both) {
		t.Errorf("Expected to see %d distinct entries, got %d", len(both), len(seen))
	}
	for _, id := range both {
		if !seen[id] {
			t.Errorf("Entry %s never appeared on any page", id)
		}
	}
}

func TestListEntriesDecorations(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	seedEntry(t, ctx, testDB, Entry{ID: "d1", Text: "tagged entry", CreatedAt: 100})
	seedEntry(t, ctx, testDB, Entry{ID: "d2", Text: "quotes d1", Kind: KindQuote, QuotedID: "d1", CreatedAt: 200})
	seedEntry(t, ctx, testDB, Entry{ID: "d3", Text: "quotes a ghost", Kind: KindQuote, QuotedID: "gone", CreatedAt: 300})

	for _, name := range []string{"first", "second"} {
		if _, err := TagEntry(ctx, testDB, "d1", name, SourceManual); err != nil {
			t.Fatalf("TagEntry failed: %v", err)
		}
	}

	page, err := ListEntries(ctx, testDB, DefaultFilters())
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	assertIDs(t, page.Entries, "d3", "d2", "d1")

	byID := map[string]Entry{}
	for _, entry := range page.Entries {
		byID[entry.ID] = entry
	}

	if tags := byID["d1"].Tags; len(tags) != 2 || tags[0].Name != "first" || tags[1].Name != "second" {
		t.Errorf("Expected d1 tags [first second], got %v", tags)
	}
	if byID["d2"].Tags == nil || byID["d3"].Tags == nil {
		t.Errorf("Expected untagged entries to carry an empty tag list, not nil")
	}

	if byID["d2"].Quoted == nil || byID["d2"].Quoted.Text != "tagged entry" {
		t.Errorf("Expected d2 to inline the quoted entry, got %+v", byID["d2"].Quoted)
	}
	if byID["d3"].Quoted != nil {
		t.Errorf("Expected nil quoted decoration for missing target, got %+v", byID["d3"].Quoted)
	}
}

func TestListEntriesStorageFailure(t *testing.T) {
	testDB := setupTestDB(t)
	testDB.Close()

	_, err := ListEntries(context.Background(), testDB, DefaultFilters())
	if !errors.Is(err, ErrQueryFailed) {
		t.Errorf("Expected ErrQueryFailed from closed database, got %v", err)
	}
}

func TestSwipeQueue(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	seedEntry(t, ctx, testDB, Entry{ID: "q1", Text: "best tweet", CreatedAt: 100, FavoriteCount: 10})
	seedEntry(t, ctx, testDB, Entry{ID: "q2", Text: "ok tweet", CreatedAt: 200, FavoriteCount: 5, CharCount: 200})
	seedEntry(t, ctx, testDB, Entry{ID: "q3", Text: "RT loud tweet", Kind: KindRetweet, CreatedAt: 300, FavoriteCount: 99})
	seedEntry(t, ctx, testDB, Entry{ID: "q4", Text: "a reply", Kind: KindReply, InReplyToID: "x", CreatedAt: 400, FavoriteCount: 50})
	seedEntry(t, ctx, testDB, Entry{ID: "q5", Text: "thread part", Kind: KindThread, InReplyToID: "q1", CreatedAt: 500, FavoriteCount: 70})
	seedEntry(t, ctx, testDB, Entry{ID: "q6", Text: "already liked", CreatedAt: 600, FavoriteCount: 7})
	seedEntry(t, ctx, testDB, Entry{ID: "q7", Text: "photo tweet", Kind: KindMedia, MediaURL: "https://example.com/y.jpg", CreatedAt: 700, FavoriteCount: 8})

	if _, err := SwipeEntry(ctx, testDB, "q6", SwipeLike); err != nil {
		t.Fatalf("SwipeEntry failed: %v", err)
	}

	// Retweets, replies, thread continuations, and already-swiped entries
	// never enter the queue; the rest rank by engagement.
	result, err := SwipeQueue(ctx, testDB, QueueFilters{})
	if err != nil {
		t.Fatalf("SwipeQueue failed: %v", err)
	}
	assertIDs(t, result.Entries, "q1", "q7", "q2")
	if result.Remaining != 3 {
		t.Errorf("Expected 3 remaining, got %d", result.Remaining)
	}

	// A smaller limit truncates the batch but not the remaining count.
	result, err = SwipeQueue(ctx, testDB, QueueFilters{Limit: 2})
	if err != nil {
		t.Fatalf("SwipeQueue failed: %v", err)
	}
	assertIDs(t, result.Entries, "q1", "q7")
	if result.Remaining != 3 {
		t.Errorf("Expected 3 remaining with limit 2, got %d", result.Remaining)
	}

	// Queue filters narrow the pool.
	result, err = SwipeQueue(ctx, testDB, QueueFilters{Length: LengthMedium})
	if err != nil {
		t.Fatalf("SwipeQueue failed: %v", err)
	}
	assertIDs(t, result.Entries, "q2")
	if result.Remaining != 1 {
		t.Errorf("Expected 1 remaining for medium length, got %d", result.Remaining)
	}

	for _, id := range []string{"q1", "q7"} {
		if _, err := TagEntry(ctx, testDB, id, "pinned", SourceManual); err != nil {
			t.Fatalf("TagEntry failed: %v", err)
		}
	}
	result, err = SwipeQueue(ctx, testDB, QueueFilters{Tags: []string{"pinned"}})
	if err != nil {
		t.Fatalf("SwipeQueue failed: %v", err)
	}
	assertIDs(t, result.Entries, "q1", "q7")
}

func TestSwipeQueueTieBreaksOnRecency(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	seedEntry(t, ctx, testDB, Entry{ID: "old", Text: "older tweet", CreatedAt: 100, FavoriteCount: 10})
	seedEntry(t, ctx, testDB, Entry{ID: "new", Text: "newer tweet", CreatedAt: 200, FavoriteCount: 10})

	result, err := SwipeQueue(ctx, testDB, QueueFilters{})
	if err != nil {
		t.Fatalf("SwipeQueue failed: %v", err)
	}
	assertIDs(t, result.Entries, "new", "old")
}
