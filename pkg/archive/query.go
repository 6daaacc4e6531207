package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tweetvault/pkg/search"
)

// ErrQueryFailed wraps storage failures from the listing queries. The
// underlying message is preserved for the caller; nothing is retried.
var ErrQueryFailed = errors.New("query failed")

// sortColumns is the allow-list for the sort option. Anything else falls
// back to creation time.
var sortColumns = map[string]string{
	"created_at":     "e.created_at",
	"favorite_count": "e.favorite_count",
	"retweet_count":  "e.retweet_count",
	"char_count":     "e.char_count",
	"score":          "e.score",
}

// entryQuery is a composed filter over the entries table. The count query
// and the page query are both rendered from the same value so the two can
// never disagree on which entries match.
type entryQuery struct {
	joins      []string
	conds      []string
	args       []any
	having     string
	havingArgs []any
	orderBy    string
	grouped    bool
}

func placeholders(n int) string {
	return strings.Repeat("?,", n-1) + "?"
}

// buildEntryQuery translates a filter set into a composed query. Joins
// carry no placeholders of their own, so conds and args grow in lockstep
// and render in matching order.
func buildEntryQuery(f Filters) entryQuery {
	var q entryQuery

	// Interior thread replies never show up in listings: a thread entry
	// whose parent still exists in the archive is reachable only through
	// its starter. A thread entry with no resolvable parent is treated
	// as a starter and stays visible.
	q.joins = append(q.joins, "LEFT JOIN entries parent ON parent.id = e.in_reply_to_id")
	q.conds = append(q.conds, "NOT (e.kind = 'thread' AND parent.id IS NOT NULL)")

	if f.Search != "" {
		clauses, args := search.Predicates(search.Tokenize(f.Search), "e.text")
		q.conds = append(q.conds, clauses...)
		q.args = append(q.args, args...)
	}

	switch f.Kind {
	case "":
	case "thread-start":
		// Structural detection: something replies to this entry.
		q.conds = append(q.conds, "EXISTS (SELECT 1 FROM entries child WHERE child.in_reply_to_id = e.id AND child.id != e.id)")
	default:
		q.conds = append(q.conds, "e.kind = ?")
		q.args = append(q.args, f.Kind)
	}

	if f.Length != "" {
		q.conds = append(q.conds, "e.length = ?")
		q.args = append(q.args, f.Length)
	}

	switch f.Swipe {
	case "":
	case "unreviewed":
		q.conds = append(q.conds, "e.swipe = ''")
	default:
		q.conds = append(q.conds, "e.swipe = ?")
		q.args = append(q.args, f.Swipe)
	}

	switch f.Reviewed {
	case "true":
		q.conds = append(q.conds, "e.reviewed = TRUE")
	case "false":
		q.conds = append(q.conds, "e.reviewed = FALSE")
	}

	if f.ExcludeRetweets {
		q.conds = append(q.conds, "e.kind != 'retweet'")
	}
	if f.ExcludeReplies {
		q.conds = append(q.conds, "e.kind != 'reply'")
	}
	if f.ExcludeThreads {
		// Thread starters carry the thread kind but no parent; they are
		// exempt from this toggle.
		q.conds = append(q.conds, "NOT (e.kind = 'thread' AND e.in_reply_to_id != '')")
	}

	q.filterTags(f.Tags)
	q.orderBy = orderClause(f.Sort, f.Order)

	return q
}

// buildQueueQuery composes the swipe queue: untriaged entries that are
// not retweets, replies, or thread continuations, ranked by engagement.
func buildQueueQuery(f QueueFilters) entryQuery {
	var q entryQuery

	q.conds = append(q.conds, "e.swipe = ''", "e.kind NOT IN ('retweet', 'reply', 'thread')")

	if f.Length != "" {
		q.conds = append(q.conds, "e.length = ?")
		q.args = append(q.args, f.Length)
	}

	q.filterTags(f.Tags)
	q.orderBy = "e.favorite_count DESC, e.created_at DESC"

	return q
}

// filterTags applies tag membership with AND semantics across multiple
// names. The per-entry distinct-match count lives in HAVING because it is
// a property of the grouped result, not of any single row.
func (q *entryQuery) filterTags(names []string) {
	tags := make([]string, 0, len(names))
	for _, name := range names {
		if normalized := NormalizeTagName(name); normalized != "" {
			tags = append(tags, normalized)
		}
	}
	if len(tags) == 0 {
		return
	}

	q.joins = append(q.joins, "INNER JOIN entry_tags et ON et.entry_id = e.id")
	q.conds = append(q.conds, fmt.Sprintf("et.tag IN (%s)", placeholders(len(tags))))
	for _, tag := range tags {
		q.args = append(q.args, tag)
	}

	q.grouped = true
	if len(tags) > 1 {
		q.having = "COUNT(DISTINCT et.tag) = ?"
		q.havingArgs = append(q.havingArgs, len(tags))
	}
}

func orderClause(sort, order string) string {
	column, ok := sortColumns[sort]
	if !ok {
		column = "e.created_at"
	}
	dir := "DESC"
	if strings.EqualFold(order, "asc") {
		dir = "ASC"
	}
	// Tie-break on id so page boundaries stay stable across requests.
	return fmt.Sprintf("%s %s, e.id %s", column, dir, dir)
}

func (q entryQuery) fromWhere() string {
	var sb strings.Builder
	sb.WriteString("FROM entries e")
	for _, join := range q.joins {
		sb.WriteString("\n")
		sb.WriteString(join)
	}
	if len(q.conds) > 0 {
		sb.WriteString("\nWHERE ")
		sb.WriteString(strings.Join(q.conds, " AND "))
	}
	return sb.String()
}

// countSQL renders the total query. Joins can multiply rows, so the plain
// form counts distinct entries; with a post-aggregation condition the
// total is the number of surviving groups instead.
func (q entryQuery) countSQL() (string, []any) {
	args := append([]any{}, q.args...)

	if q.having != "" {
		stmt := fmt.Sprintf("SELECT COUNT(*) FROM (SELECT e.id %s GROUP BY e.id HAVING %s)", q.fromWhere(), q.having)
		return stmt, append(args, q.havingArgs...)
	}

	return "SELECT COUNT(DISTINCT e.id) " + q.fromWhere(), args
}

// pageSQL renders the row fetch for one page over the same composed
// filter the count saw.
func (q entryQuery) pageSQL(limit, offset int) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(entryColumns)
	sb.WriteString("\n")
	sb.WriteString(q.fromWhere())

	args := append([]any{}, q.args...)
	if q.grouped {
		sb.WriteString("\nGROUP BY e.id")
		if q.having != "" {
			sb.WriteString("\nHAVING ")
			sb.WriteString(q.having)
			args = append(args, q.havingArgs...)
		}
	}

	sb.WriteString("\nORDER BY ")
	sb.WriteString(q.orderBy)
	sb.WriteString("\nLIMIT ? OFFSET ?")
	args = append(args, limit, offset)

	return sb.String(), args
}

func fetchEntries(ctx context.Context, db *sql.DB, stmt string, args []any) ([]Entry, error) {
	rows, err := db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ListEntries runs the composed filter twice against storage, once to
// count distinct matches and once to fetch the requested page, then
// decorates the page with tags and quoted entries.
func ListEntries(ctx context.Context, db *sql.DB, filters Filters) (Page, error) {
	f := filters.normalized()
	q := buildEntryQuery(f)

	countStmt, countArgs := q.countSQL()
	var total int
	if err := db.QueryRowContext(ctx, countStmt, countArgs...).Scan(&total); err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}

	pageStmt, pageArgs := q.pageSQL(f.Limit, (f.Page-1)*f.Limit)
	entries, err := fetchEntries(ctx, db, pageStmt, pageArgs)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}

	if err := attachTags(ctx, db, entries); err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	if err := attachQuoted(ctx, db, entries); err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}

	return Page{
		Entries: entries,
		Pagination: Pagination{
			Page:       f.Page,
			Limit:      f.Limit,
			Total:      total,
			TotalPages: (total + f.Limit - 1) / f.Limit,
		},
	}, nil
}

// SwipeQueue returns the next batch of untriaged entries plus how many
// are left in the pool overall.
func SwipeQueue(ctx context.Context, db *sql.DB, filters QueueFilters) (QueueResult, error) {
	f := filters.normalized()
	q := buildQueueQuery(f)

	countStmt, countArgs := q.countSQL()
	var remaining int
	if err := db.QueryRowContext(ctx, countStmt, countArgs...).Scan(&remaining); err != nil {
		return QueueResult{}, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}

	pageStmt, pageArgs := q.pageSQL(f.Limit, 0)
	entries, err := fetchEntries(ctx, db, pageStmt, pageArgs)
	if err != nil {
		return QueueResult{}, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}

	if err := attachTags(ctx, db, entries); err != nil {
		return QueueResult{}, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	if err := attachQuoted(ctx, db, entries); err != nil {
		return QueueResult{}, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}

	return QueueResult{Entries: entries, Remaining: remaining}, nil
}

// attachTags decorates a page of entries with their tags in one batched
// lookup.
func attachTags(ctx context.Context, db *sql.DB, entries []Entry) error {
	for i := range entries {
		entries[i].Tags = []Tag{}
	}
	if len(entries) == 0 {
		return nil
	}

	ids := make([]any, 0, len(entries))
	index := make(map[string]int, len(entries))
	for i, entry := range entries {
		ids = append(ids, entry.ID)
		index[entry.ID] = i
	}

	stmt := fmt.Sprintf(`
	SELECT et.entry_id, t.name, t.category, t.color, t.created_at
	FROM entry_tags et
	JOIN tags t ON t.name = et.tag
	WHERE et.entry_id IN (%s)
	ORDER BY et.entry_id, t.name ASC`, placeholders(len(ids)))

	rows, err := db.QueryContext(ctx, stmt, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var entryID string
		var tag Tag

		if err := rows.Scan(&entryID, &tag.Name, &tag.Category, &tag.Color, &tag.CreatedAt); err != nil {
			return err
		}
		if i, ok := index[entryID]; ok {
			entries[i].Tags = append(entries[i].Tags, tag)
		}
	}

	return rows.Err()
}

// attachQuoted inlines quoted-entry fields for every entry on the page
// whose quoted target still exists. Missing targets are skipped, not
// errors.
func attachQuoted(ctx context.Context, db *sql.DB, entries []Entry) error {
	want := make(map[string][]int)
	for i, entry := range entries {
		if entry.QuotedID != "" {
			want[entry.QuotedID] = append(want[entry.QuotedID], i)
		}
	}
	if len(want) == 0 {
		return nil
	}

	ids := make([]any, 0, len(want))
	for id := range want {
		ids = append(ids, id)
	}

	stmt := fmt.Sprintf(`
	SELECT id, text, media_url, media_kind, created_at
	FROM entries
	WHERE id IN (%s)`, placeholders(len(ids)))

	rows, err := db.QueryContext(ctx, stmt, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var quoted QuotedEntry

		if err := rows.Scan(&quoted.ID, &quoted.Text, &quoted.MediaURL, &quoted.MediaKind, &quoted.CreatedAt); err != nil {
			return err
		}
		for _, i := range want[quoted.ID] {
			q := quoted
			entries[i].Quoted = &q
		}
	}

	return rows.Err()
}
