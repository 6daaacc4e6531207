package archive

// Entry kinds. Decided once at import time; the query engine only filters
// on them and never reclassifies.
const (
	KindText    = "text"
	KindMedia   = "media"
	KindQuote   = "quote"
	KindReply   = "reply"
	KindRetweet = "retweet"
	KindThread  = "thread"
)

// Swipe verdicts. The empty string marks an entry nobody has triaged yet.
const (
	SwipeNone      = ""
	SwipeLike      = "like"
	SwipeDislike   = "dislike"
	SwipeSuperlike = "superlike"
	SwipeLater     = "later"
)

// Length buckets derived from character count.
const (
	LengthShort  = "short"
	LengthMedium = "medium"
	LengthLong   = "long"
)

// Tag categories.
const (
	CategoryTopic   = "topic"
	CategoryPattern = "pattern"
	CategoryUse     = "use"
	CategoryCustom  = "custom"
)

// Tag association sources.
const (
	SourceManual = "manual"
	SourceAuto   = "auto"
)

type Entry struct {
	ID            string  `json:"id"`
	Text          string  `json:"text"`
	CreatedAt     float64 `json:"created_at"`
	FavoriteCount int     `json:"favorite_count"`
	RetweetCount  int     `json:"retweet_count"`
	Kind          string  `json:"kind"`
	CharCount     int     `json:"char_count"`
	Length        string  `json:"length"`
	InReplyToID   string  `json:"in_reply_to_id,omitempty"`
	QuotedID      string  `json:"quoted_id,omitempty"`
	MediaURL      string  `json:"media_url,omitempty"`
	MediaKind     string  `json:"media_kind,omitempty"`
	Score         float64 `json:"score"`
	Swipe         string  `json:"swipe"`
	Notes         string  `json:"notes,omitempty"`
	Reviewed      bool    `json:"reviewed"`
	ReviewedAt    float64 `json:"reviewed_at,omitempty"`

	// Decorations filled in by lookups, not stored on the entries row.
	Tags   []Tag        `json:"tags"`
	Quoted *QuotedEntry `json:"quoted,omitempty"`
}

// QuotedEntry is the inlined subset of another archived entry that this
// entry quotes.
type QuotedEntry struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	MediaURL  string  `json:"media_url,omitempty"`
	MediaKind string  `json:"media_kind,omitempty"`
	CreatedAt float64 `json:"created_at"`
}

type Tag struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Color     string  `json:"color,omitempty"`
	CreatedAt float64 `json:"created_at"`

	// EntryCount is only populated by ListTags.
	EntryCount int `json:"entry_count,omitempty"`
}

// Filters is the full structured parameter set for one listing query.
// Request scoped, never persisted.
type Filters struct {
	Page            int
	Limit           int
	Search          string
	Kind            string
	Length          string
	Swipe           string
	Tags            []string
	Reviewed        string
	ExcludeRetweets bool
	ExcludeReplies  bool
	ExcludeThreads  bool
	Sort            string
	Order           string
}

// DefaultFilters returns the filter set an empty request resolves to.
func DefaultFilters() Filters {
	return Filters{
		Page:            1,
		Limit:           50,
		ExcludeRetweets: true,
		ExcludeReplies:  true,
		Sort:            "created_at",
		Order:           "desc",
	}
}

func (f Filters) normalized() Filters {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 50
	}
	if f.Limit > 200 {
		f.Limit = 200
	}
	return f
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type Page struct {
	Entries    []Entry    `json:"entries"`
	Pagination Pagination `json:"pagination"`
}

// QueueFilters narrows the swipe queue. The base predicate (untriaged,
// not a retweet/reply/thread continuation) is fixed.
type QueueFilters struct {
	Limit  int
	Length string
	Tags   []string
}

func (f QueueFilters) normalized() QueueFilters {
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	return f
}

type QueueResult struct {
	Entries   []Entry `json:"entries"`
	Remaining int     `json:"remaining"`
}

// LengthBucket maps a character count onto the classic tweet size tiers.
func LengthBucket(charCount int) string {
	switch {
	case charCount <= 140:
		return LengthShort
	case charCount <= 280:
		return LengthMedium
	default:
		return LengthLong
	}
}

func ValidKind(kind string) bool {
	switch kind {
	case KindText, KindMedia, KindQuote, KindReply, KindRetweet, KindThread:
		return true
	}
	return false
}

func ValidSwipe(verdict string) bool {
	switch verdict {
	case SwipeNone, SwipeLike, SwipeDislike, SwipeSuperlike, SwipeLater:
		return true
	}
	return false
}

func ValidCategory(category string) bool {
	switch category {
	case CategoryTopic, CategoryPattern, CategoryUse, CategoryCustom:
		return true
	}
	return false
}
