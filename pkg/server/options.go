package server

import (
	"net/url"
	"strconv"
	"strings"

	"tweetvault/pkg/archive"
)

// parseFilters maps listing query parameters onto a filter set. Parsing is
// forgiving throughout: unparseable numbers and booleans fall back to the
// defaults instead of failing the request.
func parseFilters(q url.Values) archive.Filters {
	f := archive.DefaultFilters()

	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		f.Page = n
	}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		f.Limit = n
	}

	f.Search = q.Get("search")
	f.Kind = q.Get("type")
	f.Length = q.Get("length")
	f.Swipe = q.Get("swipe")
	f.Tags = splitTags(q.Get("tag"))

	switch q.Get("reviewed") {
	case "true":
		f.Reviewed = "true"
	case "false":
		f.Reviewed = "false"
	}

	f.ExcludeRetweets = parseBool(q.Get("excludeRetweets"), true)
	f.ExcludeReplies = parseBool(q.Get("excludeReplies"), true)
	f.ExcludeThreads = parseBool(q.Get("excludeThreads"), false)

	if v := q.Get("sort"); v != "" {
		f.Sort = v
	}
	if v := q.Get("order"); v != "" {
		f.Order = v
	}

	return f
}

// parseQueueFilters maps swipe-queue query parameters; the queue only
// honors limit, length and tag.
func parseQueueFilters(q url.Values) archive.QueueFilters {
	f := archive.QueueFilters{
		Length: q.Get("length"),
		Tags:   splitTags(q.Get("tag")),
	}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		f.Limit = n
	}
	return f
}

func splitTags(raw string) []string {
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

func parseBool(raw string, fallback bool) bool {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}
