package mcp

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tweetvault/pkg/archive"
)

// RegisterPingTool registers the simple ping tool.
func RegisterPingTool(s *server.MCPServer) {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the tweetvault MCP server is alive."),
	)
	s.AddTool(pingTool, pingHandler)
}

func pingHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("pong"), nil
}

// RegisterSearchEntriesTool registers the search_entries tool, the MCP
// front end of the listing query engine.
func RegisterSearchEntriesTool(s *server.MCPServer, db *sql.DB) {
	searchTool := mcp.NewTool("search_entries",
		mcp.WithDescription("Searches archived entries. Free-text search supports quoted phrases for exact match; bare words are stemmed and all terms must match. Structured filters narrow the result further."),
		mcp.WithString("query", mcp.Description("Free-text search. Quoted phrases match exactly; bare words match literal or stemmed form, all ANDed.")),
		mcp.WithString("type", mcp.Description("Entry kind filter: text, media, quote, reply, retweet, thread, or thread-start for entries that open a thread.")),
		mcp.WithString("length", mcp.Description("Length bucket filter: short, medium, or long.")),
		mcp.WithString("swipe", mcp.Description("Swipe verdict filter: like, dislike, superlike, later, or unreviewed for entries nobody has triaged.")),
		mcp.WithString("tags", mcp.Description("Comma-separated tag names; entries must carry every listed tag.")),
		mcp.WithNumber("page", mcp.Description("Page number, starting at 1.")),
		mcp.WithNumber("limit", mcp.Description("Page size (default 50).")),
		mcp.WithBoolean("include_retweets", mcp.Description("Include retweets, which are excluded by default.")),
		mcp.WithBoolean("include_replies", mcp.Description("Include replies, which are excluded by default.")),
	)
	s.AddTool(searchTool, searchEntriesHandler(db))
}

func searchEntriesHandler(db *sql.DB) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		f := archive.DefaultFilters()
		f.Search = stringArg(request, "query")
		f.Kind = stringArg(request, "type")
		f.Length = stringArg(request, "length")
		f.Swipe = stringArg(request, "swipe")
		f.Tags = splitTags(stringArg(request, "tags"))
		if page, ok := intArg(request, "page"); ok && page > 0 {
			f.Page = page
		}
		if limit, ok := intArg(request, "limit"); ok && limit > 0 {
			f.Limit = limit
		}
		f.ExcludeRetweets = !boolArg(request, "include_retweets", false)
		f.ExcludeReplies = !boolArg(request, "include_replies", false)

		page, err := archive.ListEntries(ctx, db, f)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to search entries: %v", err)), nil
		}

		return jsonResult(page)
	}
}

// RegisterGetEntryTool registers the get_entry tool.
func RegisterGetEntryTool(s *server.MCPServer, db *sql.DB) {
	getEntryTool := mcp.NewTool("get_entry",
		mcp.WithDescription("Retrieves a single archived entry by id, decorated with its tags and quoted entry."),
		mcp.WithString("id", mcp.Required(), mcp.Description("The entry id.")),
	)
	s.AddTool(getEntryTool, getEntryHandler(db))
}

func getEntryHandler(db *sql.DB) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := stringArg(request, "id")
		if id == "" {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}

		entry, err := archive.GetEntry(ctx, db, id)
		if errors.Is(err, archive.ErrEntryNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("Entry '%s' not found.", id)), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to retrieve entry '%s': %v", id, err)), nil
		}

		return jsonResult(entry)
	}
}

// RegisterTagEntryTool registers the tag_entry tool.
func RegisterTagEntryTool(s *server.MCPServer, db *sql.DB) {
	tagEntryTool := mcp.NewTool("tag_entry",
		mcp.WithDescription("Adds or removes tags on an entry. Added tags are created on first use."),
		mcp.WithString("id", mcp.Required(), mcp.Description("The entry id.")),
		mcp.WithString("add_tags", mcp.Description("Comma-separated tag names to attach.")),
		mcp.WithString("remove_tags", mcp.Description("Comma-separated tag names to detach.")),
	)
	s.AddTool(tagEntryTool, tagEntryHandler(db))
}

func tagEntryHandler(db *sql.DB) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := stringArg(request, "id")
		if id == "" {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}

		addTags := splitTags(stringArg(request, "add_tags"))
		removeTags := splitTags(stringArg(request, "remove_tags"))
		if len(addTags) == 0 && len(removeTags) == 0 {
			return mcp.NewToolResultError("At least one of 'add_tags' or 'remove_tags' must be provided."), nil
		}

		for _, name := range addTags {
			if _, err := archive.TagEntry(ctx, db, id, name, archive.SourceManual); err != nil {
				if errors.Is(err, archive.ErrEntryNotFound) {
					return mcp.NewToolResultError(fmt.Sprintf("Entry '%s' not found.", id)), nil
				}
				return mcp.NewToolResultError(fmt.Sprintf("Failed to attach tag '%s': %v", name, err)), nil
			}
		}
		for _, name := range removeTags {
			if err := archive.UntagEntry(ctx, db, id, name); err != nil {
				if errors.Is(err, archive.ErrEntryNotFound) {
					return mcp.NewToolResultError(fmt.Sprintf("Entry '%s' not found.", id)), nil
				}
				return mcp.NewToolResultError(fmt.Sprintf("Failed to detach tag '%s': %v", name, err)), nil
			}
		}

		entry, err := archive.GetEntry(ctx, db, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to retrieve entry '%s' after tagging: %v", id, err)), nil
		}

		return jsonResult(entry)
	}
}

// RegisterSwipeEntryTool registers the swipe_entry tool.
func RegisterSwipeEntryTool(s *server.MCPServer, db *sql.DB) {
	swipeEntryTool := mcp.NewTool("swipe_entry",
		mcp.WithDescription("Records a triage verdict on an entry and marks it reviewed."),
		mcp.WithString("id", mcp.Required(), mcp.Description("The entry id.")),
		mcp.WithString("action", mcp.Required(), mcp.Description("Verdict: like, dislike, superlike, or later.")),
	)
	s.AddTool(swipeEntryTool, swipeEntryHandler(db))
}

func swipeEntryHandler(db *sql.DB) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := stringArg(request, "id")
		if id == "" {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}
		action := stringArg(request, "action")
		if action == "" {
			return mcp.NewToolResultError("'action' parameter is required and must be a non-empty string."), nil
		}

		entry, err := archive.SwipeEntry(ctx, db, id, action)
		if errors.Is(err, archive.ErrEntryNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("Entry '%s' not found.", id)), nil
		}
		if errors.Is(err, archive.ErrInvalidSwipe) {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid action %q: must be like, dislike, superlike, or later.", action)), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to swipe entry '%s': %v", id, err)), nil
		}

		return jsonResult(entry)
	}
}

// RegisterListTagsTool registers the list_tags tool.
func RegisterListTagsTool(s *server.MCPServer, db *sql.DB) {
	listTagsTool := mcp.NewTool("list_tags",
		mcp.WithDescription("Lists every tag in the archive with its category, color, and entry count."),
	)
	s.AddTool(listTagsTool, listTagsHandler(db))
}

func listTagsHandler(db *sql.DB) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tags, err := archive.ListTags(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list tags: %v", err)), nil
		}

		return jsonResult(tags)
	}
}

// RegisterArchiveStatsTool registers the archive_stats tool.
func RegisterArchiveStatsTool(s *server.MCPServer, db *sql.DB) {
	statsTool := mcp.NewTool("archive_stats",
		mcp.WithDescription("Summarizes the archive: entry totals by kind, swipe and length, review progress, tag counts, and import history."),
	)
	s.AddTool(statsTool, archiveStatsHandler(db))
}

func archiveStatsHandler(db *sql.DB) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats, err := archive.CollectStats(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to collect archive stats: %v", err)), nil
		}

		return jsonResult(stats)
	}
}
