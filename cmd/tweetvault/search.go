package main

import (
	"fmt"
	"strings"

	"tweetvault/pkg/archive"

	"github.com/spf13/cobra"
)

var (
	searchTypeFlag       string
	searchLengthFlag     string
	searchSwipeFlag      string
	searchTagFlag        string
	searchReviewedFlag   string
	searchSortFlag       string
	searchOrderFlag      string
	searchPageFlag       int
	searchLimitFlag      int
	searchRetweetsFlag   bool
	searchRepliesFlag    bool
	searchNoThreadsFlag  bool
	searchShowedFullFlag bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search and filter archived entries",
	Long: `Search the archive. Bare words match either literally or through their stem and
every term must match; quote a phrase for exact substring match. Structured
filters narrow the result further.

Examples:
  tweetvault search running
  tweetvault search '"hello world"' morning --tag philosophy,art
  tweetvault search --type media --length short --sort favorite_count`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := archive.DefaultFilters()
		f.Search = strings.Join(args, " ")
		f.Kind = searchTypeFlag
		f.Length = searchLengthFlag
		f.Swipe = searchSwipeFlag
		f.Tags = splitTagsFlag(searchTagFlag)
		f.Reviewed = searchReviewedFlag
		f.ExcludeRetweets = !searchRetweetsFlag
		f.ExcludeReplies = !searchRepliesFlag
		f.ExcludeThreads = searchNoThreadsFlag
		if searchSortFlag != "" {
			f.Sort = searchSortFlag
		}
		if searchOrderFlag != "" {
			f.Order = searchOrderFlag
		}
		if searchPageFlag > 0 {
			f.Page = searchPageFlag
		}
		if searchLimitFlag > 0 {
			f.Limit = searchLimitFlag
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		page, err := archive.ListEntries(cmd.Context(), dbConn, f)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if page.Pagination.Total == 0 {
			fmt.Println("No matching entries found.")
			return nil
		}

		fmt.Printf("Found %d matching entries (page %d of %d):\n",
			page.Pagination.Total, page.Pagination.Page, page.Pagination.TotalPages)

		if searchShowedFullFlag {
			for i, entry := range page.Entries {
				fmt.Printf("\n--- Entry %d ---\n", i+1)
				printEntry(entry)
			}
			return nil
		}

		fmt.Println("ID | Kind | Favs | Swipe | Tags | Created At | Text")
		fmt.Println("------------------------------------------------------------")
		for _, entry := range page.Entries {
			text := entry.Text
			if len(text) > 60 {
				text = text[:60] + "…"
			}
			text = strings.ReplaceAll(text, "\n", " ")
			fmt.Printf("%s | %s | %d | %s | %s | %s | %s\n",
				entry.ID, entry.Kind, entry.FavoriteCount, swipeLabel(entry.Swipe),
				formatTagsList(entry.Tags), formatTimestamp(entry.CreatedAt), text)
		}
		return nil
	},
}

func initSearchCmd() {
	searchCmd.Flags().StringVar(&searchTypeFlag, "type", "", "Entry kind (text, media, quote, reply, retweet, thread) or thread-start")
	searchCmd.Flags().StringVar(&searchLengthFlag, "length", "", "Length bucket (short, medium, long)")
	searchCmd.Flags().StringVar(&searchSwipeFlag, "swipe", "", "Swipe verdict (like, dislike, superlike, later) or unreviewed")
	searchCmd.Flags().StringVar(&searchTagFlag, "tag", "", "Comma-separated tag names; entries must carry all of them")
	searchCmd.Flags().StringVar(&searchReviewedFlag, "reviewed", "", "Filter on the reviewed flag (true or false)")
	searchCmd.Flags().StringVar(&searchSortFlag, "sort", "", "Sort column (created_at, favorite_count, retweet_count, char_count, score)")
	searchCmd.Flags().StringVar(&searchOrderFlag, "order", "", "Sort direction: asc, anything else sorts descending")
	searchCmd.Flags().IntVar(&searchPageFlag, "page", 0, "Page number (default 1)")
	searchCmd.Flags().IntVar(&searchLimitFlag, "limit", 0, "Page size (default 50)")
	searchCmd.Flags().BoolVar(&searchRetweetsFlag, "include-retweets", false, "Include retweets, which are excluded by default")
	searchCmd.Flags().BoolVar(&searchRepliesFlag, "include-replies", false, "Include replies, which are excluded by default")
	searchCmd.Flags().BoolVar(&searchNoThreadsFlag, "exclude-threads", false, "Exclude thread continuations (thread starters stay visible)")
	searchCmd.Flags().BoolVar(&searchShowedFullFlag, "full", false, "Print full entry details instead of one line each")
}
