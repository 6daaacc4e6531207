package main

import (
	"fmt"
	"sort"

	"tweetvault/pkg/archive"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the archive",
	Long:  `Print entry totals by kind, swipe and length, review progress, tag counts, and import history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		stats, err := archive.CollectStats(cmd.Context(), dbConn)
		if err != nil {
			return fmt.Errorf("failed to collect stats: %w", err)
		}

		fmt.Println("Archive:")
		fmt.Printf("Entries:       %d\n", stats.TotalEntries)
		if stats.TotalEntries > 0 {
			fmt.Printf("Oldest:        %s\n", formatTimestamp(stats.OldestEntry))
			fmt.Printf("Newest:        %s\n", formatTimestamp(stats.NewestEntry))
		}
		fmt.Printf("Reviewed:      %d (%d unreviewed)\n", stats.Reviewed, stats.Unreviewed)
		fmt.Printf("Tagged:        %d entries across %d tags\n", stats.TaggedEntries, stats.TotalTags)
		fmt.Printf("Imports:       %d\n", stats.TotalImports)

		printCounts("By kind:", stats.ByKind)
		printCounts("By length:", stats.ByLength)
		printCounts("By swipe:", stats.BySwipe)

		if len(stats.TopTags) > 0 {
			fmt.Println("\nTop tags:")
			for _, tag := range stats.TopTags {
				fmt.Printf("  %s (%s): %d\n", tag.Name, tag.Category, tag.EntryCount)
			}
		}
		return nil
	},
}

func printCounts(header string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Println("\n" + header)
	for _, key := range keys {
		fmt.Printf("  %-12s %d\n", key, counts[key])
	}
}
