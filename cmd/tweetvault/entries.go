package main

import (
	"errors"
	"fmt"
	"strings"

	"tweetvault/pkg/archive"

	"github.com/spf13/cobra"
)

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Inspect and curate single entries",
	Long:  `Show, swipe, annotate, and delete individual archived entries.`,
}

var showEntryCmd = &cobra.Command{
	Use:   "show [entry-id]",
	Short: "Show an entry",
	Long:  `Print an entry with its tags and, when it quotes another archived entry, the quoted text.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		entry, err := archive.GetEntry(cmd.Context(), dbConn, args[0])
		if errors.Is(err, archive.ErrEntryNotFound) {
			return fmt.Errorf("entry not found: %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to get entry: %w", err)
		}

		printEntry(entry)
		return nil
	},
}

var swipeEntryCmd = &cobra.Command{
	Use:   "swipe [entry-id] [action]",
	Short: "Record a triage verdict on an entry",
	Long: `Record a swipe verdict (like, dislike, superlike, later) on an entry and mark it
reviewed. An empty action ("") clears the verdict and returns the entry to the
unreviewed pool.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		entry, err := archive.SwipeEntry(cmd.Context(), dbConn, args[0], args[1])
		if errors.Is(err, archive.ErrEntryNotFound) {
			return fmt.Errorf("entry not found: %s", args[0])
		}
		if errors.Is(err, archive.ErrInvalidSwipe) {
			return fmt.Errorf("invalid action %q: must be like, dislike, superlike, later, or \"\" to clear", args[1])
		}
		if err != nil {
			return fmt.Errorf("failed to swipe entry: %w", err)
		}

		fmt.Printf("Entry %s marked %s.\n", entry.ID, swipeLabel(entry.Swipe))
		return nil
	},
}

var noteEntryCmd = &cobra.Command{
	Use:   "note [entry-id] [text...]",
	Short: "Set the free-text note on an entry",
	Long:  `Replace the entry's note with the given text. An empty text clears the note.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes := strings.Join(args[1:], " ")

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		entry, err := archive.UpdateEntry(cmd.Context(), dbConn, args[0], &notes, nil, nil)
		if errors.Is(err, archive.ErrEntryNotFound) {
			return fmt.Errorf("entry not found: %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to update entry: %w", err)
		}

		if entry.Notes == "" {
			fmt.Printf("Note cleared on entry %s.\n", entry.ID)
		} else {
			fmt.Printf("Note set on entry %s: %s\n", entry.ID, entry.Notes)
		}
		return nil
	},
}

var scoreEntryCmd = &cobra.Command{
	Use:   "score [entry-id] [score]",
	Short: "Set the quality score on an entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var score float64
		if _, err := fmt.Sscanf(args[1], "%f", &score); err != nil {
			return fmt.Errorf("invalid score %q: %w", args[1], err)
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		entry, err := archive.UpdateEntry(cmd.Context(), dbConn, args[0], nil, &score, nil)
		if errors.Is(err, archive.ErrEntryNotFound) {
			return fmt.Errorf("entry not found: %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to update entry: %w", err)
		}

		fmt.Printf("Entry %s scored %g.\n", entry.ID, entry.Score)
		return nil
	},
}

var deleteEntryCmd = &cobra.Command{
	Use:   "delete [entry-id]",
	Short: "Delete an entry",
	Long:  `Permanently remove an entry and its tag associations from the archive.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		err = archive.DeleteEntry(cmd.Context(), dbConn, args[0])
		if errors.Is(err, archive.ErrEntryNotFound) {
			return fmt.Errorf("entry not found: %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}

		fmt.Printf("Entry %s deleted.\n", args[0])
		return nil
	},
}

func initEntriesCmd() {
	entriesCmd.AddCommand(
		showEntryCmd,
		swipeEntryCmd,
		noteEntryCmd,
		scoreEntryCmd,
		deleteEntryCmd,
	)
}
