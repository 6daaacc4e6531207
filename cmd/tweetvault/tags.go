package main

import (
	"errors"
	"fmt"
	"strings"

	"tweetvault/pkg/archive"

	"github.com/spf13/cobra"
)

var (
	tagCategoryFlag string
	tagColorFlag    string
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage tags",
	Long:  `List, create, and delete tags, and attach or detach them on entries.`,
}

var listTagsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tags",
	Long:  `List every tag in the archive with its category and how many entries carry it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		tags, err := archive.ListTags(cmd.Context(), dbConn)
		if err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}

		if len(tags) == 0 {
			fmt.Println("No tags found.")
			return nil
		}

		fmt.Println("Tags:")
		fmt.Println("Name | Category | Entries | Created At")
		fmt.Println("----------------------------------------")
		for _, t := range tags {
			fmt.Printf("%s | %s | %d | %s\n", t.Name, t.Category, t.EntryCount, formatTimestamp(t.CreatedAt))
		}
		return nil
	},
}

var addTagCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		tag, err := archive.CreateTag(cmd.Context(), dbConn, args[0], tagCategoryFlag, tagColorFlag)
		if errors.Is(err, archive.ErrDuplicateTag) {
			return fmt.Errorf("tag already exists: %s", archive.NormalizeTagName(args[0]))
		}
		if err != nil {
			return fmt.Errorf("failed to create tag: %w", err)
		}

		fmt.Printf("Tag %q created (category %s).\n", tag.Name, tag.Category)
		return nil
	},
}

var rmTagCmd = &cobra.Command{
	Use:   "rm [name]",
	Short: "Delete a tag",
	Long:  `Permanently delete a tag and remove it from all entries.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		err = archive.DeleteTag(cmd.Context(), dbConn, args[0])
		if errors.Is(err, archive.ErrTagNotFound) {
			return fmt.Errorf("tag not found: %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to delete tag: %w", err)
		}

		fmt.Printf("Tag %q deleted.\n", archive.NormalizeTagName(args[0]))
		return nil
	},
}

var attachTagCmd = &cobra.Command{
	Use:   "attach [entry-id] [tag]...",
	Short: "Attach tags to an entry",
	Long:  `Attach one or more tags to an entry. Tags are created on first use.`,
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID := args[0]
		names := args[1:]

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		for _, name := range names {
			_, err := archive.TagEntry(cmd.Context(), dbConn, entryID, name, archive.SourceManual)
			if errors.Is(err, archive.ErrEntryNotFound) {
				return fmt.Errorf("entry not found: %s", entryID)
			}
			if err != nil {
				return fmt.Errorf("failed to attach tag %q: %w", name, err)
			}
		}

		fmt.Printf("Entry %s tagged with: %s\n", entryID, strings.Join(names, ", "))
		return nil
	},
}

var detachTagCmd = &cobra.Command{
	Use:   "detach [entry-id] [tag]...",
	Short: "Detach tags from an entry",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID := args[0]
		names := args[1:]

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		for _, name := range names {
			err := archive.UntagEntry(cmd.Context(), dbConn, entryID, name)
			if errors.Is(err, archive.ErrEntryNotFound) {
				return fmt.Errorf("entry not found: %s", entryID)
			}
			if err != nil {
				return fmt.Errorf("failed to detach tag %q: %w", name, err)
			}
		}

		fmt.Printf("Tags removed from entry %s: %s\n", entryID, strings.Join(names, ", "))
		return nil
	},
}

func initTagsCmd() {
	addTagCmd.Flags().StringVar(&tagCategoryFlag, "category", "", "Tag category (topic, pattern, use, custom; default custom)")
	addTagCmd.Flags().StringVar(&tagColorFlag, "color", "", "Display color, e.g. #b9a3eb")

	tagsCmd.AddCommand(
		listTagsCmd,
		addTagCmd,
		rmTagCmd,
		attachTagCmd,
		detachTagCmd,
	)
}
