package main

import (
	"fmt"

	"tweetvault/pkg/importer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importSelfIDFlag string

var importCmd = &cobra.Command{
	Use:   "import [tweets.js]",
	Short: "Import a Twitter archive export",
	Long: `Read a tweets.js (or tweet.js) file from a Twitter archive export and load its
entries into the database. Re-importing the same file is safe: entries already
present are skipped, not duplicated.

Pass --self-id with your numeric account id so replies to yourself are
classified as thread continuations even when the parent tweet is missing from
the export.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		defer logger.Sync()

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		logger.Info("importing archive", zap.String("file", args[0]), zap.String("selfID", importSelfIDFlag))

		result, err := importer.ImportFile(cmd.Context(), dbConn, args[0], importer.Options{SelfID: importSelfIDFlag})
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		logger.Info("import finished",
			zap.String("importID", result.ImportID),
			zap.Int("added", result.Added),
			zap.Int("skipped", result.Skipped),
		)

		fmt.Printf("Imported %s: %d entries added, %d skipped (already present), %d total in file.\n",
			result.File, result.Added, result.Skipped, result.Total)
		return nil
	},
}

var importHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List past import runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		records, err := importer.ListImports(cmd.Context(), dbConn)
		if err != nil {
			return fmt.Errorf("failed to list imports: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No imports recorded yet.")
			return nil
		}

		fmt.Println("Imports:")
		fmt.Println("ID | File | Added | Skipped | Created At")
		fmt.Println("----------------------------------------")
		for _, r := range records {
			fmt.Printf("%s | %s | %d | %d | %s\n", r.ID, r.File, r.Added, r.Skipped, formatTimestamp(r.CreatedAt))
		}
		return nil
	},
}

func initImportCmd() {
	importCmd.Flags().StringVar(&importSelfIDFlag, "self-id", "", "Your numeric account id, used to classify self-replies as threads")
	importCmd.AddCommand(importHistoryCmd)
}
