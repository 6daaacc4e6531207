package main

import (
	"tweetvault/pkg/archive"
	"tweetvault/pkg/tui"

	"github.com/spf13/cobra"
)

var (
	swipeLengthFlag string
	swipeTagFlag    string
)

var swipeCmd = &cobra.Command{
	Use:   "swipe",
	Short: "Triage entries in the terminal",
	Long: `Open the swipe interface: untriaged entries appear one at a time, ranked by
engagement, and arrow keys (or hjkl) record verdicts. Optional filters narrow
the queue to a length bucket or tag set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		return tui.ShowTUI(dbConn, archive.QueueFilters{
			Length: swipeLengthFlag,
			Tags:   splitTagsFlag(swipeTagFlag),
		})
	},
}

func initSwipeCmd() {
	swipeCmd.Flags().StringVar(&swipeLengthFlag, "length", "", "Only queue entries in this length bucket (short, medium, long)")
	swipeCmd.Flags().StringVar(&swipeTagFlag, "tag", "", "Only queue entries carrying all of these comma-separated tags")
}
