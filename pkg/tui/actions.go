package tui

import (
	"context"
	"database/sql"

	"tweetvault/pkg/archive"

	tea "github.com/charmbracelet/bubbletea"
)

// swipedMsg reports a recorded verdict so the model can advance the queue.
type swipedMsg struct {
	entry   archive.Entry
	verdict string
}

// undoneMsg reports a cleared verdict; the entry goes back to the front of
// the queue.
type undoneMsg struct {
	entry archive.Entry
}

// notedMsg carries the entry refreshed after a note save.
type notedMsg struct {
	entry archive.Entry
}

// Load the next batch of untriaged entries and return tea data
func loadQueue(db *sql.DB, filters archive.QueueFilters) tea.Cmd {
	return func() tea.Msg {
		queue, err := archive.SwipeQueue(context.Background(), db, filters)
		if err != nil {
			return err
		}
		return queue
	}
}

// Record a verdict on the entry and return tea data
func swipeEntry(db *sql.DB, id, verdict string) tea.Cmd {
	return func() tea.Msg {
		entry, err := archive.SwipeEntry(context.Background(), db, id, verdict)
		if err != nil {
			return err
		}
		return swipedMsg{entry: entry, verdict: verdict}
	}
}

// Clear the last verdict so the entry rejoins the untriaged pool
func undoSwipe(db *sql.DB, id string) tea.Cmd {
	return func() tea.Msg {
		entry, err := archive.SwipeEntry(context.Background(), db, id, archive.SwipeNone)
		if err != nil {
			return err
		}
		return undoneMsg{entry: entry}
	}
}

// Save a free-text note on the entry and return tea data
func saveNote(db *sql.DB, id, notes string) tea.Cmd {
	return func() tea.Msg {
		entry, err := archive.UpdateEntry(context.Background(), db, id, &notes, nil, nil)
		if err != nil {
			return err
		}
		return notedMsg{entry: entry}
	}
}

// Get database name and file path
func getDbPragmaList(db *sql.DB) (string, string) {
	var name, file string
	err := db.QueryRow(`PRAGMA database_list`).Scan(new(int), &name, &file)
	if err != nil {
		return name, file
	}
	return name, file
}
