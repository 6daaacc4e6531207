package tui

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"tweetvault/pkg/archive"

	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// queueBatchSize is how many untriaged entries each storage round trip
// fetches. The queue reloads itself when the batch runs out.
const queueBatchSize = 20

type model struct {
	entries   []archive.Entry // current batch, front entry is on the card
	remaining int             // untriaged entries left in the whole pool
	reviewed  int             // verdicts recorded this session
	history   []swipedMsg     // session verdicts, newest last, for undo

	filters archive.QueueFilters

	width  int // Current terminal width (for layout)
	height int // Current terminal height
	err    error

	db         *sql.DB
	dbFilename string

	noteEditing bool
	noteInput   textinput.Model

	loading  bool
	quitting bool
}

// Initialize TUI model
func initModel(db *sql.DB, filters archive.QueueFilters) model {
	// Fetch database file path with name
	_, file := getDbPragmaList(db)

	filters.Limit = queueBatchSize

	note := textinput.New()
	note.Placeholder = "Note for this entry"
	note.CharLimit = 512

	return model{
		entries: []archive.Entry{},
		filters: filters,

		db:         db,
		dbFilename: filepath.Base(file),

		noteInput: note,

		loading: true,
	}
}

func (m model) Init() tea.Cmd {
	return loadQueue(m.db, m.filters)
}

// current returns the entry on the card. Callers must check ok.
func (m model) current() (archive.Entry, bool) {
	if len(m.entries) == 0 {
		return archive.Entry{}, false
	}
	return m.entries[0], true
}

// Processes events like window resize, errors, loaded data, and key presses
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case error:
		m.err = msg
		m.loading = false
		return m, nil

	case archive.QueueResult:
		m.entries = msg.Entries
		m.remaining = msg.Remaining
		m.loading = false
		return m, nil

	case swipedMsg:
		// The swiped entry left the pool; advance to the next card.
		m.history = append(m.history, msg)
		m.reviewed++
		if len(m.entries) > 0 && m.entries[0].ID == msg.entry.ID {
			m.entries = m.entries[1:]
		}
		if m.remaining > 0 {
			m.remaining--
		}
		if len(m.entries) == 0 && m.remaining > 0 {
			m.loading = true
			return m, loadQueue(m.db, m.filters)
		}
		return m, nil

	case undoneMsg:
		// The entry rejoined the pool; put it back on the card.
		if len(m.history) > 0 {
			m.history = m.history[:len(m.history)-1]
		}
		if m.reviewed > 0 {
			m.reviewed--
		}
		m.remaining++
		m.entries = append([]archive.Entry{msg.entry}, m.entries...)
		return m, nil

	case notedMsg:
		// Show the saved note on the current card.
		if len(m.entries) > 0 && m.entries[0].ID == msg.entry.ID {
			m.entries[0] = msg.entry
		}
		return m, nil

	case tea.KeyMsg:
		if m.noteEditing {
			// Note Editing Mode
			switch msg.Type {
			case tea.KeyEnter:
				m.noteEditing = false
				m.noteInput.Blur()
				if entry, ok := m.current(); ok {
					return m, saveNote(m.db, entry.ID, m.noteInput.Value())
				}
				return m, nil

			case tea.KeyEsc:
				// Cancel without saving
				m.noteEditing = false
				m.noteInput.Blur()
				return m, nil
			}

			var cmd tea.Cmd
			m.noteInput, cmd = m.noteInput.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "left", "h":
			if entry, ok := m.current(); ok && !m.loading {
				return m, swipeEntry(m.db, entry.ID, archive.SwipeDislike)
			}

		case "right", "l":
			if entry, ok := m.current(); ok && !m.loading {
				return m, swipeEntry(m.db, entry.ID, archive.SwipeLike)
			}

		case "up", "k":
			if entry, ok := m.current(); ok && !m.loading {
				return m, swipeEntry(m.db, entry.ID, archive.SwipeSuperlike)
			}

		case "down", "j":
			if entry, ok := m.current(); ok && !m.loading {
				return m, swipeEntry(m.db, entry.ID, archive.SwipeLater)
			}

		case "u":
			if len(m.history) > 0 && !m.loading {
				last := m.history[len(m.history)-1]
				return m, undoSwipe(m.db, last.entry.ID)
			}

		case "n":
			if entry, ok := m.current(); ok && !m.loading {
				m.noteEditing = true
				m.noteInput.SetValue(entry.Notes)
				m.noteInput.Focus()
			}
		}
		return m, nil
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return fmt.Sprintf("Reviewed %d entries this session. Bye!\n", m.reviewed)
	}

	var b strings.Builder

	titleBar := titleStyle.Width(m.width).Render("tweetvault swipe — " + m.dbFilename)
	b.WriteString(titleBar + "\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")

	case m.loading:
		b.WriteString(metaStyle.Render("Loading queue...") + "\n")

	default:
		if entry, ok := m.current(); ok {
			b.WriteString(m.renderCard(entry))
		} else {
			b.WriteString(doneStyle.Render("Queue empty — every entry has been triaged.") + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(progressStyle.Render(fmt.Sprintf("reviewed %d · remaining %d", m.reviewed, m.remaining)))
	if last := m.lastVerdictLine(); last != "" {
		b.WriteString("\n" + last)
	}

	footerText := "\n←/h dislike • →/l like • ↑/k superlike • ↓/j later • n note • u undo • q quit"
	if m.noteEditing {
		footerText = "\nEnter to save note • Esc to cancel"
	}
	b.WriteString("\n" + footerStyle.Width(m.width).Render(footerText))

	return b.String()
}

// renderCard lays out one entry as the swipe card: text, then engagement
// metrics, tags, and the quoted entry when there is one.
func (m model) renderCard(entry archive.Entry) string {
	width := m.cardWidth()
	inner := width - 6 // card border and padding

	var card strings.Builder
	card.WriteString(textStyle.Width(inner).Render(entry.Text))
	card.WriteString("\n\n")

	created := time.Unix(int64(entry.CreatedAt), 0).Format("Jan 2, 2006")
	card.WriteString(metaStyle.Render(fmt.Sprintf("%s · ♥ %d · ⇄ %d · %s/%s",
		created, entry.FavoriteCount, entry.RetweetCount, entry.Kind, entry.Length)))

	if len(entry.Tags) > 0 {
		names := make([]string, len(entry.Tags))
		for i, tag := range entry.Tags {
			names[i] = "#" + tag.Name
		}
		card.WriteString("\n" + tagStyle.Render(strings.Join(names, " ")))
	}

	if entry.Quoted != nil {
		card.WriteString("\n\n")
		card.WriteString(quotedStyle.Width(inner).Render(entry.Quoted.Text))
	}

	if m.noteEditing {
		card.WriteString("\n\n" + m.noteInput.View())
	} else if entry.Notes != "" {
		card.WriteString("\n" + metaStyle.Render("note: "+entry.Notes))
	}

	return cardStyle.Width(width).Render(card.String())
}

func (m model) lastVerdictLine() string {
	if len(m.history) == 0 {
		return ""
	}
	last := m.history[len(m.history)-1]
	text := last.entry.Text
	if len(text) > 40 {
		text = text[:40] + "…"
	}
	return footerStyle.Render("last: ") + verdictLabel(last.verdict) + footerStyle.Render(" — "+text)
}

// Create and start the Bubble Tea TUI
func ShowTUI(db *sql.DB, filters archive.QueueFilters) error {
	p := tea.NewProgram(initModel(db, filters), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
