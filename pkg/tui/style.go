package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// UI styles and layout settings
// Color palette "Blue Moon" from https://gogh-co.github.io/Gogh/
const (
	colorGray     = "#353b52"
	colorWhite    = "#ffffff"
	colorGreen    = "#acfab4"
	colorGreenDim = "#b4c4b4"
	colorRed      = "#e61f44"
	colorRedDim   = "#d06178"
	colorPurple   = "#b9a3eb"
	colorBlue     = "#89ddff"
	colorYellow   = "#fff9b0"

	minCardWidth = 40
	maxCardWidth = 76
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue)).
			Background(lipgloss.Color(colorGray)).
			Padding(0, 2).Align(lipgloss.Center)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBlue)).
			Padding(1, 2)

	quotedStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color(colorGray)).
			Foreground(lipgloss.Color(colorGreenDim)).
			PaddingLeft(1)

	textStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWhite))
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreenDim))
	tagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorPurple))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed))
	doneStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorGreen))

	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray))
)

// verdictLabel colors a swipe verdict for the history line.
func verdictLabel(verdict string) string {
	switch verdict {
	case "like":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)).Render("liked")
	case "superlike":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorBlue)).Render("superliked")
	case "dislike":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorRedDim)).Render("disliked")
	case "later":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow)).Render("saved for later")
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)).Render(verdict)
	}
}

func (m model) cardWidth() int {
	width := m.width - 8
	if width < minCardWidth {
		width = minCardWidth
	}
	if width > maxCardWidth {
		width = maxCardWidth
	}
	return width
}
