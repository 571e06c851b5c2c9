package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/kioku/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
	ColorCursor = lipgloss.Color("#504945")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleCursor = lipgloss.NewStyle().Background(ColorCursor)
)

// TypeStyle colors a subject by type: radicals blue, kanji pink, vocabulary purple.
func TypeStyle(t domain.SubjectType) lipgloss.Style {
	switch t {
	case domain.SubjectRadical:
		return StyleBlue
	case domain.SubjectKanji:
		return StylePurple
	case domain.SubjectVocabulary:
		return lipgloss.NewStyle().Foreground(ColorAqua)
	default:
		return StyleFg
	}
}

// StageStyle returns the style for a subject's SRS stage.
func StageStyle(s domain.Stage) lipgloss.Style {
	switch {
	case s.IsCompleted():
		return StyleYellow
	case s.IsLocked(), s.IsInitial():
		return StyleDim
	case s.IsPassed():
		return StyleGreen
	default:
		return StyleFg
	}
}

// ItemStateStyle colors session log item rows.
func ItemStateStyle(item *domain.SessionItem) lipgloss.Style {
	switch {
	case item.IsAbandoned():
		return StyleRed
	case item.IsPending(), item.IsReported():
		return StyleGreen
	case item.IsStarted():
		return StyleYellow
	default:
		return StyleFg
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len([]rune(upper)))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
