package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/kioku/internal/domain"
	"github.com/alexanderramin/kioku/internal/search"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// Fit truncates text to width terminal cells, marking the cut with "…",
// and pads it to exactly width. Wide (CJK) runes count as two cells.
func Fit(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) > width {
		text = runewidth.Truncate(text, width, "…")
	}
	return runewidth.FillRight(text, width)
}

// SubjectText is the cell text of a search result. Vocabulary cells are wide
// enough to carry the meaning too.
func SubjectText(s *domain.Subject) string {
	label := s.Label()
	if s.Type == domain.SubjectVocabulary && s.Meaning != "" && s.Meaning != label {
		return label + " " + s.Meaning
	}
	return label
}

// HeaderText renders a section header with its fold marker and summary.
func HeaderText(title, summary string, collapsed bool) string {
	marker := "▾ "
	if collapsed {
		marker = "▸ "
	}
	if summary == "" {
		return marker + title
	}
	return marker + title + " · " + summary
}

func LogItemText(item *domain.SessionItem) string {
	label := "?"
	if item.Subject != nil {
		label = item.Subject.Label()
		if item.Subject.Meaning != "" && item.Subject.Meaning != label {
			label += " " + item.Subject.Meaning
		}
	}
	if item.QuestionsDone > 0 {
		return fmt.Sprintf("%s  %s answered", label, humanize.Comma(int64(item.QuestionsDone)))
	}
	return label
}

// LogEventText prefixes the event with its age relative to now.
func LogEventText(ev *domain.LogEvent, now time.Time) string {
	return humanize.RelTime(ev.At, now, "ago", "from now") + "  " + ev.Text
}

func SearchFormText(p search.Parameters) string {
	return "Search: " + p.Describe() + "  (enter to edit)"
}
