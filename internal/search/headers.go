package search

import (
	"strconv"
	"time"

	"github.com/alexanderramin/kioku/internal/domain"
	"github.com/alexanderramin/kioku/internal/listtree"
	"github.com/dustin/go-humanize"
)

// Header is the section type used by every search sort order.
type Header = listtree.Section[*domain.Subject, StageBreakdown]

func newHeader(tag, title string, kind listtree.RowKind) *Header {
	return listtree.NewSection(tag, title, kind, SummarizeStages)
}

func typeTag(parentTag string, t domain.SubjectType) string {
	if parentTag == "" {
		return t.Name()
	}
	return parentTag + " " + t.Name()
}

func newTypeHeader(parentTag string, t domain.SubjectType) *Header {
	return newHeader(typeTag(parentTag, t), typeTitle(t), listtree.KindTypeHeader)
}

func typeTitle(t domain.SubjectType) string {
	switch t {
	case domain.SubjectRadical:
		return "Radicals"
	case domain.SubjectKanji:
		return "Kanji"
	default:
		return "Vocabulary"
	}
}

func newLevelHeader(tag string, level int) *Header {
	return newHeader(tag, "Level "+strconv.Itoa(level), listtree.KindLevelHeader)
}

// newAvailableAtHeader titles the group relative to the search time, since
// every overdue review was folded into that instant.
func newAvailableAtHeader(tag string, unix int64, ref time.Time) *Header {
	var title string
	switch {
	case unix == 0:
		title = "No review scheduled"
	case unix <= ref.Unix():
		title = "Available now"
	default:
		title = "Next review " + humanize.RelTime(time.Unix(unix, 0), ref, "ago", "from now")
	}
	return newHeader(tag, title, listtree.KindAvailableAtHeader)
}

// newStageHeader uses stage as the representative of every stage sharing
// its search tag.
func newStageHeader(tag string, stage domain.Stage) *Header {
	title := stage.Name()
	switch tag {
	case "apprentice":
		title = "Apprentice"
	case "guru":
		title = "Guru"
	}
	return newHeader(tag, title, listtree.KindStageHeader)
}
