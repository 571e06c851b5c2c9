package listtree

// RowKind tells the host which renderer applies to a row.
type RowKind int

const (
	KindNone RowKind = iota
	KindRadical
	KindKanji
	KindVocabulary
	KindSearchForm
	KindTypeHeader
	KindLevelHeader
	KindAvailableAtHeader
	KindStageHeader
	KindLogHeader
	KindLogItem
	KindLogEvent
)

var kindNames = [...]string{
	KindNone:              "none",
	KindRadical:           "radical",
	KindKanji:             "kanji",
	KindVocabulary:        "vocabulary",
	KindSearchForm:        "search_form",
	KindTypeHeader:        "type_header",
	KindLevelHeader:       "level_header",
	KindAvailableAtHeader: "available_at_header",
	KindStageHeader:       "stage_header",
	KindLogHeader:         "log_header",
	KindLogItem:           "log_item",
	KindLogEvent:          "log_event",
}

func (k RowKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsHeader reports whether rows of this kind are collapsible section headers.
func (k RowKind) IsHeader() bool {
	switch k {
	case KindTypeHeader, KindLevelHeader, KindAvailableAtHeader, KindStageHeader, KindLogHeader:
		return true
	}
	return false
}
