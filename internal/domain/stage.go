package domain

import (
	"fmt"
	"strings"
)

// Stage is a position in the SRS progression. The zero value is the initial
// stage: unlocked, lesson not yet done.
type Stage int

const (
	StageLocked      Stage = -1
	StageInitial     Stage = 0
	StageApprentice1 Stage = 1
	StageApprentice2 Stage = 2
	StageApprentice3 Stage = 3
	StageApprentice4 Stage = 4
	StageGuru1       Stage = 5
	StageGuru2       Stage = 6
	StageMaster      Stage = 7
	StageEnlightened Stage = 8
	StageBurned      Stage = 9
	firstPassedStage       = StageGuru1
)

var stageNames = map[Stage]string{
	StageLocked:      "Locked",
	StageInitial:     "Initial",
	StageApprentice1: "Apprentice 1",
	StageApprentice2: "Apprentice 2",
	StageApprentice3: "Apprentice 3",
	StageApprentice4: "Apprentice 4",
	StageGuru1:       "Guru 1",
	StageGuru2:       "Guru 2",
	StageMaster:      "Master",
	StageEnlightened: "Enlightened",
	StageBurned:      "Burned",
}

func (s Stage) IsLocked() bool    { return s == StageLocked }
func (s Stage) IsInitial() bool   { return s == StageInitial }
func (s Stage) IsCompleted() bool { return s == StageBurned }
func (s Stage) IsPassed() bool    { return s >= firstPassedStage }

// Valid reports whether s is a known stage.
func (s Stage) Valid() bool {
	_, ok := stageNames[s]
	return ok
}

// Name returns the display name, e.g. "Apprentice 3".
func (s Stage) Name() string {
	if n, ok := stageNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Stage %d", int(s))
}

// SearchTag groups stages for advanced search and section headers. Several
// stages share one tag (all apprentice stages are "apprentice").
func (s Stage) SearchTag() string {
	switch {
	case s <= StageLocked:
		return "locked"
	case s == StageInitial:
		return "initial"
	case s < StageGuru1:
		return "apprentice"
	case s < StageMaster:
		return "guru"
	case s == StageMaster:
		return "master"
	case s == StageEnlightened:
		return "enlightened"
	default:
		return "burned"
	}
}

// Compare orders stages along the progression: locked first, burned last.
func (s Stage) Compare(o Stage) int {
	switch {
	case s < o:
		return -1
	case s > o:
		return 1
	default:
		return 0
	}
}

// ParseStage accepts a stage name ("guru 2", "burned") or its numeric value.
func ParseStage(v string) (Stage, error) {
	norm := strings.ToLower(strings.TrimSpace(v))
	for s, name := range stageNames {
		if strings.ToLower(name) == norm {
			return s, nil
		}
	}
	var n int
	if _, err := fmt.Sscanf(norm, "%d", &n); err == nil && Stage(n).Valid() {
		return Stage(n), nil
	}
	return 0, fmt.Errorf("unknown SRS stage %q", v)
}

// ValidStageTags is the canonical set of stage search tags.
var ValidStageTags = map[string]bool{
	"locked": true, "initial": true, "apprentice": true, "guru": true,
	"master": true, "enlightened": true, "burned": true,
}
