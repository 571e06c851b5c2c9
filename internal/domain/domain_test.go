package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStage_SearchTag(t *testing.T) {
	tests := map[Stage]string{
		StageLocked:      "locked",
		StageInitial:     "initial",
		StageApprentice1: "apprentice",
		StageApprentice4: "apprentice",
		StageGuru1:       "guru",
		StageGuru2:       "guru",
		StageMaster:      "master",
		StageEnlightened: "enlightened",
		StageBurned:      "burned",
	}
	for stage, tag := range tests {
		assert.Equal(t, tag, stage.SearchTag(), stage.Name())
		assert.True(t, ValidStageTags[tag])
	}
}

func TestStage_Predicates(t *testing.T) {
	assert.True(t, StageLocked.IsLocked())
	assert.True(t, StageInitial.IsInitial())
	assert.False(t, StageApprentice4.IsPassed())
	assert.True(t, StageGuru1.IsPassed())
	assert.True(t, StageBurned.IsCompleted())
	assert.False(t, Stage(12).Valid())
	assert.Equal(t, "Stage 12", Stage(12).Name())
	assert.Equal(t, -1, StageLocked.Compare(StageBurned))
	assert.Equal(t, 0, StageGuru2.Compare(StageGuru2))
}

func TestParseStage(t *testing.T) {
	for in, want := range map[string]Stage{
		"guru 2":   StageGuru2,
		" Burned ": StageBurned,
		"LOCKED":   StageLocked,
		"3":        StageApprentice3,
		"-1":       StageLocked,
	} {
		got, err := ParseStage(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "guru 3", "10", "apprentice"} {
		_, err := ParseStage(in)
		assert.Error(t, err, in)
	}
}

func TestSubjectType(t *testing.T) {
	typ, err := ParseSubjectType(" KANJI ")
	require.NoError(t, err)
	assert.Equal(t, SubjectKanji, typ)
	assert.Equal(t, "KANJI", typ.Name())

	_, err = ParseSubjectType("sentence")
	assert.Error(t, err)

	assert.Less(t, SubjectRadical.Order(), SubjectKanji.Order())
	assert.Less(t, SubjectKanji.Order(), SubjectVocabulary.Order())
	assert.Equal(t, 99, SubjectType("x").Order())
}

func TestSubject_Predicates(t *testing.T) {
	burned := &Subject{Stage: StageBurned}
	assert.True(t, burned.IsResurrectable())
	assert.False(t, burned.IsBurnable())

	resurrected := &Subject{Stage: StageApprentice1, ResurrectedAt: time.Now()}
	assert.True(t, resurrected.IsBurnable())
	assert.False(t, resurrected.IsPassed())

	dropped := &Subject{Stage: StageApprentice2, PassedAt: time.Now()}
	assert.True(t, dropped.IsPassed())
}

func TestSubject_Label(t *testing.T) {
	assert.Equal(t, "水", (&Subject{Characters: "水", Meaning: "Water"}).Label())
	assert.Equal(t, "Stick", (&Subject{Meaning: "Stick"}).Label())
	assert.Equal(t, "?", (&Subject{}).Label())
}

func TestSessionItem_States(t *testing.T) {
	item := &SessionItem{State: SessionItemActive}
	assert.False(t, item.IsStarted())
	item.QuestionsDone = 2
	assert.True(t, item.IsStarted())
	item.State = SessionItemPending
	assert.False(t, item.IsStarted())
	assert.True(t, item.IsPending())

	assert.Equal(t, "Self-study", SessionSelfStudy.Description())
	assert.Equal(t, "Unknown", SessionType("x").Description())
}

func TestSubjectFilter_Matches(t *testing.T) {
	water := &Subject{ID: 1, Type: SubjectKanji, Level: 3, Characters: "水", Meaning: "Water", Stage: StageGuru2}

	assert.True(t, SubjectFilter{}.Matches(water))
	assert.False(t, SubjectFilter{}.Matches(nil))
	assert.True(t, SubjectFilter{Text: "wAt"}.Matches(water))
	assert.False(t, SubjectFilter{MinLevel: 4}.Matches(water))
	assert.True(t, SubjectFilter{MaxLevel: 3, StageTags: []string{"guru"}}.Matches(water))
	assert.False(t, SubjectFilter{Types: []SubjectType{SubjectVocabulary}}.Matches(water))
}
