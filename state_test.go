package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalIdx(t *testing.T) {
	assert.Nil(t, optionalIdx(-1))

	p := optionalIdx(3)
	require.NotNil(t, p)
	assert.Equal(t, 3, *p)
}

func TestSnapshotMasksAnswer(t *testing.T) {
	e := newTestEngine(defaultGameConfig(), Puzzle{ID: 1, Category: "Phrase", Answer: "PEACE ON EARTH"})
	joinPlayers(t, e, "Alice")

	st := snapshot(e, false)

	assert.Equal(t, "_____ __ _____", st.Puzzle.Masked)
	assert.Equal(t, "Phrase", st.Puzzle.Category)

	// The serialized snapshot must never carry the answer anywhere.
	data, err := json.Marshal(st)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "PEACE ON EARTH")
}

func TestSnapshotRemainingSecondsOnlyDuringCountdown(t *testing.T) {
	e := finalAtGuessStage(t, defaultGameConfig())

	st := snapshot(e, false)
	require.NotNil(t, st.Final.RemainingSeconds)
	assert.Equal(t, e.cfg.FinalSeconds, *st.Final.RemainingSeconds)

	e.endFinalState()
	e.phase = phaseNormal
	st = snapshot(e, false)
	assert.Nil(t, st.Final.RemainingSeconds)
	assert.Equal(t, string(finalOff), st.Final.Stage)
}

func TestSnapshotTossupFields(t *testing.T) {
	e := newTestEngine(defaultGameConfig(), Puzzle{ID: 1, Answer: "DECK THE HALLS"})
	joinPlayers(t, e, "Alice", "Bob", "Carol")
	e.startTossup([]int{0, 2})
	e.tossupLocked[2] = true

	st := snapshot(e, false)

	assert.Equal(t, "tossup", st.Phase)
	assert.Nil(t, st.Tossup.ControllerIdx)
	assert.Equal(t, []int{2}, st.Tossup.LockedIdxs)
	assert.Equal(t, []int{0, 2}, st.Tossup.AllowedIdxs)
	assert.Equal(t, 12, st.Tossup.LettersLeft)
}

func TestHostViewCarriesAnswer(t *testing.T) {
	e := newTestEngine(defaultGameConfig(), Puzzle{ID: 4, Category: "Thing", Answer: "GINGERBREAD HOUSE"})

	view := hostView(e)

	assert.Equal(t, "host_view", view.Type)
	assert.Equal(t, "GINGERBREAD HOUSE", view.Answer)
	assert.Equal(t, "Thing", view.Category)
	assert.Equal(t, 4, view.PuzzleID)
}

func TestClientMessageDecoding(t *testing.T) {
	raw := `{"type":"set_config","config":{"vowel_cost":100,"prize_values":[250,750]}}`

	var msg clientMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &msg))

	assert.Equal(t, "set_config", msg.Type)
	require.NotNil(t, msg.Config)
	require.NotNil(t, msg.Config.VowelCost)
	assert.Equal(t, 100, *msg.Config.VowelCost)
	assert.Equal(t, []int{250, 750}, msg.Config.PrizeValues)
	assert.Nil(t, msg.Config.FinalSeconds)
}
