package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWedgeLabel(t *testing.T) {
	assert.Equal(t, "$500", cashWedge(500).Label())
	assert.Equal(t, "BANKRUPT", Wedge{Kind: WedgeBankrupt}.Label())
	assert.Equal(t, "LOSE A TURN", Wedge{Kind: WedgeLoseATurn}.Label())
	assert.Equal(t, "FREE PLAY", Wedge{Kind: WedgeFreePlay}.Label())
	assert.Equal(t, "PRIZE: GIFT CARD", prizeWedge("GIFT CARD").Label())
}

func TestWedgeJSONRoundTrip(t *testing.T) {
	for _, w := range []Wedge{
		cashWedge(650),
		{Kind: WedgeBankrupt},
		{Kind: WedgeLoseATurn},
		{Kind: WedgeFreePlay},
		prizeWedge("HOLIDAY MUG"),
	} {
		data, err := json.Marshal(w)
		require.NoError(t, err)

		var got Wedge
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, w, got)
	}
}

func TestWedgeUnmarshalRejectsUnknownKind(t *testing.T) {
	var w Wedge
	err := json.Unmarshal([]byte(`{"kind":"mystery"}`), &w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mystery")
}

func TestBaseWheelLayout(t *testing.T) {
	slots := baseWheel()
	require.Len(t, slots, 20)

	counts := make(map[WedgeKind]int)
	for _, w := range slots {
		counts[w.Kind]++
	}

	assert.Equal(t, 14, counts[WedgeCash])
	assert.Equal(t, 3, counts[WedgePrize])
	assert.Equal(t, 1, counts[WedgeBankrupt])
	assert.Equal(t, 1, counts[WedgeLoseATurn])
	assert.Equal(t, 1, counts[WedgeFreePlay])
}
