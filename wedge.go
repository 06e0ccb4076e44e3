package main

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// WedgeKind discriminates the wheel slot variants.
type WedgeKind string

const (
	WedgeCash      WedgeKind = "cash"
	WedgeBankrupt  WedgeKind = "bankrupt"
	WedgeLoseATurn WedgeKind = "lose_a_turn"
	WedgeFreePlay  WedgeKind = "free_play"
	WedgePrize     WedgeKind = "prize"
)

// Wedge is one slot on the wheel. Amount is only meaningful for cash
// wedges, Name only for prize wedges.
type Wedge struct {
	Kind   WedgeKind
	Amount int
	Name   string
}

func cashWedge(amount int) Wedge {
	return Wedge{Kind: WedgeCash, Amount: amount}
}

func prizeWedge(name string) Wedge {
	return Wedge{Kind: WedgePrize, Name: name}
}

// Label returns the user-facing text for a wedge, as shown in toasts.
func (w Wedge) Label() string {
	switch w.Kind {
	case WedgeCash:
		return "$" + strconv.Itoa(w.Amount)
	case WedgeBankrupt:
		return "BANKRUPT"
	case WedgeLoseATurn:
		return "LOSE A TURN"
	case WedgeFreePlay:
		return "FREE PLAY"
	case WedgePrize:
		return "PRIZE: " + w.Name
	}
	return "UNKNOWN"
}

type wedgeJSON struct {
	Kind   WedgeKind `json:"kind"`
	Amount int       `json:"amount,omitempty"`
	Name   string    `json:"name,omitempty"`
}

func (w Wedge) MarshalJSON() ([]byte, error) {
	return json.Marshal(wedgeJSON{Kind: w.Kind, Amount: w.Amount, Name: w.Name})
}

func (w *Wedge) UnmarshalJSON(data []byte) error {
	var raw wedgeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch raw.Kind {
	case WedgeCash, WedgeBankrupt, WedgeLoseATurn, WedgeFreePlay, WedgePrize:
	default:
		return fmt.Errorf("unknown wedge kind %q", raw.Kind)
	}

	*w = Wedge{Kind: raw.Kind, Amount: raw.Amount, Name: raw.Name}

	return nil
}

// baseWheel returns the stock 20-slot wheel layout. The slot order here is
// irrelevant; generateWheel shuffles it with spacing constraints before use.
func baseWheel() []Wedge {
	return []Wedge{
		cashWedge(500),
		cashWedge(550),
		cashWedge(600),
		cashWedge(650),
		cashWedge(700),
		cashWedge(800),
		cashWedge(900),
		cashWedge(300),
		cashWedge(350),
		cashWedge(400),
		cashWedge(450),
		cashWedge(1000),
		cashWedge(1500),
		cashWedge(2000),
		{Kind: WedgeFreePlay},
		prizeWedge("GIFT CARD"),
		prizeWedge("HOLIDAY MUG"),
		prizeWedge("STOCKING STUFFER"),
		{Kind: WedgeBankrupt},
		{Kind: WedgeLoseATurn},
	}
}
