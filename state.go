// Wire messages. Clients send clientMessage; the server answers with typed
// JSON messages, the most important being stateMessage, the full canonical
// snapshot broadcast after every accepted mutation. Snapshots carry the
// masked board, never the answer; only the claimed host receives the answer
// through the private hostViewMessage.

package main

import "sort"

// clientMessage is the single inbound envelope; Type selects the command
// and the remaining fields are per-command.
type clientMessage struct {
	Type      string       `json:"type"`
	Name      string       `json:"name,omitempty"`
	Letter    string       `json:"letter,omitempty"`
	Kind      string       `json:"kind,omitempty"`       // final_pick: "consonant" | "vowel"
	Attempt   string       `json:"attempt,omitempty"`    // solve
	Code      string       `json:"code,omitempty"`       // claim_host
	PlayerIdx *int         `json:"player_idx,omitempty"` // set_active_player, start_final
	Allowed   []int        `json:"allowed,omitempty"`    // start_tossup tiebreaker restriction
	Names     []string     `json:"names,omitempty"`      // set_prize_names
	Config    *configPatch `json:"config,omitempty"`     // set_config
}

// configPatch is a partial game config; nil fields are left unchanged.
type configPatch struct {
	VowelCost    *int  `json:"vowel_cost,omitempty"`
	FinalSeconds *int  `json:"final_seconds,omitempty"`
	FinalJackpot *int  `json:"final_jackpot,omitempty"`
	TossupAward  *int  `json:"tossup_award,omitempty"`
	PrizeValues  []int `json:"prize_values,omitempty"`
}

type toastMessage struct {
	Type string `json:"type"` // "toast"
	Msg  string `json:"msg"`
}

func toast(msg string) toastMessage {
	return toastMessage{Type: "toast", Msg: msg}
}

// youMessage tells a client which player slot it holds, nil when none.
type youMessage struct {
	Type      string `json:"type"` // "you"
	PlayerIdx *int   `json:"player_idx"`
}

type hostGrantedMessage struct {
	Type    string `json:"type"` // "host_granted"
	Granted bool   `json:"granted"`
}

type playerState struct {
	Name            string  `json:"name"`
	Total           int     `json:"total"`
	Prizes          []Prize `json:"prizes"`
	PrizeValueTotal int     `json:"prize_value_total"`
	RoundBank       int     `json:"round_bank"`
	RoundPrizes     []Prize `json:"round_prizes"`
	Connected       bool    `json:"connected"`
	Claimed         bool    `json:"claimed"`
}

type puzzleState struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
	Masked   string `json:"masked"`
}

type tossupState struct {
	ControllerIdx *int  `json:"controller_idx"`
	LockedIdxs    []int `json:"locked_idxs"`
	AllowedIdxs   []int `json:"allowed_idxs,omitempty"`
	LettersLeft   int   `json:"letters_left"`
}

type finalPicks struct {
	Consonants []string `json:"consonants"`
	Vowel      *string  `json:"vowel"`
}

type finalState struct {
	Stage            string     `json:"stage"`
	Picks            finalPicks `json:"picks"`
	RemainingSeconds *int       `json:"remaining_seconds"`
	Jackpot          int        `json:"jackpot"`
	PlayerIdx        *int       `json:"player_idx"`
}

type stateMessage struct {
	Type         string        `json:"type"` // "state"
	Room         string        `json:"room"`
	Phase        string        `json:"phase"`
	Players      []playerState `json:"players"`
	ActiveIdx    int           `json:"active_idx"`
	Puzzle       puzzleState   `json:"puzzle"`
	Revealed     []string      `json:"revealed"`
	Used         []string      `json:"used"`
	WheelSlots   []Wedge       `json:"wheel_slots"`
	WheelIndex   *int          `json:"wheel_index"`
	CurrentWedge *Wedge        `json:"current_wedge"`
	HostClaimed  bool          `json:"host_claimed"`
	Config       gameConfig    `json:"config"`
	Tossup       tossupState   `json:"tossup"`
	Final        finalState    `json:"final"`
}

// hostViewMessage is sent only to the claimed host after each broadcast.
type hostViewMessage struct {
	Type     string `json:"type"` // "host_view"
	Answer   string `json:"answer"`
	Category string `json:"category"`
	PuzzleID int    `json:"puzzle_id"`
}

func optionalIdx(idx int) *int {
	if idx < 0 {
		return nil
	}
	i := idx
	return &i
}

// snapshot builds the canonical state message from the engine. Must only be
// called from the room session's run loop.
func snapshot(e *engine, hostClaimed bool) stateMessage {
	players := make([]playerState, 0, len(e.players))
	for _, p := range e.players {
		players = append(players, playerState{
			Name:            p.Name,
			Total:           p.Total,
			Prizes:          p.Prizes,
			PrizeValueTotal: prizeValueSum(p.Prizes),
			RoundBank:       p.RoundBank,
			RoundPrizes:     p.RoundPrizes,
			Connected:       p.Connected,
			Claimed:         p.ClientID != "",
		})
	}

	lockedIdxs := make([]int, 0, len(e.tossupLocked))
	for i := range e.tossupLocked {
		lockedIdxs = append(lockedIdxs, i)
	}
	sort.Ints(lockedIdxs)

	var allowedIdxs []int
	if e.tossupAllowed != nil {
		for i := range e.tossupAllowed {
			allowedIdxs = append(allowedIdxs, i)
		}
		sort.Ints(allowedIdxs)
	}

	consonants := make([]string, 0, len(e.finalConsonants))
	for _, r := range e.finalConsonants {
		consonants = append(consonants, string(r))
	}
	var vowel *string
	if e.finalVowel != 0 {
		s := string(e.finalVowel)
		vowel = &s
	}
	var remaining *int
	if e.finalStage == finalGuess || e.finalStage == finalDone {
		r := e.finalRemaining
		remaining = &r
	}

	return stateMessage{
		Type:      "state",
		Room:      e.room,
		Phase:     string(e.phase),
		Players:   players,
		ActiveIdx: e.activeIdx,
		Puzzle: puzzleState{
			ID:       e.board.puzzle.ID,
			Category: e.board.puzzle.Category,
			Masked:   e.board.masked(),
		},
		Revealed:     e.board.revealedLetters(),
		Used:         sortedLetters(e.usedLetters),
		WheelSlots:   e.wheel,
		WheelIndex:   optionalIdx(e.wheelIdx),
		CurrentWedge: e.currentWedge,
		HostClaimed:  hostClaimed,
		Config:       e.cfg,
		Tossup: tossupState{
			ControllerIdx: optionalIdx(e.tossupControllerIdx),
			LockedIdxs:    lockedIdxs,
			AllowedIdxs:   allowedIdxs,
			LettersLeft:   len(e.tossupRevealOrder),
		},
		Final: finalState{
			Stage:            string(e.finalStage),
			Picks:            finalPicks{Consonants: consonants, Vowel: vowel},
			RemainingSeconds: remaining,
			Jackpot:          e.cfg.FinalJackpot,
			PlayerIdx:        optionalIdx(e.finalPlayerIdx),
		},
	}
}

func hostView(e *engine) hostViewMessage {
	return hostViewMessage{
		Type:     "host_view",
		Answer:   e.board.puzzle.Answer,
		Category: e.board.puzzle.Category,
		PuzzleID: e.board.puzzle.ID,
	}
}
