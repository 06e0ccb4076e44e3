// Round engine for the wheel game. One engine instance holds the canonical
// state of one room: the player registry, the puzzle board, the wheel, and
// the phase state machine (normal play, toss-up buzzing, timed final round).
// The engine is purely synchronous and must only ever be touched from its
// room session's run loop.

package main

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
)

type gamePhase string

const (
	phaseNormal gamePhase = "normal"
	phaseTossup gamePhase = "tossup"
	phaseFinal  gamePhase = "final"
)

type finalStage string

const (
	finalOff   finalStage = "off"
	finalPick  finalStage = "pick"
	finalGuess finalStage = "guess"
	finalDone  finalStage = "done"
)

const finalConsonantQuota = 3

// gameConfig holds the per-room game knobs, host-adjustable at runtime.
type gameConfig struct {
	VowelCost    int   `json:"vowel_cost"`
	FinalSeconds int   `json:"final_seconds"`
	FinalJackpot int   `json:"final_jackpot"`
	TossupAward  int   `json:"tossup_award"`
	PrizeValues  []int `json:"prize_values"`
	WedgeGap     int   `json:"wedge_gap"`
}

func defaultGameConfig() gameConfig {
	return gameConfig{
		VowelCost:    250,
		FinalSeconds: 30,
		FinalJackpot: 10000,
		TossupAward:  1000,
		PrizeValues:  []int{500, 1000, 1500, 2000, 2500, 3000, 3500},
		WedgeGap:     defaultWedgeGap,
	}
}

// outcome carries the user-facing result of an accepted command. Toast goes
// to the issuing client only, Announce to every subscriber of the room.
type outcome struct {
	Toast    string
	Announce string
}

type engine struct {
	room    string
	cfg     gameConfig
	rng     *rand.Rand
	puzzles PuzzleSource

	players   []*Player
	activeIdx int

	board       *board
	usedLetters map[rune]bool

	wheel        []Wedge
	wheelIdx     int // -1 while no spin is displayed
	lastSpinIdx  int // persists across turn resets, for prize wedge replacement
	currentWedge *Wedge

	phase gamePhase

	tossupControllerIdx int
	tossupLocked        map[int]bool
	tossupRevealOrder   []rune
	tossupAllowed       map[int]bool // nil means everyone may buzz

	finalStage      finalStage
	finalPlayerIdx  int
	finalConsonants []rune
	finalVowel      rune // 0 while unpicked
	finalRemaining  int
}

func newEngine(room string, cfg gameConfig, puzzles PuzzleSource, rng *rand.Rand) *engine {
	e := &engine{
		room:                room,
		cfg:                 cfg,
		rng:                 rng,
		puzzles:             puzzles,
		wheel:               generateWheel(baseWheel(), cfg.WedgeGap, rng),
		wheelIdx:            -1,
		lastSpinIdx:         -1,
		phase:               phaseNormal,
		tossupControllerIdx: -1,
		tossupLocked:        make(map[int]bool),
		finalStage:          finalOff,
		finalPlayerIdx:      -1,
	}

	if !e.pickNextPuzzle() {
		e.setBoard(Puzzle{Category: "Phrase", Answer: "JINGLE ALL THE WAY"})
	}

	return e
}

// ----------------------------------------------------------------------
// Registry and turn rotation
// ----------------------------------------------------------------------

func (e *engine) activePlayer() *Player {
	if len(e.players) == 0 {
		return nil
	}
	return e.players[e.activeIdx]
}

func (e *engine) playerIndexFor(clientID string) int {
	if clientID == "" {
		return -1
	}
	for i, p := range e.players {
		if p.ClientID == clientID {
			return i
		}
	}
	return -1
}

// advancePlayer rotates to the next connected player in registration order.
// A sole connected player rotates back to themselves.
func (e *engine) advancePlayer() {
	defer e.clearTurnState()

	if len(e.players) == 0 {
		e.activeIdx = 0
		return
	}

	for i := 1; i <= len(e.players); i++ {
		next := (e.activeIdx + i) % len(e.players)
		if e.players[next].Connected {
			e.activeIdx = next
			return
		}
	}
}

func (e *engine) join(name, clientID string) (int, outcome, error) {
	name = strings.TrimSpace(name)
	if name == "" || clientID == "" {
		return -1, outcome{}, reject(errInvalidCommand, "Provide a name to join.")
	}
	name = clip(name, 24)

	for i, p := range e.players {
		if p.ClientID == clientID {
			p.Connected = true
			p.Name = name
			return i, outcome{Toast: fmt.Sprintf("Welcome back, %s.", p.Name)}, nil
		}
	}

	e.players = append(e.players, &Player{
		Name:      name,
		Connected: true,
		ClientID:  clientID,
	})

	return len(e.players) - 1, outcome{Announce: name + " joined the game."}, nil
}

func (e *engine) leave(clientID string) (outcome, error) {
	idx := e.playerIndexFor(clientID)
	if idx < 0 {
		return outcome{}, reject(errInvalidCommand, "You're not in this game.")
	}

	name := e.players[idx].Name
	e.removePlayer(idx)

	return outcome{Announce: name + " left the game."}, nil
}

func (e *engine) removePlayer(idx int) {
	e.players = slices.Delete(e.players, idx, idx+1)

	switch {
	case len(e.players) == 0:
		e.activeIdx = 0
	case e.activeIdx == idx:
		if e.activeIdx >= len(e.players) {
			e.activeIdx = 0
		}
		// Whoever inherited the slot may be disconnected; the turn still
		// has to land on a connected player.
		if !e.players[e.activeIdx].Connected {
			e.advancePlayer()
		}
		e.clearTurnState()
	case e.activeIdx > idx:
		e.activeIdx--
	}

	e.tossupLocked = shiftIndexSet(e.tossupLocked, idx)
	if e.tossupAllowed != nil {
		e.tossupAllowed = shiftIndexSet(e.tossupAllowed, idx)
	}

	switch {
	case e.tossupControllerIdx == idx:
		e.tossupControllerIdx = -1
	case e.tossupControllerIdx > idx:
		e.tossupControllerIdx--
	}

	switch {
	case e.finalPlayerIdx == idx:
		// The contestant is gone; abort the final round entirely.
		e.endFinalState()
		if e.phase == phaseFinal {
			e.phase = phaseNormal
		}
	case e.finalPlayerIdx > idx:
		e.finalPlayerIdx--
	}
}

// setConnected flips the connection flag for the player claimed by
// clientID and returns whether anything changed. A disconnecting toss-up
// controller releases control so the reveal cadence can resume.
func (e *engine) setConnected(clientID string, connected bool) bool {
	idx := e.playerIndexFor(clientID)
	if idx < 0 || e.players[idx].Connected == connected {
		return false
	}

	e.players[idx].Connected = connected

	if !connected && e.tossupControllerIdx == idx {
		e.tossupControllerIdx = -1
	}

	return true
}

// shiftIndexSet rewrites an index set after the removal of one player.
func shiftIndexSet(set map[int]bool, removed int) map[int]bool {
	out := make(map[int]bool, len(set))
	for i := range set {
		switch {
		case i == removed:
		case i > removed:
			out[i-1] = true
		default:
			out[i] = true
		}
	}
	return out
}

// ----------------------------------------------------------------------
// Puzzle and board lifecycle
// ----------------------------------------------------------------------

func (e *engine) setBoard(p Puzzle) {
	e.board = newBoard(p)
	e.usedLetters = make(map[rune]bool)
	for _, pl := range e.players {
		pl.forfeitRound()
	}
	e.clearTurnState()
	e.lastSpinIdx = -1
}

func (e *engine) pickNextPuzzle() bool {
	p, ok := e.puzzles.NextPuzzle()
	if !ok {
		return false
	}
	e.puzzles.MarkUsed(p.ID)
	e.setBoard(p)
	return true
}

func (e *engine) clearTurnState() {
	e.currentWedge = nil
	e.wheelIdx = -1
}

func (e *engine) requireActive(idx int, verb string) error {
	if idx < 0 || len(e.players) == 0 || idx != e.activeIdx {
		return reject(errNotYourTurn, "Only the active player can %s.", verb)
	}
	return nil
}

func parseLetter(s string) (rune, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	runes := []rune(s)
	if len(runes) != 1 || !isBoardLetter(runes[0]) {
		return 0, reject(errInvalidCommand, "Enter a letter A-Z.")
	}
	return runes[0], nil
}

func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}

// ----------------------------------------------------------------------
// Normal phase
// ----------------------------------------------------------------------

func (e *engine) spin(idx int) (outcome, error) {
	if e.phase != phaseNormal {
		return outcome{}, reject(errIllegalState, "Spin is only allowed during normal rounds.")
	}
	if err := e.requireActive(idx, "spin"); err != nil {
		return outcome{}, err
	}

	n := e.rng.IntN(len(e.wheel))
	e.wheelIdx = n
	e.lastSpinIdx = n
	w := e.wheel[n]
	e.currentWedge = &w

	switch w.Kind {
	case WedgeBankrupt:
		p := e.activePlayer()
		p.forfeitRound()
		e.advancePlayer()
		return outcome{Announce: p.Name + " went BANKRUPT!"}, nil
	case WedgeLoseATurn:
		name := e.activePlayer().Name
		e.advancePlayer()
		return outcome{Announce: name + " loses a turn."}, nil
	case WedgeCash, WedgeFreePlay, WedgePrize:
		return outcome{Toast: "Landed on " + w.Label() + ". Guess a consonant or solve."}, nil
	}

	return outcome{}, nil
}

func (e *engine) guessLetter(idx int, letter rune) (outcome, error) {
	if e.phase != phaseNormal {
		return outcome{}, reject(errIllegalState, "Letter guesses are only allowed during normal rounds.")
	}
	if err := e.requireActive(idx, "guess"); err != nil {
		return outcome{}, err
	}
	if e.usedLetters[letter] {
		return outcome{}, reject(errIllegalState, "%c already used.", letter)
	}
	if vowels[letter] {
		return outcome{}, reject(errInvalidCommand, "Vowels must be bought, not guessed.")
	}
	if e.currentWedge == nil {
		return outcome{}, reject(errIllegalState, "Spin before guessing a consonant.")
	}

	e.usedLetters[letter] = true
	count := e.board.reveal(letter)
	w := *e.currentWedge
	e.clearTurnState()

	if count == 0 {
		switch w.Kind {
		case WedgePrize:
			e.advancePlayer()
			return outcome{Toast: "Missed! Lost the prize and your turn."}, nil
		case WedgeFreePlay:
			return outcome{Toast: fmt.Sprintf("No %c's. Free Play keeps your turn.", letter)}, nil
		case WedgeCash, WedgeBankrupt, WedgeLoseATurn:
			e.advancePlayer()
			return outcome{Toast: fmt.Sprintf("No %c's.", letter)}, nil
		}
		return outcome{}, nil
	}

	p := e.activePlayer()

	switch w.Kind {
	case WedgeCash:
		p.RoundBank += w.Amount * count
		return outcome{Toast: fmt.Sprintf("%d %c(s). +$%d", count, letter, w.Amount*count)}, nil
	case WedgePrize:
		value := e.prizeValue()
		banked := slices.ContainsFunc(p.RoundPrizes, func(pr Prize) bool {
			return pr.Name == w.Name
		})
		if !banked {
			p.RoundPrizes = append(p.RoundPrizes, Prize{Name: w.Name, Value: value})
		}
		// The claimed prize wedge leaves the wheel, replaced with cash.
		if e.lastSpinIdx >= 0 && e.lastSpinIdx < len(e.wheel) {
			e.wheel[e.lastSpinIdx] = cashWedge(e.prizeValue())
		}
		return outcome{Toast: fmt.Sprintf("Prize banked: %s ($%d). Spin again!", w.Name, value)}, nil
	case WedgeFreePlay:
		return outcome{Toast: fmt.Sprintf("%d %c(s). Free Play!", count, letter)}, nil
	case WedgeBankrupt, WedgeLoseATurn:
		// Unreachable: these pass the turn at spin time.
		return outcome{}, nil
	}

	return outcome{}, nil
}

func (e *engine) buyVowel(idx int, letter rune) (outcome, error) {
	if e.phase != phaseNormal {
		return outcome{}, reject(errIllegalState, "Vowels can only be bought during normal rounds.")
	}
	if err := e.requireActive(idx, "buy a vowel"); err != nil {
		return outcome{}, err
	}
	if !vowels[letter] {
		return outcome{}, reject(errInvalidCommand, "%c is not a vowel.", letter)
	}
	if e.usedLetters[letter] {
		return outcome{}, reject(errIllegalState, "%c already used.", letter)
	}

	p := e.activePlayer()
	if p.RoundBank < e.cfg.VowelCost {
		return outcome{}, reject(errInsufficientFunds, "Need $%d to buy a vowel.", e.cfg.VowelCost)
	}

	p.RoundBank -= e.cfg.VowelCost
	e.usedLetters[letter] = true
	count := e.board.reveal(letter)
	e.clearTurnState()

	if count == 0 {
		return outcome{Toast: fmt.Sprintf("No %c's. Your turn continues.", letter)}, nil
	}
	return outcome{Toast: fmt.Sprintf("%d %c(s).", count, letter)}, nil
}

func (e *engine) prizeValue() int {
	if len(e.cfg.PrizeValues) == 0 {
		return 1000
	}
	return e.cfg.PrizeValues[e.rng.IntN(len(e.cfg.PrizeValues))]
}

// ----------------------------------------------------------------------
// Solving, across all three phases
// ----------------------------------------------------------------------

func (e *engine) solve(idx int, text string) (outcome, error) {
	if strings.TrimSpace(text) == "" {
		return outcome{}, reject(errInvalidCommand, "Type a solve attempt.")
	}

	switch e.phase {
	case phaseNormal:
		return e.solveNormal(idx, text)
	case phaseTossup:
		return e.solveTossup(idx, text)
	case phaseFinal:
		return e.solveFinal(idx, text)
	}

	return outcome{}, reject(errIllegalState, "Nothing to solve right now.")
}

func (e *engine) solveNormal(idx int, text string) (outcome, error) {
	if err := e.requireActive(idx, "solve"); err != nil {
		return outcome{}, err
	}

	p := e.activePlayer()

	if !e.board.attemptSolve(text) {
		e.advancePlayer()
		return outcome{Toast: "Incorrect solve."}, nil
	}

	e.board.revealAll()
	p.awardRound()
	e.clearTurnState()

	if !e.pickNextPuzzle() {
		return outcome{Announce: p.Name + " solved the puzzle! No unused puzzles left; New Game to reuse."}, nil
	}
	return outcome{Announce: p.Name + " solved the puzzle!"}, nil
}

func (e *engine) solveTossup(idx int, text string) (outcome, error) {
	if idx < 0 || idx != e.tossupControllerIdx {
		return outcome{}, reject(errNotYourTurn, "Buzz in before solving.")
	}

	p := e.players[idx]

	if e.board.attemptSolve(text) {
		e.board.revealAll()
		p.Total += e.cfg.TossupAward
		e.activeIdx = idx
		e.endTossupState()
		e.phase = phaseNormal

		msg := fmt.Sprintf("%s solved the toss-up! +$%d", p.Name, e.cfg.TossupAward)
		if !e.pickNextPuzzle() {
			msg += " No unused puzzles left; New Game to reuse."
		}
		return outcome{Announce: msg}, nil
	}

	e.tossupLocked[idx] = true
	e.tossupControllerIdx = -1

	if e.tossupExhausted() {
		e.endTossupState()
		e.phase = phaseNormal
		return outcome{Announce: "No one solved the toss-up."}, nil
	}

	return outcome{Announce: p.Name + " guessed wrong and is locked out."}, nil
}

func (e *engine) solveFinal(idx int, text string) (outcome, error) {
	switch e.finalStage {
	case finalPick:
		return outcome{}, reject(errIllegalState, "Finish your picks before solving.")
	case finalOff, finalDone:
		// The round already resolved; a late solve is an expected race.
		return outcome{}, reject(errStaleAction, "final round already resolved")
	case finalGuess:
	}

	if idx < 0 || idx != e.finalPlayerIdx {
		return outcome{}, reject(errNotYourTurn, "Only the final-round contestant can solve.")
	}

	if !e.board.attemptSolve(text) {
		return outcome{Toast: "Incorrect. Keep trying!"}, nil
	}

	p := e.players[e.finalPlayerIdx]
	e.board.revealAll()
	p.Total += e.cfg.FinalJackpot
	p.awardRound()
	e.finalStage = finalDone
	e.finalRemaining = 0

	return outcome{Announce: fmt.Sprintf("%s solved the final puzzle and wins the $%d jackpot!", p.Name, e.cfg.FinalJackpot)}, nil
}

// ----------------------------------------------------------------------
// Toss-up phase
// ----------------------------------------------------------------------

func (e *engine) startTossup(allowed []int) {
	e.phase = phaseTossup
	e.tossupControllerIdx = -1
	e.tossupLocked = make(map[int]bool)
	e.tossupAllowed = nil
	if len(allowed) > 0 {
		e.tossupAllowed = make(map[int]bool, len(allowed))
		for _, i := range allowed {
			e.tossupAllowed[i] = true
		}
	}

	// Same puzzle, fully hidden again; hosts load a fresh puzzle first.
	e.board = newBoard(e.board.puzzle)
	e.usedLetters = make(map[rune]bool)
	e.buildTossupRevealOrder()
	e.clearTurnState()
}

func (e *engine) endTossupState() {
	e.tossupControllerIdx = -1
	e.tossupLocked = make(map[int]bool)
	e.tossupRevealOrder = nil
	e.tossupAllowed = nil
}

func (e *engine) buildTossupRevealOrder() {
	var letters []rune
	for _, r := range e.board.puzzle.Answer {
		if isBoardLetter(r) {
			letters = append(letters, r)
		}
	}
	e.rng.Shuffle(len(letters), func(i, j int) {
		letters[i], letters[j] = letters[j], letters[i]
	})
	e.tossupRevealOrder = letters
}

// tossupTick reveals the next letter of the cadence. Reveal progress is
// suspended while someone holds control. Returns whether the board changed.
func (e *engine) tossupTick() bool {
	if e.phase != phaseTossup || e.tossupControllerIdx >= 0 || len(e.tossupRevealOrder) == 0 {
		return false
	}

	ch := e.tossupRevealOrder[len(e.tossupRevealOrder)-1]
	e.tossupRevealOrder = e.tossupRevealOrder[:len(e.tossupRevealOrder)-1]

	if e.board.isRevealed(ch) {
		return false
	}
	e.board.reveal(ch)
	return true
}

func (e *engine) buzz(idx int) (outcome, error) {
	if e.phase != phaseTossup {
		return outcome{}, reject(errIllegalState, "Buzz is only available during toss-up.")
	}
	if idx < 0 {
		return outcome{}, reject(errInvalidCommand, "Join the game before buzzing.")
	}
	if e.tossupLocked[idx] {
		return outcome{}, reject(errIllegalState, "You are locked out for this toss-up.")
	}
	if e.tossupControllerIdx >= 0 {
		return outcome{}, reject(errIllegalState, "Someone else already buzzed in.")
	}
	if e.tossupAllowed != nil && !e.tossupAllowed[idx] {
		return outcome{}, reject(errIllegalState, "You are not allowed to buzz in this round.")
	}

	e.tossupControllerIdx = idx
	e.activeIdx = idx

	return outcome{Announce: e.players[idx].Name + " buzzed in!"}, nil
}

// tossupExhausted reports whether nobody eligible is left to buzz.
func (e *engine) tossupExhausted() bool {
	for i, p := range e.players {
		if !p.Connected || p.ClientID == "" {
			continue
		}
		if e.tossupAllowed != nil && !e.tossupAllowed[i] {
			continue
		}
		if !e.tossupLocked[i] {
			return false
		}
	}
	return true
}

// ----------------------------------------------------------------------
// Final phase
// ----------------------------------------------------------------------

func (e *engine) startFinal(playerIdx int) (outcome, error) {
	if len(e.players) == 0 {
		return outcome{}, reject(errIllegalState, "No players to send to the final round.")
	}
	if playerIdx < 0 {
		playerIdx = tvWinnerIndexes(e.players)[0]
	}
	if playerIdx >= len(e.players) {
		return outcome{}, reject(errInvalidCommand, "Invalid player index.")
	}

	e.phase = phaseFinal
	e.finalStage = finalPick
	e.finalPlayerIdx = playerIdx
	e.activeIdx = playerIdx
	e.finalConsonants = nil
	e.finalVowel = 0
	e.finalRemaining = 0
	e.clearTurnState()

	if !e.pickNextPuzzle() {
		// Pool exhausted; replay the current puzzle hidden.
		e.setBoard(e.board.puzzle)
	}

	return outcome{Announce: fmt.Sprintf("Final round! %s picks 3 consonants and 1 vowel.", e.players[playerIdx].Name)}, nil
}

func (e *engine) endFinalState() {
	e.finalStage = finalOff
	e.finalPlayerIdx = -1
	e.finalConsonants = nil
	e.finalVowel = 0
	e.finalRemaining = 0
}

func (e *engine) finalPicksComplete() bool {
	return len(e.finalConsonants) >= finalConsonantQuota && e.finalVowel != 0
}

func (e *engine) finalPick(idx int, kind string, letter rune) (outcome, error) {
	if e.phase != phaseFinal || e.finalStage != finalPick {
		return outcome{}, reject(errIllegalState, "Not in final pick phase.")
	}
	if idx < 0 || idx != e.finalPlayerIdx {
		return outcome{}, reject(errNotYourTurn, "Only the final-round contestant can pick.")
	}
	if e.usedLetters[letter] {
		return outcome{}, reject(errIllegalState, "%c already picked.", letter)
	}

	var toast string

	switch kind {
	case "consonant":
		if vowels[letter] {
			return outcome{}, reject(errInvalidCommand, "%c is a vowel.", letter)
		}
		if len(e.finalConsonants) >= finalConsonantQuota {
			return outcome{}, reject(errIllegalState, "Already picked 3 consonants.")
		}
		e.finalConsonants = append(e.finalConsonants, letter)
		e.usedLetters[letter] = true
		toast = fmt.Sprintf("Picked consonant: %c", letter)
	case "vowel":
		if !vowels[letter] {
			return outcome{}, reject(errInvalidCommand, "%c is not a vowel.", letter)
		}
		if e.finalVowel != 0 {
			return outcome{}, reject(errIllegalState, "Already picked a vowel.")
		}
		e.finalVowel = letter
		e.usedLetters[letter] = true
		toast = fmt.Sprintf("Picked vowel: %c", letter)
	default:
		return outcome{}, reject(errInvalidCommand, "Invalid pick kind.")
	}

	if !e.finalPicksComplete() {
		return outcome{Toast: toast}, nil
	}

	for _, ch := range e.finalConsonants {
		e.board.reveal(ch)
	}
	e.board.reveal(e.finalVowel)
	e.finalStage = finalGuess
	e.finalRemaining = e.cfg.FinalSeconds

	return outcome{Announce: "All picks complete! Solve now!"}, nil
}

// finalTick counts the final-round clock down one second. Returns the tick
// outcome and whether anything changed. A tick after resolution is a no-op,
// so a stale timer can never mutate a resolved round.
func (e *engine) finalTick() (outcome, bool) {
	if e.phase != phaseFinal || e.finalStage != finalGuess {
		return outcome{}, false
	}

	e.finalRemaining--
	if e.finalRemaining > 0 {
		return outcome{}, true
	}

	e.finalRemaining = 0
	e.finalStage = finalDone
	if e.finalPlayerIdx >= 0 && e.finalPlayerIdx < len(e.players) {
		e.players[e.finalPlayerIdx].forfeitRound()
	}

	return outcome{Announce: "Final time is up!"}, true
}

// ----------------------------------------------------------------------
// Host operations (authorization happens in the room session)
// ----------------------------------------------------------------------

func (e *engine) newGame() outcome {
	for _, p := range e.players {
		p.Total = 0
		p.Prizes = nil
		p.forfeitRound()
	}

	e.activeIdx = 0
	e.wheel = generateWheel(baseWheel(), e.cfg.WedgeGap, e.rng)
	e.phase = phaseNormal
	e.endTossupState()
	e.endFinalState()
	e.clearTurnState()
	e.lastSpinIdx = -1

	e.puzzles.Reset()
	e.pickNextPuzzle()

	return outcome{Announce: "New game started."}
}

func (e *engine) newPuzzle() outcome {
	if !e.pickNextPuzzle() {
		return outcome{Toast: "No unused puzzles left. New Game to reuse."}
	}
	return outcome{Announce: "New puzzle loaded."}
}

func (e *engine) setActivePlayer(idx int) (outcome, error) {
	if idx < 0 || idx >= len(e.players) {
		return outcome{}, reject(errInvalidCommand, "Invalid player index.")
	}
	e.activeIdx = idx
	return outcome{Announce: "Active player set to " + e.players[idx].Name + "."}, nil
}

func (e *engine) endTossup() outcome {
	e.endTossupState()
	e.phase = phaseNormal
	return outcome{Announce: "Toss-up ended."}
}

func (e *engine) endFinal() outcome {
	e.endFinalState()
	e.phase = phaseNormal
	return outcome{Announce: "Final round ended."}
}

func (e *engine) revealBoard() outcome {
	e.board.revealAll()
	return outcome{Announce: "Puzzle revealed."}
}

func (e *engine) setConfig(patch configPatch) (outcome, error) {
	if patch.VowelCost != nil {
		if *patch.VowelCost < 0 {
			return outcome{}, reject(errInvalidCommand, "Vowel cost can't be negative.")
		}
		e.cfg.VowelCost = *patch.VowelCost
	}
	if patch.FinalSeconds != nil {
		if *patch.FinalSeconds < 1 {
			return outcome{}, reject(errInvalidCommand, "Final seconds must be positive.")
		}
		e.cfg.FinalSeconds = *patch.FinalSeconds
	}
	if patch.FinalJackpot != nil {
		if *patch.FinalJackpot < 0 {
			return outcome{}, reject(errInvalidCommand, "Jackpot can't be negative.")
		}
		e.cfg.FinalJackpot = *patch.FinalJackpot
	}
	if patch.TossupAward != nil {
		if *patch.TossupAward < 0 {
			return outcome{}, reject(errInvalidCommand, "Toss-up award can't be negative.")
		}
		e.cfg.TossupAward = *patch.TossupAward
	}
	if len(patch.PrizeValues) > 0 {
		e.cfg.PrizeValues = slices.Clone(patch.PrizeValues)
	}

	return outcome{Toast: "Config saved."}, nil
}

func (e *engine) setPrizeNames(names []string) outcome {
	idx := 0
	for i, w := range e.wheel {
		if w.Kind != WedgePrize {
			continue
		}
		if idx < len(names) && names[idx] != "" {
			e.wheel[i].Name = clip(names[idx], 30)
		}
		idx++
	}
	return outcome{Announce: "Prize names updated."}
}
