// Room session: the single-writer wrapper around one engine. All commands,
// timer ticks, and connection changes for a room funnel through one run
// loop, so game state is never mutated concurrently. Accepted mutations
// broadcast a snapshot to every subscriber; rejections answer only the
// issuing client.

package main

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"
)

type action struct {
	c   *client
	msg clientMessage
}

type tickKind int

const (
	tickTossup tickKind = iota
	tickFinal
)

// timerTick is stamped with the generation current when its ticker was
// started; the run loop drops ticks from cancelled generations, so a timer
// racing its own cancellation can never mutate a resolved round.
type timerTick struct {
	kind tickKind
	gen  int
}

type roomSession struct {
	id  string
	cfg *Config
	eng *engine

	clients map[*client]bool
	hostID  string // cookie identity of the claimed host device

	register   chan *client
	unregister chan *client
	actions    chan action
	ticks      chan timerTick
	removals   chan string
	done       chan struct{}

	tossupGen  int
	tossupStop chan struct{}
	finalGen   int
	finalStop  chan struct{}

	mu         sync.RWMutex
	createdAt  time.Time
	lastActive time.Time
}

func newRoomSession(cfg *Config, id string, puzzles PuzzleSource, rng *rand.Rand) *roomSession {
	now := time.Now()
	return &roomSession{
		id:         id,
		cfg:        cfg,
		eng:        newEngine(id, cfg.gameConfig(), puzzles, rng),
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		actions:    make(chan action),
		ticks:      make(chan timerTick, 4),
		removals:   make(chan string),
		done:       make(chan struct{}),
		createdAt:  now,
		lastActive: now,
	}
}

func (s *roomSession) idleSince() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActive
}

func (s *roomSession) touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

func (s *roomSession) close() {
	close(s.done)
}

func (s *roomSession) run() {
	defer func() {
		s.stopTossupTimer()
		s.stopFinalTimer()
		for c := range s.clients {
			close(c.send)
			_ = c.conn.Close()
			delete(s.clients, c)
		}
	}()

	for {
		select {
		case <-s.done:
			return

		case c := <-s.register:
			s.touch()
			s.clients[c] = true
			s.eng.setConnected(c.playerID, true)
			s.sendIdentity(c)
			s.trySend(c, snapshot(s.eng, s.hostID != ""))
			if s.hostID != "" && c.playerID == s.hostID {
				s.trySend(c, hostView(s.eng))
			}
			s.broadcastState()
			s.reconcileTimers()

		case c := <-s.unregister:
			s.touch()
			if _, ok := s.clients[c]; ok {
				delete(s.clients, c)
				close(c.send)
			}
			if c.playerID != "" && !s.hasConnection(c.playerID) {
				// A dropped toss-up controller releases control, which may
				// need the reveal cadence restarted.
				if s.eng.setConnected(c.playerID, false) {
					s.broadcastState()
					s.reconcileTimers()
				}
				s.scheduleRemoval(c.playerID)
			}

		case a := <-s.actions:
			s.touch()
			s.dispatch(a)

		case t := <-s.ticks:
			s.applyTick(t)

		case playerID := <-s.removals:
			// Reclaim the slot only if the player never came back.
			if s.hasConnection(playerID) {
				continue
			}
			if _, err := s.eng.leave(playerID); err == nil {
				logf(s.cfg, "GAMES: Reaped idle player from %s", s.id)
				s.broadcastState()
				s.reconcileTimers()
			}
		}
	}
}

func (s *roomSession) hasConnection(playerID string) bool {
	for c := range s.clients {
		if c.playerID == playerID {
			return true
		}
	}
	return false
}

func (s *roomSession) scheduleRemoval(playerID string) {
	time.AfterFunc(s.cfg.playerTimeout, func() {
		select {
		case s.removals <- playerID:
		case <-s.done:
		}
	})
}

// dispatch executes one client command against the engine. A panic inside a
// command is contained: the faulty command is answered with a private error
// and the room keeps serving.
func (s *roomSession) dispatch(a action) {
	defer func() {
		if r := recover(); r != nil {
			logf(s.cfg, "ERROR: Room %s command %q panicked: %v", s.id, a.msg.Type, r)
			s.trySend(a.c, toast("Internal error. The command was ignored."))
		}
	}()

	c := a.c
	msg := a.msg
	idx := s.eng.playerIndexFor(c.playerID)

	var (
		out outcome
		err error
	)

	switch msg.Type {
	case "join":
		var joined int
		joined, out, err = s.eng.join(msg.Name, c.playerID)
		if err == nil {
			s.sendToPlayer(c.playerID, youMessage{Type: "you", PlayerIdx: optionalIdx(joined)})
		}

	case "leave":
		out, err = s.eng.leave(c.playerID)
		if err == nil {
			s.sendToPlayer(c.playerID, youMessage{Type: "you", PlayerIdx: nil})
		}

	case "spin":
		out, err = s.eng.spin(idx)

	case "guess":
		var letter rune
		letter, err = parseLetter(msg.Letter)
		if err == nil {
			out, err = s.eng.guessLetter(idx, letter)
		}

	case "buy_vowel":
		var letter rune
		letter, err = parseLetter(msg.Letter)
		if err == nil {
			out, err = s.eng.buyVowel(idx, letter)
		}

	case "solve":
		out, err = s.eng.solve(idx, msg.Attempt)

	case "buzz":
		out, err = s.eng.buzz(idx)

	case "final_pick":
		var letter rune
		letter, err = parseLetter(msg.Letter)
		if err == nil {
			out, err = s.eng.finalPick(idx, msg.Kind, letter)
		}

	case "claim_host":
		out, err = s.claimHost(c, msg.Code)

	case "release_host":
		out, err = s.releaseHost(c)

	case "new_game":
		if err = s.requireHost(c); err == nil {
			out = s.eng.newGame()
		}

	case "new_puzzle":
		if err = s.requireHost(c); err == nil {
			out = s.eng.newPuzzle()
		}

	case "start_tossup":
		if err = s.requireHost(c); err == nil {
			s.eng.startTossup(msg.Allowed)
			out = outcome{Announce: "Toss-up started!"}
		}

	case "end_tossup":
		if err = s.requireHost(c); err == nil {
			out = s.eng.endTossup()
		}

	case "start_final":
		if err = s.requireHost(c); err == nil {
			playerIdx := -1
			if msg.PlayerIdx != nil {
				playerIdx = *msg.PlayerIdx
			}
			out, err = s.eng.startFinal(playerIdx)
		}

	case "end_final":
		if err = s.requireHost(c); err == nil {
			out = s.eng.endFinal()
		}

	case "set_active_player":
		if err = s.requireHost(c); err == nil {
			if msg.PlayerIdx == nil {
				err = reject(errInvalidCommand, "Choose a player.")
			} else {
				out, err = s.eng.setActivePlayer(*msg.PlayerIdx)
			}
		}

	case "set_config":
		if err = s.requireHost(c); err == nil {
			if msg.Config == nil {
				err = reject(errInvalidCommand, "Invalid config.")
			} else {
				out, err = s.eng.setConfig(*msg.Config)
			}
		}

	case "set_prize_names":
		if err = s.requireHost(c); err == nil {
			out = s.eng.setPrizeNames(msg.Names)
		}

	case "reveal_all":
		if err = s.requireHost(c); err == nil {
			out = s.eng.revealBoard()
		}

	default:
		err = reject(errInvalidCommand, "Unknown command %q.", msg.Type)
	}

	if err != nil {
		// Stale actions are an expected race, not a fault; drop silently.
		if !errors.Is(err, errStaleAction) {
			s.trySend(c, toast(err.Error()))
		}
		return
	}

	s.broadcastState()
	if out.Toast != "" {
		s.trySend(c, toast(out.Toast))
	}
	if out.Announce != "" {
		s.broadcast(toast(out.Announce))
		logf(s.cfg, "GAMES: %s: %s", s.id, out.Announce)
	}
	s.reconcileTimers()
}

func (s *roomSession) requireHost(c *client) error {
	if s.hostID == "" || c.playerID != s.hostID {
		return reject(errNotHost, "Host only.")
	}
	return nil
}

func (s *roomSession) claimHost(c *client, code string) (outcome, error) {
	if code != s.cfg.hostCode {
		s.trySend(c, hostGrantedMessage{Type: "host_granted", Granted: false})
		return outcome{}, reject(errNotHost, "Invalid host code.")
	}

	// At most one holder: a live claim by another device wins. A claim
	// whose device has disconnected may be taken over.
	if s.hostID != "" && s.hostID != c.playerID && s.hasConnection(s.hostID) {
		s.trySend(c, hostGrantedMessage{Type: "host_granted", Granted: false})
		return outcome{}, reject(errNotHost, "Host is already claimed on another device.")
	}

	s.hostID = c.playerID
	s.sendToPlayer(c.playerID, hostGrantedMessage{Type: "host_granted", Granted: true})
	logf(s.cfg, "GAMES: Host claimed in %s", s.id)

	return outcome{Toast: "Host mode enabled on this device."}, nil
}

func (s *roomSession) releaseHost(c *client) (outcome, error) {
	if err := s.requireHost(c); err != nil {
		return outcome{}, reject(errNotHost, "Only the host can release host mode.")
	}

	s.hostID = ""
	s.sendToPlayer(c.playerID, hostGrantedMessage{Type: "host_granted", Granted: false})

	return outcome{Toast: "Host released."}, nil
}

// ----------------------------------------------------------------------
// Outbound delivery
// ----------------------------------------------------------------------

func (s *roomSession) sendIdentity(c *client) {
	s.trySend(c, youMessage{Type: "you", PlayerIdx: optionalIdx(s.eng.playerIndexFor(c.playerID))})
}

func (s *roomSession) trySend(c *client, msg any) {
	select {
	case c.send <- msg:
	default:
		delete(s.clients, c)
		close(c.send)
	}
}

func (s *roomSession) sendToPlayer(playerID string, msg any) {
	for c := range s.clients {
		if c.playerID == playerID {
			s.trySend(c, msg)
		}
	}
}

func (s *roomSession) broadcast(msg any) {
	for c := range s.clients {
		s.trySend(c, msg)
	}
}

func (s *roomSession) broadcastState() {
	st := snapshot(s.eng, s.hostID != "")
	s.broadcast(st)
	if s.hostID != "" {
		s.sendToPlayer(s.hostID, hostView(s.eng))
	}
}

// ----------------------------------------------------------------------
// Timers
// ----------------------------------------------------------------------

func (s *roomSession) applyTick(t timerTick) {
	switch t.kind {
	case tickTossup:
		if t.gen != s.tossupGen {
			return
		}
		if s.eng.tossupTick() {
			s.broadcastState()
		}
	case tickFinal:
		if t.gen != s.finalGen {
			return
		}
		out, changed := s.eng.finalTick()
		if !changed {
			return
		}
		s.broadcastState()
		if out.Announce != "" {
			s.broadcast(toast(out.Announce))
		}
	}
	s.reconcileTimers()
}

// reconcileTimers starts and stops the cadence tickers to match the engine
// state. Called after every accepted mutation and every applied tick.
func (s *roomSession) reconcileTimers() {
	tossupWanted := s.eng.phase == phaseTossup &&
		s.eng.tossupControllerIdx < 0 &&
		len(s.eng.tossupRevealOrder) > 0
	if tossupWanted && s.tossupStop == nil {
		s.tossupGen++
		s.tossupStop = s.startTicker(tickTossup, s.tossupGen, s.cfg.tossupInterval)
	} else if !tossupWanted && s.tossupStop != nil {
		s.stopTossupTimer()
	}

	finalWanted := s.eng.phase == phaseFinal && s.eng.finalStage == finalGuess
	if finalWanted && s.finalStop == nil {
		s.finalGen++
		s.finalStop = s.startTicker(tickFinal, s.finalGen, time.Second)
	} else if !finalWanted && s.finalStop != nil {
		s.stopFinalTimer()
	}
}

func (s *roomSession) stopTossupTimer() {
	if s.tossupStop != nil {
		close(s.tossupStop)
		s.tossupStop = nil
	}
	s.tossupGen++
}

func (s *roomSession) stopFinalTimer() {
	if s.finalStop != nil {
		close(s.finalStop)
		s.finalStop = nil
	}
	s.finalGen++
}

func (s *roomSession) startTicker(kind tickKind, gen int, interval time.Duration) chan struct{} {
	stop := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				select {
				case s.ticks <- timerTick{kind: kind, gen: gen}:
				case <-stop:
					return
				case <-s.done:
					return
				}
			case <-stop:
				return
			case <-s.done:
				return
			}
		}
	}()

	return stop
}
