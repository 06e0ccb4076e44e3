package main

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConn struct{}

func (stubConn) ReadJSON(v any) error  { return io.EOF }
func (stubConn) WriteJSON(v any) error { return nil }
func (stubConn) Close() error          { return nil }

func sessionConfig() *Config {
	return &Config{
		playerTimeout:  time.Minute,
		hostCode:       "testcode",
		vowelCost:      250,
		finalSeconds:   30,
		finalJackpot:   10000,
		tossupAward:    1000,
		tossupInterval: 20 * time.Millisecond,
	}
}

func newTestSession(t *testing.T, cfg *Config, puzzles ...Puzzle) *roomSession {
	t.Helper()

	rng := seededRand(9)
	s := newRoomSession(cfg, "testroom", newMemorySource(puzzles, rng), rng)
	go s.run()
	t.Cleanup(s.close)

	return s
}

func newTestClient(playerID string) *client {
	return &client{
		conn:     stubConn{},
		send:     make(chan any, 64),
		playerID: playerID,
		connID:   uuid.NewString(),
	}
}

func connect(t *testing.T, s *roomSession, playerID string) *client {
	t.Helper()
	c := newTestClient(playerID)
	s.register <- c
	return c
}

func send(s *roomSession, c *client, msg clientMessage) {
	s.actions <- action{c: c, msg: msg}
}

// nextMessage pulls messages off a client's send channel until one of type T
// satisfies match (nil matches anything), failing after timeout.
func nextMessage[T any](t *testing.T, c *client, timeout time.Duration, match func(T) bool) T {
	t.Helper()

	deadline := time.After(timeout)
	for {
		select {
		case msg, ok := <-c.send:
			require.True(t, ok, "send channel closed while waiting for %T", *new(T))
			if v, ok := msg.(T); ok && (match == nil || match(v)) {
				return v
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %T", *new(T))
		}
	}
}

func nextToast(t *testing.T, c *client, substr string) toastMessage {
	t.Helper()
	return nextMessage(t, c, 2*time.Second, func(m toastMessage) bool {
		return strings.Contains(m.Msg, substr)
	})
}

// assertNoToastContaining drains a client for wait and fails if any toast
// mentions substr.
func assertNoToastContaining(t *testing.T, c *client, substr string, wait time.Duration) {
	t.Helper()

	deadline := time.After(wait)
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			if tm, ok := msg.(toastMessage); ok {
				require.NotContains(t, tm.Msg, substr)
			}
		case <-deadline:
			return
		}
	}
}

func TestSessionJoinBroadcastsToEveryClient(t *testing.T) {
	s := newTestSession(t, sessionConfig(), Puzzle{ID: 1, Answer: "HOT COCOA"})
	c1 := connect(t, s, "player-1")
	c2 := connect(t, s, "player-2")

	send(s, c1, clientMessage{Type: "join", Name: "Alice"})

	you := nextMessage(t, c1, 2*time.Second, func(m youMessage) bool {
		return m.PlayerIdx != nil
	})
	assert.Equal(t, 0, *you.PlayerIdx)

	for _, c := range []*client{c1, c2} {
		st := nextMessage(t, c, 2*time.Second, func(m stateMessage) bool {
			return len(m.Players) == 1
		})
		assert.Equal(t, "Alice", st.Players[0].Name)
		assert.True(t, st.Players[0].Connected)
	}
}

func TestSessionSnapshotNeverLeaksAnswer(t *testing.T) {
	s := newTestSession(t, sessionConfig(), Puzzle{ID: 1, Answer: "HOT COCOA"})
	c1 := connect(t, s, "player-1")

	send(s, c1, clientMessage{Type: "join", Name: "Alice"})

	st := nextMessage(t, c1, 2*time.Second, func(m stateMessage) bool {
		return len(m.Players) == 1
	})
	assert.Equal(t, "___ _____", st.Puzzle.Masked)
	assert.NotContains(t, st.Puzzle.Masked, "COCOA")
}

func TestSessionRejectionIsPrivateToSender(t *testing.T) {
	s := newTestSession(t, sessionConfig(), Puzzle{ID: 1, Answer: "HOT COCOA"})
	c1 := connect(t, s, "player-1")
	c2 := connect(t, s, "player-2")

	send(s, c1, clientMessage{Type: "join", Name: "Alice"})
	send(s, c2, clientMessage{Type: "join", Name: "Bob"})

	// Bob isn't the active player; his spin is refused to him alone.
	send(s, c2, clientMessage{Type: "spin"})

	nextToast(t, c2, "active player")
	assertNoToastContaining(t, c1, "active player", 200*time.Millisecond)
}

func TestSessionUnknownCommand(t *testing.T) {
	s := newTestSession(t, sessionConfig(), Puzzle{ID: 1, Answer: "HOT COCOA"})
	c1 := connect(t, s, "player-1")

	send(s, c1, clientMessage{Type: "dance"})

	nextToast(t, c1, "Unknown command")
}

func TestSessionHostClaimRules(t *testing.T) {
	s := newTestSession(t, sessionConfig(), Puzzle{ID: 1, Answer: "HOT COCOA"})
	c1 := connect(t, s, "player-1")
	c2 := connect(t, s, "player-2")

	send(s, c1, clientMessage{Type: "claim_host", Code: "wrong"})
	granted := nextMessage(t, c1, 2*time.Second, func(m hostGrantedMessage) bool { return true })
	assert.False(t, granted.Granted)

	send(s, c1, clientMessage{Type: "claim_host", Code: "testcode"})
	granted = nextMessage(t, c1, 2*time.Second, func(m hostGrantedMessage) bool { return m.Granted })
	assert.True(t, granted.Granted)

	// Only the host sees the answer.
	view := nextMessage(t, c1, 2*time.Second, func(m hostViewMessage) bool { return true })
	assert.Equal(t, "HOT COCOA", view.Answer)

	// A live claim can't be stolen by another device.
	send(s, c2, clientMessage{Type: "claim_host", Code: "testcode"})
	granted = nextMessage(t, c2, 2*time.Second, func(m hostGrantedMessage) bool { return true })
	assert.False(t, granted.Granted)
	nextToast(t, c2, "another device")
}

func TestSessionHostTakeoverAfterDisconnect(t *testing.T) {
	s := newTestSession(t, sessionConfig(), Puzzle{ID: 1, Answer: "HOT COCOA"})
	c1 := connect(t, s, "player-1")

	send(s, c1, clientMessage{Type: "claim_host", Code: "testcode"})
	nextMessage(t, c1, 2*time.Second, func(m hostGrantedMessage) bool { return m.Granted })

	s.unregister <- c1

	c2 := connect(t, s, "player-2")
	send(s, c2, clientMessage{Type: "claim_host", Code: "testcode"})
	granted := nextMessage(t, c2, 2*time.Second, func(m hostGrantedMessage) bool { return true })
	assert.True(t, granted.Granted, "a disconnected holder can be taken over")
}

func TestSessionHostOpsRequireClaim(t *testing.T) {
	s := newTestSession(t, sessionConfig(), Puzzle{ID: 1, Answer: "HOT COCOA"})
	c1 := connect(t, s, "player-1")

	send(s, c1, clientMessage{Type: "new_game"})
	nextToast(t, c1, "Host only")
}

func TestSessionTossupCadencePausesWhileControlled(t *testing.T) {
	s := newTestSession(t, sessionConfig(), Puzzle{ID: 1, Answer: "DECK THE HALLS"})
	c1 := connect(t, s, "player-1")

	send(s, c1, clientMessage{Type: "join", Name: "Alice"})
	send(s, c1, clientMessage{Type: "claim_host", Code: "testcode"})
	nextMessage(t, c1, 2*time.Second, func(m hostGrantedMessage) bool { return m.Granted })

	send(s, c1, clientMessage{Type: "start_tossup"})

	// The cadence is revealing letters.
	nextMessage(t, c1, 2*time.Second, func(m stateMessage) bool {
		return m.Phase == "tossup" && m.Tossup.LettersLeft > 0 && m.Tossup.LettersLeft < 12
	})

	send(s, c1, clientMessage{Type: "buzz"})
	st := nextMessage(t, c1, 2*time.Second, func(m stateMessage) bool {
		return m.Tossup.ControllerIdx != nil
	})
	lettersLeft := st.Tossup.LettersLeft

	// Several cadence intervals pass; nothing may be revealed while the
	// buzzer holds control.
	time.Sleep(150 * time.Millisecond)
	c2 := connect(t, s, "player-2")
	send(s, c2, clientMessage{Type: "join", Name: "Bob"})

	st = nextMessage(t, c2, 2*time.Second, func(m stateMessage) bool {
		return len(m.Players) == 2
	})
	assert.Equal(t, lettersLeft, st.Tossup.LettersLeft)
}

func TestSessionTossupCadenceResumesAfterControllerDrops(t *testing.T) {
	s := newTestSession(t, sessionConfig(), Puzzle{ID: 1, Answer: "DECK THE HALLS"})
	c1 := connect(t, s, "player-1")
	c2 := connect(t, s, "player-2")

	send(s, c1, clientMessage{Type: "join", Name: "Alice"})
	send(s, c2, clientMessage{Type: "join", Name: "Bob"})
	send(s, c2, clientMessage{Type: "claim_host", Code: "testcode"})
	nextMessage(t, c2, 2*time.Second, func(m hostGrantedMessage) bool { return m.Granted })

	send(s, c2, clientMessage{Type: "start_tossup"})
	send(s, c1, clientMessage{Type: "buzz"})

	st := nextMessage(t, c2, 2*time.Second, func(m stateMessage) bool {
		return m.Tossup.ControllerIdx != nil
	})
	lettersLeft := st.Tossup.LettersLeft
	require.Positive(t, lettersLeft)

	// The controller's connection drops without a solve. Control must be
	// released and the reveal cadence must pick back up on its own, with
	// no further commands arriving.
	s.unregister <- c1

	nextMessage(t, c2, 2*time.Second, func(m stateMessage) bool {
		return m.Tossup.ControllerIdx == nil && m.Tossup.LettersLeft < lettersLeft
	})
}

func TestSessionFinalCountdownResolvesOnce(t *testing.T) {
	cfg := sessionConfig()
	cfg.finalSeconds = 1
	s := newTestSession(t, cfg, Puzzle{ID: 1, Answer: "HOT COCOA"})
	c1 := connect(t, s, "player-1")

	send(s, c1, clientMessage{Type: "join", Name: "Alice"})
	send(s, c1, clientMessage{Type: "claim_host", Code: "testcode"})
	nextMessage(t, c1, 2*time.Second, func(m hostGrantedMessage) bool { return m.Granted })

	idx := 0
	send(s, c1, clientMessage{Type: "start_final", PlayerIdx: &idx})

	for _, letter := range []string{"B", "C", "D"} {
		send(s, c1, clientMessage{Type: "final_pick", Kind: "consonant", Letter: letter})
	}
	send(s, c1, clientMessage{Type: "final_pick", Kind: "vowel", Letter: "A"})

	nextMessage(t, c1, 2*time.Second, func(m stateMessage) bool {
		return m.Final.Stage == "guess"
	})

	// The one-second clock expires and forfeits the round.
	nextToast(t, c1, "time is up")
	st := nextMessage(t, c1, 2*time.Second, func(m stateMessage) bool {
		return m.Final.Stage == "done"
	})
	require.Len(t, st.Players, 1)
	total := st.Players[0].Total

	// A solve arriving after the clock already resolved the round is
	// dropped silently; the jackpot is never paid.
	send(s, c1, clientMessage{Type: "solve", Attempt: "HOT COCOA"})
	assertNoToastContaining(t, c1, "jackpot", 300*time.Millisecond)

	send(s, c1, clientMessage{Type: "reveal_all"})
	st = nextMessage(t, c1, 2*time.Second, func(m stateMessage) bool {
		return m.Puzzle.Masked == "HOT COCOA"
	})
	assert.Equal(t, total, st.Players[0].Total)
}

func TestSessionFinalSolveBeatsCountdown(t *testing.T) {
	s := newTestSession(t, sessionConfig(), Puzzle{ID: 1, Answer: "HOT COCOA"})
	c1 := connect(t, s, "player-1")

	send(s, c1, clientMessage{Type: "join", Name: "Alice"})
	send(s, c1, clientMessage{Type: "claim_host", Code: "testcode"})
	nextMessage(t, c1, 2*time.Second, func(m hostGrantedMessage) bool { return m.Granted })

	idx := 0
	send(s, c1, clientMessage{Type: "start_final", PlayerIdx: &idx})
	for _, letter := range []string{"B", "C", "D"} {
		send(s, c1, clientMessage{Type: "final_pick", Kind: "consonant", Letter: letter})
	}
	send(s, c1, clientMessage{Type: "final_pick", Kind: "vowel", Letter: "A"})

	send(s, c1, clientMessage{Type: "solve", Attempt: "hot cocoa"})

	nextToast(t, c1, "jackpot")
	st := nextMessage(t, c1, 2*time.Second, func(m stateMessage) bool {
		return m.Final.Stage == "done"
	})
	assert.Equal(t, 10000, st.Players[0].Total)
}

func TestSessionDisconnectMarksPlayer(t *testing.T) {
	s := newTestSession(t, sessionConfig(), Puzzle{ID: 1, Answer: "HOT COCOA"})
	c1 := connect(t, s, "player-1")
	c2 := connect(t, s, "player-2")

	send(s, c1, clientMessage{Type: "join", Name: "Alice"})
	nextMessage(t, c2, 2*time.Second, func(m stateMessage) bool {
		return len(m.Players) == 1 && m.Players[0].Connected
	})

	s.unregister <- c1

	st := nextMessage(t, c2, 2*time.Second, func(m stateMessage) bool {
		return len(m.Players) == 1 && !m.Players[0].Connected
	})
	assert.Equal(t, "Alice", st.Players[0].Name)
}
