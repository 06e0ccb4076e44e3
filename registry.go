// Room registry: process-wide map from room ID to its session. Rooms are
// created lazily on first reference and reaped after the configured idle
// timeout; nothing is persisted across restarts.

package main

import (
	"crypto/rand"
	mathrand "math/rand/v2"
	"sync"
	"time"
)

type roomRegistry struct {
	mu      sync.Mutex
	rooms   map[string]*roomSession
	cfg     *Config
	puzzles []Puzzle
}

func newRoomRegistry(cfg *Config, puzzles []Puzzle) *roomRegistry {
	reg := &roomRegistry{
		rooms:   make(map[string]*roomSession),
		cfg:     cfg,
		puzzles: puzzles,
	}
	if cfg.sessionTimeout > 0 {
		go reg.reaperLoop()
	}
	return reg
}

func (reg *roomRegistry) get(id string) *roomSession {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if s, ok := reg.rooms[id]; ok {
		return s
	}

	rng := newRand()
	s := newRoomSession(reg.cfg, id, newMemorySource(reg.puzzles, rng), rng)
	reg.rooms[id] = s
	go s.run()

	logf(reg.cfg, "ROOMS: Created room %s", id)

	return s
}

// newRoomID generates a crypto-random room ID and ensures it doesn't
// collide with an existing room.
func (reg *roomRegistry) newRoomID() string {
	for {
		id := randomID(8)

		reg.mu.Lock()
		_, exists := reg.rooms[id]
		reg.mu.Unlock()

		if !exists {
			return id
		}
	}
}

// reaperLoop periodically removes rooms idle longer than the session
// timeout.
func (reg *roomRegistry) reaperLoop() {
	ticker := time.NewTicker(reg.cfg.sessionTimeout / 2)
	for range ticker.C {
		cutoff := time.Now().Add(-reg.cfg.sessionTimeout)

		reg.mu.Lock()
		for id, s := range reg.rooms {
			if s.idleSince().Before(cutoff) {
				delete(reg.rooms, id)
				s.close()
				logf(reg.cfg, "ROOMS: Reaped idle room %s", id)
			}
		}
		reg.mu.Unlock()
	}
}

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// randomID draws n characters from idAlphabet using crypto/rand, with
// rejection sampling to keep the distribution uniform.
func randomID(n int) string {
	maxByte := byte(255 - (256 % len(idAlphabet)))

	out := make([]byte, 0, n)
	buf := make([]byte, n*2)

	for {
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}

		for _, b := range buf {
			if b <= maxByte {
				out = append(out, idAlphabet[int(b)%len(idAlphabet)])
				if len(out) == n {
					return string(out)
				}
			}
		}
	}
}

// newRand seeds a math/rand/v2 generator from crypto/rand. Each room gets
// its own so engine randomness never contends across rooms.
func newRand() *mathrand.Rand {
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		panic("crypto/rand failure: " + err.Error())
	}
	return mathrand.New(mathrand.NewChaCha8(seed))
}
