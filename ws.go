// Websocket transport. Each connection gets a client with a buffered send
// channel; the read pump forwards decoded commands to the room session and
// the write pump drains the send channel. Slow clients are evicted by the
// session rather than blocking the room.

package main

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const playerCookieName = "wheelparty_id"

// wsConn is the slice of *websocket.Conn the pumps depend on.
type wsConn interface {
	ReadJSON(v any) error
	WriteJSON(v any) error
	Close() error
}

type client struct {
	conn     wsConn
	send     chan any
	playerID string // cookie identity, stable across connections
	connID   string // unique per connection
}

func getOrSetPlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		log.Println("rand.Read error:", err)
		return ""
	}
	id := hex.EncodeToString(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

// serveWSForRegistry picks the room session based on :room and runs the
// connection's pumps against it.
func serveWSForRegistry(cfg *Config, reg *roomRegistry) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		room := ps.ByName("room")
		if room == "" {
			http.Error(w, "missing room id", http.StatusBadRequest)
			return
		}

		playerID := getOrSetPlayerID(w, r)
		if playerID == "" {
			http.Error(w, "unable to assign player id", http.StatusInternalServerError)
			return
		}

		session := reg.get(room)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		c := &client{
			conn:     conn,
			send:     make(chan any, 16),
			playerID: playerID,
			connID:   uuid.NewString(),
		}

		logf(cfg, "SERVE: Websocket %s connected to room %s from %s", c.connID, room, realIP(r))

		select {
		case session.register <- c:
		case <-session.done:
			_ = conn.Close()
			return
		}

		go c.writePump()
		c.readPump(session)
	}
}

func (c *client) readPump(s *roomSession) {
	defer func() {
		select {
		case s.unregister <- c:
		case <-s.done:
		}
		_ = c.conn.Close()
	}()

	for {
		var msg clientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		select {
		case s.actions <- action{c: c, msg: msg}:
		case <-s.done:
			return
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
