package chat

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"venuehub/internal/pkg/realtime"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 64 * 1024
	sendBuffer = 256
)

// connection represents a single WebSocket client
type connection struct {
	userID int64
	conn   *websocket.Conn
	send   chan []byte
	rooms  map[string]bool
}

// Hub keeps one live connection per user and fans events out to them.
// It implements realtime.Publisher.
type Hub struct {
	mu          sync.RWMutex
	connections map[int64]*connection
	upgrader    websocket.Upgrader
	log         logrus.FieldLogger
}

var _ realtime.Publisher = (*Hub)(nil)

// NewHub accepts websocket upgrades from the given origins. An empty list or "*" allows any.
func NewHub(allowedOrigins []string, log logrus.FieldLogger) *Hub {
	h := &Hub{
		connections: make(map[int64]*connection),
		log:         log,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		o = strings.TrimSpace(o)
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		if o != "" {
			set[o] = true
		}
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.connections[c.userID]; ok {
		close(old.send)
	}
	h.connections[c.userID] = c
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.connections[c.userID]; ok && existing == c {
		delete(h.connections, c.userID)
		close(c.send)
	}
}

// Online reports whether the user has a live connection.
func (h *Hub) Online(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.connections[userID]
	return ok
}

func (h *Hub) PublishToRoom(roomID string, event *realtime.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.connections {
		if c.rooms[roomID] {
			enqueue(c, data)
		}
	}
}

func (h *Hub) PublishToUser(userID int64, event *realtime.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if c, ok := h.connections[userID]; ok {
		enqueue(c, data)
	}
}

func enqueue(c *connection, data []byte) {
	select {
	case c.send <- data:
	default:
		// slow client, drop
	}
}

// ServeWS upgrades the request and blocks until the client disconnects.
// canJoin guards subscriptions to rooms beyond the initial set.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID int64, initialRooms []string, canJoin func(roomID string) bool) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &connection{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		rooms:  make(map[string]bool, len(initialRooms)),
	}
	for _, rid := range initialRooms {
		c.rooms[rid] = true
	}

	h.register(c)
	h.log.WithField("user_id", userID).Debug("ws: connected")

	go h.writePump(c)
	h.readPump(c, canJoin)
	return nil
}

func (h *Hub) readPump(c *connection, canJoin func(string) bool) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
		h.log.WithField("user_id", c.userID).Debug("ws: disconnected")
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.WithError(err).WithField("user_id", c.userID).Warn("ws: read failed")
			}
			return
		}

		var frame clientFrame
		if err := json.Unmarshal(msg, &frame); err != nil || frame.RoomID == "" {
			continue
		}

		switch frame.Type {
		case "subscribe":
			if !h.subscribed(c, frame.RoomID) && (canJoin == nil || !canJoin(frame.RoomID)) {
				continue
			}
			h.mu.Lock()
			c.rooms[frame.RoomID] = true
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(c.rooms, frame.RoomID)
			h.mu.Unlock()
		case "typing":
			if h.subscribed(c, frame.RoomID) {
				h.PublishToRoom(frame.RoomID, &realtime.Event{
					Type:    realtime.EventTyping,
					RoomID:  frame.RoomID,
					Payload: map[string]int64{"user_id": c.userID},
				})
			}
		}
	}
}

func (h *Hub) subscribed(c *connection, roomID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return c.rooms[roomID]
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
