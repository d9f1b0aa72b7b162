package chat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venuehub/internal/pkg/jwt"
	"venuehub/internal/pkg/logger"
	"venuehub/internal/pkg/realtime"
)

func itoa(v int64) string { return strconv.FormatInt(v, 10) }

func dialHub(t *testing.T, hub *Hub, userID int64, rooms []string, canJoin func(string) bool) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.ServeWS(w, r, userID, rooms, canJoin)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return hub.Online(userID) }, time.Second, 10*time.Millisecond)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) realtime.Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev realtime.Event
	require.NoError(t, json.Unmarshal(data, &ev))
	return ev
}

func TestHub_PublishToRoomAndUser(t *testing.T) {
	hub := NewHub(nil, logger.Discard())
	conn := dialHub(t, hub, 7, []string{"room-a"}, nil)

	hub.PublishToRoom("room-b", &realtime.Event{Type: realtime.EventNewMessage, RoomID: "room-b"})
	hub.PublishToRoom("room-a", &realtime.Event{Type: realtime.EventNewMessage, RoomID: "room-a"})

	ev := readEvent(t, conn)
	assert.Equal(t, "room-a", ev.RoomID)

	hub.PublishToUser(8, &realtime.Event{Type: realtime.EventNotification})
	hub.PublishToUser(7, &realtime.Event{Type: realtime.EventNotification})
	ev = readEvent(t, conn)
	assert.Equal(t, realtime.EventNotification, ev.Type)
}

func TestHub_SubscribeRequiresPermission(t *testing.T) {
	hub := NewHub(nil, logger.Discard())
	conn := dialHub(t, hub, 7, nil, func(roomID string) bool { return roomID == "mine" })

	require.NoError(t, conn.WriteJSON(clientFrame{Type: "subscribe", RoomID: "theirs"}))
	require.NoError(t, conn.WriteJSON(clientFrame{Type: "subscribe", RoomID: "mine"}))

	hub.mu.RLock()
	c := hub.connections[7]
	hub.mu.RUnlock()
	require.NotNil(t, c)
	require.Eventually(t, func() bool { return hub.subscribed(c, "mine") }, time.Second, 10*time.Millisecond)
	assert.False(t, hub.subscribed(c, "theirs"))
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://app.example.com"})

	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, check(r))

	r.Header.Set("Origin", "https://app.example.com")
	assert.True(t, check(r))

	assert.True(t, originChecker([]string{"*"})(r))
	assert.True(t, originChecker(nil)(r))
}

func TestWebSocket_RequiresValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _, _ := newTestService(t)
	h := NewHandler(svc, NewHub(nil, logger.Discard()), jwt.New("secret", time.Hour), logger.Discard())

	r := gin.New()
	h.RegisterRoutes(r.Group(""), r.Group(""))

	for _, target := range []string{"/ws", "/ws?token=garbage"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, target)
	}
}
