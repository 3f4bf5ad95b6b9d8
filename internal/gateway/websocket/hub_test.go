package websocket

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHubServer(t *testing.T, userID uint) (*Hub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	engine := gin.New()
	engine.GET("/ws", func(c *gin.Context) { hub.Serve(c, userID) })
	server := httptest.NewServer(engine)
	t.Cleanup(func() {
		hub.Close()
		server.Close()
	})
	return hub, "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestDeliverToOfflineUser(t *testing.T) {
	hub := NewHub()
	assert.False(t, hub.Deliver(1, []byte("x")))
	assert.False(t, hub.Online(1))
}

func TestDeliverReachesEveryConnection(t *testing.T) {
	hub, url := newHubServer(t, 7)

	first := dial(t, url)
	defer first.Close()
	second := dial(t, url)
	defer second.Close()
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients[7]) == 2
	}, 2*time.Second, 10*time.Millisecond)

	assert.True(t, hub.Deliver(7, []byte(`{"type":"like"}`)))

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"like"}`, string(payload))
	}
	assert.False(t, hub.Deliver(8, []byte("x")))
}

func TestClientDisconnectUnregisters(t *testing.T) {
	hub, url := newHubServer(t, 3)

	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.Online(3) }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	_ = conn.Close()

	require.Eventually(t, func() bool { return !hub.Online(3) }, 2*time.Second, 10*time.Millisecond)
}

func TestCloseDisconnectsClients(t *testing.T) {
	hub, url := newHubServer(t, 5)

	conn := dial(t, url)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Online(5) }, 2*time.Second, 10*time.Millisecond)

	hub.Close()
	assert.False(t, hub.Online(5))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
