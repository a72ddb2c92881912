package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/a1betting-bridge/pkg/contracts/events"
)

func newHubServer(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub(AllowOrigins([]string{"http://localhost:5173"}), zap.NewNop())
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	t.Cleanup(srv.Close)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestHub_BroadcastReachesSubscribersOnly(t *testing.T) {
	hub, url := newHubServer(t)
	odds := dial(t, url)
	bets := dial(t, url)

	require.NoError(t, odds.WriteJSON(ClientMsg{Type: "subscribe", Topic: events.RealtimeOddsUpdate}))
	require.NoError(t, bets.WriteJSON(ClientMsg{Type: "subscribe", Topic: events.RealtimeBetUpdate}))
	require.Eventually(t, func() bool {
		return hub.Subscribers(events.RealtimeOddsUpdate) == 1 && hub.Subscribers(events.RealtimeBetUpdate) == 1
	}, time.Second, 5*time.Millisecond)

	hub.Broadcast(events.RealtimeMessage{Type: events.RealtimeOddsUpdate, Data: json.RawMessage(`{"event_id":"e1"}`)})

	_ = odds.SetReadDeadline(time.Now().Add(time.Second))
	var got events.RealtimeMessage
	require.NoError(t, odds.ReadJSON(&got))
	assert.Equal(t, events.RealtimeOddsUpdate, got.Type)
	assert.JSONEq(t, `{"event_id":"e1"}`, string(got.Data))

	_ = bets.SetReadDeadline(time.Now().Add(50 * time.Millisecond))
	_, _, err := bets.ReadMessage()
	assert.Error(t, err)
}

func TestHub_PingPong(t *testing.T) {
	_, url := newHubServer(t)
	c := dial(t, url)

	require.NoError(t, c.WriteJSON(ClientMsg{Type: "ping"}))
	_ = c.SetReadDeadline(time.Now().Add(time.Second))
	var got map[string]string
	require.NoError(t, c.ReadJSON(&got))
	assert.Equal(t, "pong", got["type"])
}

func TestHub_UnsubscribeAndDisconnectCleanUp(t *testing.T) {
	hub, url := newHubServer(t)
	a := dial(t, url)
	b := dial(t, url)

	require.NoError(t, a.WriteJSON(ClientMsg{Type: "subscribe", Topic: events.RealtimeModeChanged}))
	require.NoError(t, b.WriteJSON(ClientMsg{Type: "subscribe", Topic: events.RealtimeModeChanged}))
	require.Eventually(t, func() bool { return hub.Subscribers(events.RealtimeModeChanged) == 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, a.WriteJSON(ClientMsg{Type: "unsubscribe", Topic: events.RealtimeModeChanged}))
	require.Eventually(t, func() bool { return hub.Subscribers(events.RealtimeModeChanged) == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, b.Close())
	require.Eventually(t, func() bool { return hub.Subscribers(events.RealtimeModeChanged) == 0 }, time.Second, 5*time.Millisecond)
}

func TestAllowOrigins(t *testing.T) {
	check := AllowOrigins([]string{"http://localhost:5173"})

	req := httptest.NewRequest(http.MethodGet, "/v1/stream", nil)
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://localhost:5173")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, check(req))

	assert.True(t, AllowOrigins([]string{"*"})(req))
}

func TestHub_PublishNeverBlocksCaller(t *testing.T) {
	hub := NewHub(AllowOrigins(nil), zap.NewNop())

	done := make(chan struct{})
	go func() {
		// sem Run: a fila enche e o excedente é descartado
		for i := 0; i < queueBuffer*2; i++ {
			hub.Publish(events.RealtimeMessage{Type: events.RealtimeModeChanged})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked with a full queue")
	}
	assert.Len(t, hub.queue, queueBuffer)
}

func TestHub_RunDeliversPublished(t *testing.T) {
	hub, url := newHubServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	t.Cleanup(func() {
		cancel()
		<-stopped
	})

	c := dial(t, url)
	require.NoError(t, c.WriteJSON(ClientMsg{Type: "subscribe", Topic: events.RealtimeModeChanged}))
	require.Eventually(t, func() bool { return hub.Subscribers(events.RealtimeModeChanged) == 1 }, time.Second, 5*time.Millisecond)

	hub.Publish(events.RealtimeMessage{Type: events.RealtimeModeChanged, Data: json.RawMessage(`{"to":"DEGRADED"}`)})

	_ = c.SetReadDeadline(time.Now().Add(time.Second))
	var got events.RealtimeMessage
	require.NoError(t, c.ReadJSON(&got))
	assert.Equal(t, events.RealtimeModeChanged, got.Type)
	assert.JSONEq(t, `{"to":"DEGRADED"}`, string(got.Data))
}
