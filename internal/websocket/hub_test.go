package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, srv *httptest.Server, show string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?show=" + show
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestBroadcastReachesClientsOfShow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, w, r, "jane.doe@expocci.com", r.URL.Query().Get("show"))
	}))
	defer srv.Close()

	paris := dial(t, srv, "Paris")
	miami := dial(t, srv, "Miami")
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	hub.Broadcast(Event{Type: EventOrdersChanged, Show: "Paris", Worksheet: "Section A", By: "JD"})
	hub.Broadcast(Event{Type: EventChecklistChanged})

	var got Event
	paris.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, paris.ReadJSON(&got))
	assert.Equal(t, Event{Type: EventOrdersChanged, Show: "Paris", Worksheet: "Section A", By: "JD"}, got)
	require.NoError(t, paris.ReadJSON(&got))
	assert.Equal(t, EventChecklistChanged, got.Type)

	miami.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, miami.ReadJSON(&got))
	assert.Equal(t, EventChecklistChanged, got.Type)

	paris.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestBroadcastWithoutClientsDoesNotBlock(t *testing.T) {
	hub := NewHub()
	for i := 0; i < 200; i++ {
		hub.Broadcast(Event{Type: EventOrdersChanged})
	}
	assert.Equal(t, 0, hub.ClientCount())
}
