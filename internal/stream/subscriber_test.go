package stream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adaptsync/adaptsync/internal/backoff"
	"github.com/adaptsync/adaptsync/internal/events"
	"github.com/adaptsync/adaptsync/internal/logger"
)

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func newTestSubscriber(url string, sink events.Sink) *Subscriber {
	policy := backoff.NewPolicy(10*time.Millisecond, 5)
	token := func() string { return "test-token" }
	return NewSubscriber(url, token, policy, sink, logger.Nop())
}

func TestSubscriber_ForwardsNotifications(t *testing.T) {
	upgrader := websocket.Upgrader{}
	gotAuth := make(chan string, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth <- r.Header.Get("Authorization")
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		err = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"updates","pending_events":2,"last_event_id":42}`))
		require.NoError(t, err)
		// keep the connection open until the client disconnects
		_, _, _ = conn.ReadMessage()
	}))
	defer server.Close()

	sink := events.NewChanSink(4)
	sub := newTestSubscriber(wsURL(server), sink)

	sub.Start(context.Background())
	defer sub.Stop()

	select {
	case event := <-sink.Events():
		assert.Equal(t, events.UpdatesAvailable, event.Name)
		assert.Equal(t, 2, event.Fields["pending_events"])
		assert.Equal(t, int64(42), event.Fields["last_event_id"])
	case <-time.After(2 * time.Second):
		t.Fatal("no event forwarded from the stream")
	}

	assert.Equal(t, "Bearer test-token", <-gotAuth)
}

func TestSubscriber_RedialsAfterDrop(t *testing.T) {
	upgrader := websocket.Upgrader{}
	connects := make(chan struct{}, 8)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		connects <- struct{}{}
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		// drop immediately to force a redial
		conn.Close()
	}))
	defer server.Close()

	sub := newTestSubscriber(wsURL(server), events.NopSink{})
	sub.Start(context.Background())
	defer sub.Stop()

	for i := 0; i < 2; i++ {
		select {
		case <-connects:
		case <-time.After(2 * time.Second):
			t.Fatalf("expected at least %d connection attempts", i+1)
		}
	}
}

func TestSubscriber_RedialUsesRefreshedToken(t *testing.T) {
	upgrader := websocket.Upgrader{}
	auths := make(chan string, 8)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auths <- r.Header.Get("Authorization")
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		// drop immediately to force a redial
		conn.Close()
	}))
	defer server.Close()

	var mu sync.Mutex
	current := "first-token"
	token := func() string {
		mu.Lock()
		defer mu.Unlock()
		return current
	}

	policy := backoff.NewPolicy(10*time.Millisecond, 5)
	sub := NewSubscriber(wsURL(server), token, policy, events.NopSink{}, logger.Nop())
	sub.Start(context.Background())
	defer sub.Stop()

	select {
	case auth := <-auths:
		assert.Equal(t, "Bearer first-token", auth)
	case <-time.After(2 * time.Second):
		t.Fatal("no initial connection attempt")
	}

	mu.Lock()
	current = "second-token"
	mu.Unlock()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case auth := <-auths:
			if auth == "Bearer second-token" {
				return
			}
			// a redial may still race the token swap; keep waiting
		case <-deadline:
			t.Fatal("redial never carried the refreshed token")
		}
	}
}

func TestSubscriber_MalformedMessagesAreSkipped(t *testing.T) {
	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{not json`)))
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"updates","pending_events":1}`)))
		_, _, _ = conn.ReadMessage()
	}))
	defer server.Close()

	sink := events.NewChanSink(4)
	sub := newTestSubscriber(wsURL(server), sink)
	sub.Start(context.Background())
	defer sub.Stop()

	select {
	case event := <-sink.Events():
		assert.Equal(t, 1, event.Fields["pending_events"])
	case <-time.After(2 * time.Second):
		t.Fatal("valid message after a malformed one was not forwarded")
	}
}

func TestSubscriber_EmptyURLNeverStarts(t *testing.T) {
	sub := newTestSubscriber("", events.NopSink{})
	sub.Start(context.Background())
	sub.Stop() // must not hang or panic
}

func TestSubscriber_StopUnblocksRead(t *testing.T) {
	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		// never send anything; the client blocks in ReadMessage
		_, _, _ = conn.ReadMessage()
	}))
	defer server.Close()

	sub := newTestSubscriber(wsURL(server), events.NopSink{})
	sub.Start(context.Background())
	time.Sleep(50 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		sub.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not unblock the subscriber")
	}
}
