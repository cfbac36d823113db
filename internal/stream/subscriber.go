// Package stream maintains a live websocket subscription to the backend's
// update feed. It is deliberately thin: every received notification is
// forwarded into the event sink as updates.available, and the periodic
// checker or an explicit sync decides what to do with it. Dropped
// connections are redialed under the shared backoff policy.
package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/adaptsync/adaptsync/internal/backoff"
	"github.com/adaptsync/adaptsync/internal/events"
	"github.com/adaptsync/adaptsync/internal/logger"
)

// notification is the wire shape of one feed message.
type notification struct {
	Type          string `json:"type"`
	PendingEvents int    `json:"pending_events,omitempty"`
	LastEventID   int64  `json:"last_event_id,omitempty"`
}

// TokenFunc supplies the current bearer token for a dial. It is consulted on
// every connection attempt so a refreshed token reaches redials too.
type TokenFunc func() string

// Subscriber owns the websocket connection lifecycle.
type Subscriber struct {
	url    string
	token  TokenFunc
	policy backoff.Policy
	sink   events.Sink
	logger *logger.Logger

	dial dialFunc

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

type dialFunc func(ctx context.Context, url string, header http.Header) (*websocket.Conn, error)

func defaultDial(ctx context.Context, url string, header http.Header) (*websocket.Conn, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	return conn, err
}

// NewSubscriber returns a stopped subscriber for the given feed URL. token is
// called before each dial and its result sent as a bearer header on the
// upgrade request; it may be nil when the feed is unauthenticated.
func NewSubscriber(url string, token TokenFunc, policy backoff.Policy, sink events.Sink, logger *logger.Logger) *Subscriber {
	if token == nil {
		token = func() string { return "" }
	}
	return &Subscriber{
		url:    url,
		token:  token,
		policy: policy,
		sink:   sink,
		logger: logger,
		dial:   defaultDial,
	}
}

// Start launches the subscription goroutine. Calling Start on a running
// subscriber is a no-op.
func (s *Subscriber) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.url == "" {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.started = true

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info().Str("url", s.url).Msg("stream subscriber started")
}

// Stop closes the connection and waits for the goroutine to exit.
func (s *Subscriber) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.started = false
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info().Msg("stream subscriber stopped")
}

func (s *Subscriber) run(ctx context.Context) {
	defer s.wg.Done()

	ctx = s.logger.WithContext(ctx)
	retrier := s.policy.NewRetrier()

	for {
		if ctx.Err() != nil {
			return
		}

		if err := s.listen(ctx, retrier); err != nil && ctx.Err() == nil {
			delay, backoffErr := retrier.Next()
			if backoffErr != nil {
				// Start over at attempt one rather than give up on the feed.
				retrier.Reset()
				delay, _ = retrier.Next()
			}
			s.logger.Warn().Err(err).Dur("redial_in", delay).Msg("stream connection lost")

			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			continue
		}
	}
}

// listen dials once and forwards messages until the connection breaks or ctx
// is cancelled. A successful dial resets the redial backoff.
func (s *Subscriber) listen(ctx context.Context, retrier *backoff.Retrier) error {
	header := http.Header{}
	if token := s.token(); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, err := s.dial(ctx, s.url, header)
	if err != nil {
		return err
	}
	defer conn.Close()

	retrier.Reset()
	s.logger.Debug().Str("url", s.url).Msg("stream connected")

	// close the socket when ctx ends so ReadMessage unblocks
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = conn.WriteMessage(websocket.CloseMessage, msg)
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		var note notification
		if err = json.Unmarshal(payload, &note); err != nil {
			s.logger.Debug().Err(err).Msg("discarding malformed stream message")
			continue
		}

		s.sink.Emit(ctx, events.NewEvent(events.UpdatesAvailable, map[string]any{
			"source":         "stream",
			"pending_events": note.PendingEvents,
			"last_event_id":  note.LastEventID,
		}))
	}
}
