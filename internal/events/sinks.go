package events

import (
	"context"

	"github.com/adaptsync/adaptsync/internal/logger"
)

// LogSink writes every event to the structured log at info level.
// It is the default sink when the embedding application does not
// subscribe to events itself.
type LogSink struct {
	logger *logger.Logger
}

func NewLogSink(logger *logger.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Emit(_ context.Context, event Event) {
	s.logger.Info().
		Str("event", event.Name).
		Time("occurred_at", event.OccurredAt).
		Fields(event.Fields).
		Msg("sync event")
}

// ChanSink forwards events to a buffered channel. When the buffer is full
// the event is dropped rather than blocking the sync engines.
type ChanSink struct {
	ch chan Event
}

func NewChanSink(buffer int) *ChanSink {
	return &ChanSink{ch: make(chan Event, buffer)}
}

// Events returns the receive side of the sink.
func (s *ChanSink) Events() <-chan Event {
	return s.ch
}

func (s *ChanSink) Emit(_ context.Context, event Event) {
	select {
	case s.ch <- event:
	default:
	}
}

// MultiSink fans an event out to several sinks in order.
type MultiSink []Sink

func (s MultiSink) Emit(ctx context.Context, event Event) {
	for _, sink := range s {
		sink.Emit(ctx, event)
	}
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Emit(context.Context, Event) {}
