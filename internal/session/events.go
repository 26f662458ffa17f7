package session

import (
	"sync"

	"github.com/vovakirdan/gem-arcade/internal/match3"
)

// Event is a notification published by a session.
// Sinks observe events; nothing they do feeds back into game logic
// except through the public session API, which rejects re-entry while resolving.
type Event interface {
	sessionEvent()
}

// StartedEvent is published once a board is dealt.
type StartedEvent struct {
	SessionID string
	Mode      Mode
	Rules     ModeRules
	Board     *match3.Grid
	Playable  bool // False when generation exhausted its retries
}

func (StartedEvent) sessionEvent() {}

// SwapRejectedEvent reports an invalid swap attempt.
type SwapRejectedEvent struct {
	Move   match3.Move
	Reason RejectReason
}

func (SwapRejectedEvent) sessionEvent() {}

// SwapAcceptedEvent is published after the swap is committed and before the cascade.
type SwapAcceptedEvent struct {
	Move           match3.Move
	MovesRemaining int
}

func (SwapAcceptedEvent) sessionEvent() {}

// RoundResolvedEvent carries one cascade round, in order.
type RoundResolvedEvent struct {
	Round match3.RoundOutcome
	Score int // Session score including this round
}

func (RoundResolvedEvent) sessionEvent() {}

// ReshuffledEvent is published when the board is replaced by a permutation.
type ReshuffledEvent struct {
	Manual   bool // Requested through Shuffle rather than a deadlock
	Board    *match3.Grid
	Playable bool
}

func (ReshuffledEvent) sessionEvent() {}

// EndedEvent carries the final result.
type EndedEvent struct {
	Result Result
}

func (EndedEvent) sessionEvent() {}

// EventSink receives session events synchronously.
type EventSink interface {
	Publish(evt Event)
}

// EventFunc adapts a function to EventSink.
type EventFunc func(evt Event)

// Publish calls f(evt).
func (f EventFunc) Publish(evt Event) {
	f(evt)
}

// MultiSink fans an event out to every sink in order.
type MultiSink []EventSink

// Publish forwards evt to every non-nil sink.
func (m MultiSink) Publish(evt Event) {
	for _, s := range m {
		if s != nil {
			s.Publish(evt)
		}
	}
}

type discardSink struct{}

func (discardSink) Publish(Event) {}

// ChannelSink buffers events on a channel for a consumer on another goroutine.
// Publish never blocks: when the buffer is full the oldest event is dropped.
type ChannelSink struct {
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewChannelSink creates a sink holding up to size events (64 if size < 1).
func NewChannelSink(size int) *ChannelSink {
	if size < 1 {
		size = 64
	}
	return &ChannelSink{
		events: make(chan Event, size),
		done:   make(chan struct{}),
	}
}

// Publish enqueues evt, dropping the oldest buffered event if needed.
func (c *ChannelSink) Publish(evt Event) {
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.events <- evt:
	default:
		select {
		case <-c.events:
		default:
		}
		select {
		case c.events <- evt:
		default:
		}
	}
}

// Events returns the receive side of the buffer.
func (c *ChannelSink) Events() <-chan Event {
	return c.events
}

// Close stops accepting events. Safe to call multiple times.
func (c *ChannelSink) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}
