// Package stream delivers question events to a single client.
package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"docuchat/backend/internal/model"
)

var (
	// ErrClosed is returned by Send after Close or after a failed write.
	ErrClosed = errors.New("stream closed")
	// ErrTerminated is returned by Send once a done or error event was sent.
	ErrTerminated = errors.New("stream already terminated")
)

// Sink is the single owner of a client's event stream. Send is safe for
// concurrent use and delivers events in call order. At most one terminal event
// is accepted and nothing is written after Close.
type Sink interface {
	Send(event model.StreamEvent) error
	Close() error
}

// gate enforces the close-once and single-terminal rules shared by all sinks.
type gate struct {
	mu         sync.Mutex
	closed     atomic.Bool
	terminated bool
}

// write runs fn under the gate's lock if the stream is still writable.
func (g *gate) write(event model.StreamEvent, fn func() error) error {
	if g.closed.Load() {
		return ErrClosed
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed.Load() {
		return ErrClosed
	}
	if g.terminated {
		return ErrTerminated
	}
	if err := fn(); err != nil {
		g.closed.Store(true)
		return err
	}
	if event.Type.IsTerminal() {
		g.terminated = true
	}
	return nil
}

// close reports whether this call closed the gate.
func (g *gate) close() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.closed.CompareAndSwap(false, true)
}

func (g *gate) isClosed() bool {
	return g.closed.Load()
}

// Writer writes events as server-sent events:
//
//	event: <type>
//	data: <json payload>
//
// and flushes after every event.
type Writer struct {
	gate
	w       io.Writer
	flusher http.Flusher
}

// NewWriter prepares w for an event stream and writes the response headers.
func NewWriter(w http.ResponseWriter) *Writer {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	sw := &Writer{w: w}
	if f, ok := w.(http.Flusher); ok {
		sw.flusher = f
		f.Flush()
	}
	return sw
}

func (s *Writer) Send(event model.StreamEvent) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}

	return s.write(event, func() error {
		if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event.Type, data); err != nil {
			slog.Warn("Failed to write stream event, client might have disconnected", "event", event.Type, "error", err)
			return fmt.Errorf("failed to write %s event: %w", event.Type, err)
		}
		if s.flusher != nil {
			s.flusher.Flush()
		}
		return nil
	})
}

// Close marks the stream closed. It is idempotent.
func (s *Writer) Close() error {
	if s.close() {
		slog.Debug("Event stream closed")
	}
	return nil
}

// Closed reports whether the stream accepts no more events.
func (s *Writer) Closed() bool {
	return s.isClosed()
}
