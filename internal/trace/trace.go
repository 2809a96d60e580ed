// Package trace provides lightweight correlation for the puppeteer protocol:
// session identifiers, per-request message identifiers, and slog decoration.
package trace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"time"
)

type ctxKey struct{}

var sessionCtxKey = ctxKey{}

// NewSessionID creates a 128-bit hex session identifier.
func NewSessionID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// RequestID creates a message identifier of the form "<kind>-<64-bit hex>".
// The kind prefix keeps request/response pairs greppable in debug logs.
func RequestID(kind string) string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return kind + "-" + hex.EncodeToString(b)
}

// WithSession injects a session ID into context.Context.
func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionCtxKey, id)
}

// SessionFromContext extracts the session ID from context.Context.
func SessionFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionCtxKey).(string)
	return id, ok
}

// Logger returns a slog.Logger carrying the session ID from ctx,
// or the default logger if none is set.
func Logger(ctx context.Context) *slog.Logger {
	id, ok := SessionFromContext(ctx)
	if !ok {
		return slog.Default()
	}
	return slog.Default().With("session_id", id)
}

// Span times a single protocol exchange.
type Span struct {
	Name      string
	StartTime time.Time
	EndTime   time.Time
}

// StartSpan begins timing a named exchange.
func StartSpan(name string) *Span {
	return &Span{Name: name, StartTime: time.Now()}
}

// End marks the span as complete.
func (s *Span) End() {
	s.EndTime = time.Now()
}

// Duration returns span duration, zero until End is called.
func (s *Span) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// LogValue implements slog.LogValuer for structured logging.
func (s *Span) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", s.Name),
		slog.Duration("duration", s.Duration()),
	)
}
