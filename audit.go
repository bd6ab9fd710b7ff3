package goACL

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/MrEthical07/goACL/rolebitmap"
)

const (
	eventRolesGranted      = "roles_granted"
	eventRolesRevoked      = "roles_revoked"
	eventRolesSeeded       = "roles_seeded"
	eventRolesRelinquished = "roles_relinquished"
	eventRolesTransferred  = "roles_transferred"
	eventRootRolesGranted  = "root_roles_granted"
	eventRootRolesRevoked  = "root_roles_revoked"
)

// AuditEvent records the outcome of one engine operation. Events are
// emitted after commit (or after a definitive failure) and never inside
// the operation's atomic unit, so a sink cannot roll an operation back.
type AuditEvent struct {
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"event_type"`
	Scope     string    `json:"scope"`
	Account   string    `json:"account,omitempty"`
	Caller    string    `json:"caller,omitempty"`
	Roles     string    `json:"roles,omitempty"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

// AuditSink consumes audit events. Emit must not block indefinitely; the
// dispatcher delivers from a single goroutine.
type AuditSink interface {
	Emit(ctx context.Context, event AuditEvent)
}

// NoOpSink discards every event.
type NoOpSink struct{}

func (NoOpSink) Emit(context.Context, AuditEvent) {}

// ChannelSink buffers events on a channel for test and pipeline consumers.
// A full channel drops the event rather than block the dispatcher goroutine.
type ChannelSink struct {
	events chan AuditEvent
}

func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan AuditEvent, buffer),
	}
}

func (s *ChannelSink) Emit(ctx context.Context, event AuditEvent) {
	select {
	case s.events <- event:
	default:
	}
}

func (s *ChannelSink) Events() <-chan AuditEvent {
	return s.events
}

// JSONWriterSink writes one JSON object per line to the wrapped writer.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

func (s *JSONWriterSink) Emit(ctx context.Context, event AuditEvent) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}

func (e *Engine) emitAudit(eventType string, scope Scope, account, caller Account, roles rolebitmap.Bitmap, opErr error) {
	if e.audit == nil {
		return
	}
	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Scope:     scope.String(),
		Account:   account.String(),
		Caller:    caller.String(),
		Roles:     roles.String(),
		Success:   opErr == nil,
	}
	if opErr != nil {
		event.Error = opErr.Error()
	}
	e.audit.Emit(context.Background(), event)
}
