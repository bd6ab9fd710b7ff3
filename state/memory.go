package state

import (
	"context"
	"sync"

	"github.com/MrEthical07/goACL/rolebitmap"
	"github.com/google/uuid"
)

type assignmentKey struct {
	scope   [32]byte
	account uuid.UUID
}

// Memory is the in-process [Store]: two ordinary keyed maps guarded by a
// read-write mutex. It is the default store wired by the engine builder.
type Memory struct {
	mu          sync.RWMutex
	assignments map[assignmentKey]rolebitmap.Bitmap
	counters    map[[32]byte]rolebitmap.Bitmap
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		assignments: make(map[assignmentKey]rolebitmap.Bitmap),
		counters:    make(map[[32]byte]rolebitmap.Bitmap),
	}
}

// Roles implements [Store].
func (m *Memory) Roles(_ context.Context, scope [32]byte, account uuid.UUID) (rolebitmap.Bitmap, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.assignments[assignmentKey{scope, account}], nil
}

// SetRoles implements [Store]. A zero bitmap deletes the entry.
func (m *Memory) SetRoles(_ context.Context, scope [32]byte, account uuid.UUID, roles rolebitmap.Bitmap) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := assignmentKey{scope, account}
	if roles.IsZero() {
		delete(m.assignments, key)
		return nil
	}
	m.assignments[key] = roles
	return nil
}

// Counters implements [Store].
func (m *Memory) Counters(_ context.Context, scope [32]byte) (rolebitmap.Bitmap, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counters[scope], nil
}

// SetCounters implements [Store]. A zero register deletes the entry.
func (m *Memory) SetCounters(_ context.Context, scope [32]byte, counters rolebitmap.Bitmap) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if counters.IsZero() {
		delete(m.counters, scope)
		return nil
	}
	m.counters[scope] = counters
	return nil
}
