package state

import (
	"context"
	"errors"

	"github.com/MrEthical07/goACL/rolebitmap"
	"github.com/google/uuid"
)

// ErrStateUnavailable is returned when the backing store cannot be reached.
var ErrStateUnavailable = errors.New("state backend unavailable")

// Store is the abstract key-value state the engine mutates. A scope is an
// opaque 32-byte partition key; an account is a UUID. Entries are created
// on first write; writing a zero bitmap removes the entry, so fully revoked
// assignments and emptied counter registers leave no residue.
type Store interface {
	// Roles returns the direct role bitmap held by account at scope.
	// Missing entries read as the zero bitmap.
	Roles(ctx context.Context, scope [32]byte, account uuid.UUID) (rolebitmap.Bitmap, error)

	// SetRoles replaces the direct role bitmap held by account at scope.
	SetRoles(ctx context.Context, scope [32]byte, account uuid.UUID, roles rolebitmap.Bitmap) error

	// Counters returns the packed assignee counter register for scope.
	// Missing entries read as the zero register.
	Counters(ctx context.Context, scope [32]byte) (rolebitmap.Bitmap, error)

	// SetCounters replaces the packed assignee counter register for scope.
	SetCounters(ctx context.Context, scope [32]byte, counters rolebitmap.Bitmap) error
}
