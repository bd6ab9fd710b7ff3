package goACL

import (
	"context"
	"encoding/hex"

	"github.com/MrEthical07/goACL/rolebitmap"
	"github.com/google/uuid"
)

// Account is an opaque principal identifier. It never owns engine state;
// it is only ever a map key. The zero account is invalid as a grant target.
type Account uuid.UUID

// NewAccount returns a fresh random account identifier.
func NewAccount() Account {
	return Account(uuid.New())
}

// IsZero reports whether a is the invalid zero account.
func (a Account) IsZero() bool {
	return a == Account(uuid.Nil)
}

// String renders a in canonical UUID form.
func (a Account) String() string {
	return uuid.UUID(a).String()
}

func accountUUID(a Account) uuid.UUID {
	return uuid.UUID(a)
}

// Scope is an opaque 32-byte key partitioning role assignments. Scopes are
// created implicitly by the first grant against them and are never
// destroyed, only emptied. The zero value is [RootScope].
type Scope [32]byte

// RootScope is the distinguished scope whose assignments are read-through
// inherited by every other scope. Only the Root-specific engine entry
// points may mutate it.
var RootScope = Scope{}

// IsRoot reports whether s is the Root scope.
func (s Scope) IsRoot() bool {
	return s == RootScope
}

// String renders s as lowercase hex.
func (s Scope) String() string {
	return hex.EncodeToString(s[:])
}

// RoleChangeObserver receives grant/revoke notifications synchronously,
// after the corresponding state mutation but before the public call
// returns. A returned error aborts the enclosing operation: the engine
// rolls the assignment and counter state back and propagates the error
// unchanged. Consumers use this to react to identity-affecting role
// changes, e.g. regenerating a derived identifier.
type RoleChangeObserver interface {
	RolesGranted(ctx context.Context, scope Scope, account Account, oldRoles, newRoles, requested rolebitmap.Bitmap) error
	RolesRevoked(ctx context.Context, scope Scope, account Account, oldRoles, newRoles, requested rolebitmap.Bitmap) error
}
