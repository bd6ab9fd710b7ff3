package goACL

import (
	"errors"
	"fmt"

	"github.com/MrEthical07/goACL/rolebitmap"
)

var (
	// ErrEngineNotReady is returned by operations on a nil or unbuilt engine.
	ErrEngineNotReady = errors.New("engine not ready")
	// ErrInvalidRoleBitmap is returned when a caller-supplied bitmap sets any
	// bit other than a slot's lowest. Every entry point that accepts a
	// bitmap returns it, including pure reads.
	ErrInvalidRoleBitmap = errors.New("invalid role bitmap")
	// ErrInvalidAccount is returned when a grant targets the zero account.
	ErrInvalidAccount = errors.New("invalid account")
	// ErrRootResourceNotAllowed is returned when GrantRoles or RevokeRoles is
	// invoked against the Root scope; Root mutation goes through the
	// Root-specific entry points.
	ErrRootResourceNotAllowed = errors.New("root resource not allowed")
	// ErrCannotGrantRoles is matched by grant authorization failures.
	ErrCannotGrantRoles = errors.New("cannot grant roles")
	// ErrCannotRevokeRoles is matched by revoke authorization failures.
	ErrCannotRevokeRoles = errors.New("cannot revoke roles")
	// ErrMaxAssigneesExceeded is matched when a grant would push a counter
	// slot past its 15-assignee cap.
	ErrMaxAssigneesExceeded = errors.New("max assignees exceeded")
)

// AuthorizationError reports a caller lacking admin authority, direct or
// Root-inherited, over every requested bit. It matches ErrCannotGrantRoles
// or ErrCannotRevokeRoles via errors.Is depending on the failed operation.
type AuthorizationError struct {
	Scope  Scope
	Roles  rolebitmap.Bitmap
	Caller Account

	reason error
}

func grantDenied(scope Scope, roles rolebitmap.Bitmap, caller Account) *AuthorizationError {
	return &AuthorizationError{Scope: scope, Roles: roles, Caller: caller, reason: ErrCannotGrantRoles}
}

func revokeDenied(scope Scope, roles rolebitmap.Bitmap, caller Account) *AuthorizationError {
	return &AuthorizationError{Scope: scope, Roles: roles, Caller: caller, reason: ErrCannotRevokeRoles}
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%v: scope=%s roles=%s caller=%s", e.reason, e.Scope, e.Roles, e.Caller)
}

func (e *AuthorizationError) Unwrap() error {
	return e.reason
}

// MaxAssigneesError reports the scope and the role bits whose counter slot
// is already at the 15-assignee cap. It matches ErrMaxAssigneesExceeded via
// errors.Is.
type MaxAssigneesError struct {
	Scope    Scope
	RoleMask rolebitmap.Bitmap
}

func (e *MaxAssigneesError) Error() string {
	return fmt.Sprintf("%v: scope=%s roles=%s", ErrMaxAssigneesExceeded, e.Scope, e.RoleMask)
}

func (e *MaxAssigneesError) Unwrap() error {
	return ErrMaxAssigneesExceeded
}
