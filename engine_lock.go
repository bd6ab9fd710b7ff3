package goACL

import (
	"context"

	"github.com/MrEthical07/goACL/rolebitmap"
)

// Counter queries and the lock policy. These read only the per-scope
// counter register, never account-level state, and still reject malformed
// input even though they mutate nothing.

// AssigneeCount returns the counter register masked to the requested
// roles' slots, together with the slot mask itself so callers can extract
// individual counts without recomputing slot boundaries. A zero bitmap
// yields (0, 0).
func (e *Engine) AssigneeCount(ctx context.Context, scope Scope, roles rolebitmap.Bitmap) (rolebitmap.Bitmap, rolebitmap.Bitmap, error) {
	if err := e.ready(); err != nil {
		return rolebitmap.Bitmap{}, rolebitmap.Bitmap{}, err
	}
	if err := roles.Validate(); err != nil {
		return rolebitmap.Bitmap{}, rolebitmap.Bitmap{}, ErrInvalidRoleBitmap
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	counters, err := e.store.Counters(ctx, scope)
	if err != nil {
		return rolebitmap.Bitmap{}, rolebitmap.Bitmap{}, err
	}
	mask := rolebitmap.CounterSlotMask(roles)
	return counters.And(mask), mask, nil
}

// HasAssignees reports whether any slot selected by roles currently has at
// least one direct holder at scope.
func (e *Engine) HasAssignees(ctx context.Context, scope Scope, roles rolebitmap.Bitmap) (bool, error) {
	if err := e.ready(); err != nil {
		return false, err
	}
	if err := roles.Validate(); err != nil {
		return false, ErrInvalidRoleBitmap
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	counters, err := e.store.Counters(ctx, scope)
	if err != nil {
		return false, err
	}
	return rolebitmap.AnyCounterSet(counters, roles), nil
}

// IsPermanentlyLocked reports whether the given roles can never be granted
// at scope again: neither the roles nor their admin mirrors have any direct
// holder there. Granting requires an existing admin holder, so once true
// this stays true for the life of the scope. Holding only the admin bit
// (no base role) still counts as an assignee and keeps the role unlocked.
func (e *Engine) IsPermanentlyLocked(ctx context.Context, scope Scope, roles rolebitmap.Bitmap) (bool, error) {
	if err := e.ready(); err != nil {
		return false, err
	}
	if err := roles.Validate(); err != nil {
		return false, ErrInvalidRoleBitmap
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	counters, err := e.store.Counters(ctx, scope)
	if err != nil {
		return false, err
	}
	e.metricInc(MetricLockQuery)
	return !rolebitmap.AnyCounterSet(counters, roles.Or(roles.AdminOf())), nil
}

// HasExactlyOneAssignee reports whether every slot selected by roles has
// exactly one direct holder at scope. Consumers mapping onto a
// single-owner destination model call this per safety-critical role and
// refuse the move when any count is zero or two-plus.
func (e *Engine) HasExactlyOneAssignee(ctx context.Context, scope Scope, roles rolebitmap.Bitmap) (bool, error) {
	if err := e.ready(); err != nil {
		return false, err
	}
	if err := roles.Validate(); err != nil {
		return false, ErrInvalidRoleBitmap
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	counters, err := e.store.Counters(ctx, scope)
	if err != nil {
		return false, err
	}
	return rolebitmap.AllCountersOne(counters, roles), nil
}
