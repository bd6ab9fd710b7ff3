package goACL

import (
	"context"

	"github.com/MrEthical07/goACL/rolebitmap"
)

// HasRoles reports whether account holds every bit of roles at scope,
// directly or through a Root assignment.
func (e *Engine) HasRoles(ctx context.Context, scope Scope, roles rolebitmap.Bitmap, account Account) (bool, error) {
	if err := e.ready(); err != nil {
		return false, err
	}
	if err := roles.Validate(); err != nil {
		return false, ErrInvalidRoleBitmap
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	held, err := e.effectiveRoles(ctx, scope, account)
	if err != nil {
		return false, err
	}
	return held.Contains(roles), nil
}

// GrantRoles grants roles to account at scope on behalf of caller. The
// caller must hold the admin mirror of every requested bit at scope or at
// Root. Returns false without mutation or callback when account already
// holds every requested bit.
func (e *Engine) GrantRoles(ctx context.Context, caller Account, scope Scope, roles rolebitmap.Bitmap, account Account) (bool, error) {
	if err := e.ready(); err != nil {
		return false, err
	}
	if err := roles.Validate(); err != nil {
		return false, ErrInvalidRoleBitmap
	}
	if scope.IsRoot() {
		return false, ErrRootResourceNotAllowed
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ok, err := e.authorized(ctx, scope, roles, caller)
	if err != nil {
		return false, err
	}
	if !ok {
		e.metricInc(MetricGrantDenied)
		e.emitAudit(eventRolesGranted, scope, account, caller, roles, grantDenied(scope, roles, caller))
		return false, grantDenied(scope, roles, caller)
	}
	if account.IsZero() {
		return false, ErrInvalidAccount
	}

	changed, err := e.applyGrant(ctx, scope, roles, account)
	switch {
	case err != nil:
		e.metricInc(MetricGrantFailed)
		e.emitAudit(eventRolesGranted, scope, account, caller, roles, err)
		return false, err
	case !changed:
		e.metricInc(MetricGrantNoop)
		return false, nil
	}

	e.metricInc(MetricGrantSuccess)
	e.emitAudit(eventRolesGranted, scope, account, caller, roles, nil)
	return true, nil
}

// RevokeRoles revokes roles from account at scope on behalf of caller.
// Authorization mirrors GrantRoles: admins can revoke what they can grant.
// Returns false without mutation or callback when account holds none of
// the requested bits.
func (e *Engine) RevokeRoles(ctx context.Context, caller Account, scope Scope, roles rolebitmap.Bitmap, account Account) (bool, error) {
	if err := e.ready(); err != nil {
		return false, err
	}
	if err := roles.Validate(); err != nil {
		return false, ErrInvalidRoleBitmap
	}
	if scope.IsRoot() {
		return false, ErrRootResourceNotAllowed
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ok, err := e.authorized(ctx, scope, roles, caller)
	if err != nil {
		return false, err
	}
	if !ok {
		e.metricInc(MetricRevokeDenied)
		e.emitAudit(eventRolesRevoked, scope, account, caller, roles, revokeDenied(scope, roles, caller))
		return false, revokeDenied(scope, roles, caller)
	}

	changed, err := e.applyRevoke(ctx, scope, roles, account)
	switch {
	case err != nil:
		e.metricInc(MetricRevokeFailed)
		e.emitAudit(eventRolesRevoked, scope, account, caller, roles, err)
		return false, err
	case !changed:
		e.metricInc(MetricRevokeNoop)
		return false, nil
	}

	e.metricInc(MetricRevokeSuccess)
	e.emitAudit(eventRolesRevoked, scope, account, caller, roles, nil)
	return true, nil
}

// RevokeAllRoles revokes account's entire direct bitmap at scope in a
// single counter update. The caller must hold authority over every bit the
// account currently holds. Returns false when the account holds nothing.
func (e *Engine) RevokeAllRoles(ctx context.Context, caller Account, scope Scope, account Account) (bool, error) {
	if err := e.ready(); err != nil {
		return false, err
	}
	if scope.IsRoot() {
		return false, ErrRootResourceNotAllowed
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	held, err := e.directRoles(ctx, scope, account)
	if err != nil {
		return false, err
	}
	if held.IsZero() {
		e.metricInc(MetricRevokeNoop)
		return false, nil
	}

	ok, err := e.authorized(ctx, scope, held, caller)
	if err != nil {
		return false, err
	}
	if !ok {
		e.metricInc(MetricRevokeDenied)
		e.emitAudit(eventRolesRevoked, scope, account, caller, held, revokeDenied(scope, held, caller))
		return false, revokeDenied(scope, held, caller)
	}

	changed, err := e.applyRevoke(ctx, scope, held, account)
	if err != nil {
		e.metricInc(MetricRevokeFailed)
		e.emitAudit(eventRolesRevoked, scope, account, caller, held, err)
		return false, err
	}

	e.metricInc(MetricRevokeSuccess)
	e.emitAudit(eventRolesRevoked, scope, account, caller, held, nil)
	return changed, nil
}

// applyGrant commits a grant at any scope, Root included. Callers hold the
// engine mutex and have already authorized the request. The sequence is
// assignment write, counter write, observer callback; a failure at any
// point restores the prior state before returning.
func (e *Engine) applyGrant(ctx context.Context, scope Scope, requested rolebitmap.Bitmap, account Account) (bool, error) {
	current, err := e.directRoles(ctx, scope, account)
	if err != nil {
		return false, err
	}
	newly := requested.AndNot(current)
	if newly.IsZero() {
		return false, nil
	}

	counters, err := e.store.Counters(ctx, scope)
	if err != nil {
		return false, err
	}
	newCounters, saturated := rolebitmap.IncrementCounters(counters, newly)
	if !saturated.IsZero() {
		return false, &MaxAssigneesError{Scope: scope, RoleMask: saturated}
	}

	newRoles := current.Or(requested)
	if err := e.store.SetRoles(ctx, scope, accountUUID(account), newRoles); err != nil {
		return false, err
	}
	if err := e.store.SetCounters(ctx, scope, newCounters); err != nil {
		_ = e.store.SetRoles(ctx, scope, accountUUID(account), current)
		return false, err
	}

	if e.observer != nil {
		if err := e.observer.RolesGranted(ctx, scope, account, current, newRoles, requested); err != nil {
			_ = e.store.SetRoles(ctx, scope, accountUUID(account), current)
			_ = e.store.SetCounters(ctx, scope, counters)
			e.metricInc(MetricObserverRejected)
			return false, err
		}
	}
	return true, nil
}

// applyRevoke commits a revoke at any scope, Root included, with the same
// locking, ordering, and rollback contract as applyGrant.
func (e *Engine) applyRevoke(ctx context.Context, scope Scope, requested rolebitmap.Bitmap, account Account) (bool, error) {
	current, err := e.directRoles(ctx, scope, account)
	if err != nil {
		return false, err
	}
	newly := requested.And(current)
	if newly.IsZero() {
		return false, nil
	}

	counters, err := e.store.Counters(ctx, scope)
	if err != nil {
		return false, err
	}
	newCounters := rolebitmap.DecrementCounters(counters, newly)

	newRoles := current.AndNot(requested)
	if err := e.store.SetRoles(ctx, scope, accountUUID(account), newRoles); err != nil {
		return false, err
	}
	if err := e.store.SetCounters(ctx, scope, newCounters); err != nil {
		_ = e.store.SetRoles(ctx, scope, accountUUID(account), current)
		return false, err
	}

	if e.observer != nil {
		if err := e.observer.RolesRevoked(ctx, scope, account, current, newRoles, requested); err != nil {
			_ = e.store.SetRoles(ctx, scope, accountUUID(account), current)
			_ = e.store.SetCounters(ctx, scope, counters)
			e.metricInc(MetricObserverRejected)
			return false, err
		}
	}
	return true, nil
}
