package goACL

import (
	"context"

	"github.com/MrEthical07/goACL/rolebitmap"
)

// SeedRoles grants initial roles at a fresh scope with no caller
// authorization. Registration workflows use it the moment a record is
// created, before any admin exists at the new scope. It refuses to run
// once the scope has any assignee, so it can never bypass authorization on
// a live scope. Root seeding goes through [Engine.Bootstrap].
func (e *Engine) SeedRoles(ctx context.Context, scope Scope, roles rolebitmap.Bitmap, account Account) error {
	if err := e.ready(); err != nil {
		return err
	}
	if err := roles.Validate(); err != nil {
		return ErrInvalidRoleBitmap
	}
	if scope.IsRoot() {
		return ErrRootResourceNotAllowed
	}
	if account.IsZero() {
		return ErrInvalidAccount
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	counters, err := e.store.Counters(ctx, scope)
	if err != nil {
		return err
	}
	if !counters.IsZero() {
		return grantDenied(scope, roles, account)
	}

	if _, err := e.applyGrant(ctx, scope, roles, account); err != nil {
		e.metricInc(MetricGrantFailed)
		return err
	}

	e.metricInc(MetricGrantSuccess)
	e.emitAudit(eventRolesSeeded, scope, account, account, roles, nil)
	return nil
}

// RelinquishRoles removes roles the account itself holds at scope. No
// admin authority is required; an account may always shed its own roles.
// Returns false without mutation or callback when none of the requested
// bits are held. An observer failure rolls the relinquish back fully.
func (e *Engine) RelinquishRoles(ctx context.Context, scope Scope, roles rolebitmap.Bitmap, account Account) (bool, error) {
	if err := e.ready(); err != nil {
		return false, err
	}
	if err := roles.Validate(); err != nil {
		return false, ErrInvalidRoleBitmap
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	changed, err := e.applyRevoke(ctx, scope, roles, account)
	switch {
	case err != nil:
		e.metricInc(MetricRevokeFailed)
		e.emitAudit(eventRolesRelinquished, scope, account, account, roles, err)
		return false, err
	case !changed:
		e.metricInc(MetricRevokeNoop)
		return false, nil
	}

	e.metricInc(MetricRevokeSuccess)
	e.emitAudit(eventRolesRelinquished, scope, account, account, roles, nil)
	return true, nil
}
