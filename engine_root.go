package goACL

import (
	"context"

	"github.com/MrEthical07/goACL/rolebitmap"
)

// Root-scope entry points. These are the only legal mutators of the Root
// scope. Root assignments are inherited by every other scope on read, but
// they maintain only the Root scope's own counter register and never touch
// another scope's counters.

// HasRootRoles reports whether account holds every bit of roles at Root.
func (e *Engine) HasRootRoles(ctx context.Context, roles rolebitmap.Bitmap, account Account) (bool, error) {
	return e.HasRoles(ctx, RootScope, roles, account)
}

// GrantRootRoles grants roles to account at the Root scope on behalf of
// caller. The caller must hold the admin mirror of every requested bit at
// Root.
func (e *Engine) GrantRootRoles(ctx context.Context, caller Account, roles rolebitmap.Bitmap, account Account) (bool, error) {
	if err := e.ready(); err != nil {
		return false, err
	}
	if err := roles.Validate(); err != nil {
		return false, ErrInvalidRoleBitmap
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ok, err := e.authorized(ctx, RootScope, roles, caller)
	if err != nil {
		return false, err
	}
	if !ok {
		e.metricInc(MetricGrantDenied)
		e.emitAudit(eventRootRolesGranted, RootScope, account, caller, roles, grantDenied(RootScope, roles, caller))
		return false, grantDenied(RootScope, roles, caller)
	}
	if account.IsZero() {
		return false, ErrInvalidAccount
	}

	changed, err := e.applyGrant(ctx, RootScope, roles, account)
	switch {
	case err != nil:
		e.metricInc(MetricGrantFailed)
		e.emitAudit(eventRootRolesGranted, RootScope, account, caller, roles, err)
		return false, err
	case !changed:
		e.metricInc(MetricGrantNoop)
		return false, nil
	}

	e.metricInc(MetricGrantSuccess)
	e.emitAudit(eventRootRolesGranted, RootScope, account, caller, roles, nil)
	return true, nil
}

// RevokeRootRoles revokes roles from account at the Root scope on behalf
// of caller, under the same authorization rule as GrantRootRoles.
func (e *Engine) RevokeRootRoles(ctx context.Context, caller Account, roles rolebitmap.Bitmap, account Account) (bool, error) {
	if err := e.ready(); err != nil {
		return false, err
	}
	if err := roles.Validate(); err != nil {
		return false, ErrInvalidRoleBitmap
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ok, err := e.authorized(ctx, RootScope, roles, caller)
	if err != nil {
		return false, err
	}
	if !ok {
		e.metricInc(MetricRevokeDenied)
		e.emitAudit(eventRootRolesRevoked, RootScope, account, caller, roles, revokeDenied(RootScope, roles, caller))
		return false, revokeDenied(RootScope, roles, caller)
	}

	changed, err := e.applyRevoke(ctx, RootScope, roles, account)
	switch {
	case err != nil:
		e.metricInc(MetricRevokeFailed)
		e.emitAudit(eventRootRolesRevoked, RootScope, account, caller, roles, err)
		return false, err
	case !changed:
		e.metricInc(MetricRevokeNoop)
		return false, nil
	}

	e.metricInc(MetricRevokeSuccess)
	e.emitAudit(eventRootRolesRevoked, RootScope, account, caller, roles, nil)
	return true, nil
}

// Bootstrap seeds an initial Root assignment with no authorization check.
// It is intended for first-run initialization of an empty store, before any
// admin exists to authorize grants; it refuses to run once the Root scope
// has any assignee.
func (e *Engine) Bootstrap(ctx context.Context, roles rolebitmap.Bitmap, account Account) error {
	if err := e.ready(); err != nil {
		return err
	}
	if err := roles.Validate(); err != nil {
		return ErrInvalidRoleBitmap
	}
	if account.IsZero() {
		return ErrInvalidAccount
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	counters, err := e.store.Counters(ctx, RootScope)
	if err != nil {
		return err
	}
	if !counters.IsZero() {
		return grantDenied(RootScope, roles, account)
	}

	if _, err := e.applyGrant(ctx, RootScope, roles, account); err != nil {
		return err
	}
	e.emitAudit(eventRootRolesGranted, RootScope, account, account, roles, nil)
	return nil
}
