package goACL

import (
	"context"

	"github.com/MrEthical07/goACL/rolebitmap"
)

// TransferRoles atomically moves src's entire direct bitmap at scope to
// dst: src is cleared (firing the revoke callback with the full bitmap),
// the bitmap is ORed into dst (firing the grant callback with only the bits
// dst newly gained), and the counter register absorbs the net delta: bits
// dst already held shed src's contribution, bits newly gained keep their
// census unchanged. Ownership moves; it is never duplicated.
func (e *Engine) TransferRoles(ctx context.Context, scope Scope, src, dst Account) error {
	return e.transferRoles(ctx, scope, src, dst, true)
}

// TransferRolesQuiet is TransferRoles without observer callbacks or audit,
// for bulk migrations that must not re-trigger consumer logic.
func (e *Engine) TransferRolesQuiet(ctx context.Context, scope Scope, src, dst Account) error {
	return e.transferRoles(ctx, scope, src, dst, false)
}

func (e *Engine) transferRoles(ctx context.Context, scope Scope, src, dst Account, notify bool) error {
	if err := e.ready(); err != nil {
		return err
	}
	if scope.IsRoot() {
		return ErrRootResourceNotAllowed
	}
	if dst.IsZero() {
		return ErrInvalidAccount
	}
	if src == dst {
		// src and dst share one assignment key; nothing can move.
		e.metricInc(MetricTransferNoop)
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	srcRoles, err := e.directRoles(ctx, scope, src)
	if err != nil {
		return err
	}
	if srcRoles.IsZero() {
		e.metricInc(MetricTransferNoop)
		return nil
	}

	dstOld, err := e.directRoles(ctx, scope, dst)
	if err != nil {
		return err
	}
	gained := srcRoles.AndNot(dstOld)

	counters, err := e.store.Counters(ctx, scope)
	if err != nil {
		return err
	}
	newCounters := rolebitmap.DecrementCounters(counters, srcRoles)
	newCounters, saturated := rolebitmap.IncrementCounters(newCounters, gained)
	if !saturated.IsZero() {
		// Unreachable: every gained slot was decremented by src's own
		// contribution one line above.
		return &MaxAssigneesError{Scope: scope, RoleMask: saturated}
	}

	dstNew := dstOld.Or(srcRoles)

	rollback := func() {
		_ = e.store.SetRoles(ctx, scope, accountUUID(src), srcRoles)
		_ = e.store.SetRoles(ctx, scope, accountUUID(dst), dstOld)
		_ = e.store.SetCounters(ctx, scope, counters)
	}

	if err := e.store.SetRoles(ctx, scope, accountUUID(src), rolebitmap.Bitmap{}); err != nil {
		return err
	}
	if err := e.store.SetRoles(ctx, scope, accountUUID(dst), dstNew); err != nil {
		rollback()
		return err
	}
	if err := e.store.SetCounters(ctx, scope, newCounters); err != nil {
		rollback()
		return err
	}

	if notify && e.observer != nil {
		if err := e.observer.RolesRevoked(ctx, scope, src, srcRoles, rolebitmap.Bitmap{}, srcRoles); err != nil {
			rollback()
			e.metricInc(MetricObserverRejected)
			return err
		}
		if !gained.IsZero() {
			if err := e.observer.RolesGranted(ctx, scope, dst, dstOld, dstNew, gained); err != nil {
				rollback()
				e.metricInc(MetricObserverRejected)
				return err
			}
		}
	}

	e.metricInc(MetricTransferSuccess)
	if notify {
		e.emitAudit(eventRolesTransferred, scope, dst, src, srcRoles, nil)
	}
	return nil
}
