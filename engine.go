package goACL

import (
	"context"
	"sync"

	"github.com/MrEthical07/goACL/rolebitmap"
	"github.com/MrEthical07/goACL/state"
)

// Engine is the access-control core. Construct it through [Builder.Build].
//
// Every operation executes serialized under one mutex and is all-or-nothing:
// the assignment write, the counter write, and the observer callback commit
// together or the engine restores the prior state before returning. Audit
// events are emitted only after commit. Reads take the same mutex so no
// caller can observe a half-applied operation.
type Engine struct {
	config   Config
	store    state.Store
	registry *rolebitmap.Registry
	observer RoleChangeObserver
	audit    *auditDispatcher
	metrics  *Metrics

	mu sync.Mutex
}

// Close flushes and stops the audit dispatcher. The engine must not be
// used afterwards.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// Registry exposes the frozen role-name registry assembled by the builder.
func (e *Engine) Registry() *rolebitmap.Registry {
	if e == nil {
		return nil
	}
	return e.registry
}

// AuditDropped reports how many audit events were discarded because the
// dispatcher buffer was full.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a copy of the operation counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// ready guards every entry point against a nil or hand-rolled engine.
func (e *Engine) ready() error {
	if e == nil || e.store == nil {
		return ErrEngineNotReady
	}
	return nil
}

// directRoles reads the bitmap account holds at scope with no inheritance.
func (e *Engine) directRoles(ctx context.Context, scope Scope, account Account) (rolebitmap.Bitmap, error) {
	return e.store.Roles(ctx, scope, accountUUID(account))
}

// effectiveRoles is directRoles ORed with the account's Root assignment.
// Root assignments are read-through inherited at every scope, including
// Root itself.
func (e *Engine) effectiveRoles(ctx context.Context, scope Scope, account Account) (rolebitmap.Bitmap, error) {
	direct, err := e.directRoles(ctx, scope, account)
	if err != nil {
		return rolebitmap.Bitmap{}, err
	}
	if scope.IsRoot() {
		return direct, nil
	}
	root, err := e.directRoles(ctx, RootScope, account)
	if err != nil {
		return rolebitmap.Bitmap{}, err
	}
	return direct.Or(root), nil
}

// authorized reports whether caller holds the full authority set for the
// requested bitmap at scope: the admin mirror of every direct-role bit plus
// every admin bit requested, directly or via Root. Admin bits govern
// themselves, so holding admin(R) suffices to manage both R and admin(R).
func (e *Engine) authorized(ctx context.Context, scope Scope, requested rolebitmap.Bitmap, caller Account) (bool, error) {
	required := requested.AdminClosure()
	held, err := e.effectiveRoles(ctx, scope, caller)
	if err != nil {
		return false, err
	}
	return held.Contains(required), nil
}
