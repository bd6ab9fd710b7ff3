package goACL

import "sync/atomic"

// MetricID identifies one engine operation counter.
type MetricID uint16

const (
	// MetricGrantSuccess counts grants that changed state.
	MetricGrantSuccess MetricID = iota
	// MetricGrantNoop counts grants whose bits were already held.
	MetricGrantNoop
	// MetricGrantDenied counts grants refused for missing admin authority.
	MetricGrantDenied
	// MetricGrantFailed counts grants aborted by saturation, store, or
	// observer failure.
	MetricGrantFailed
	// MetricRevokeSuccess counts revokes that changed state.
	MetricRevokeSuccess
	// MetricRevokeNoop counts revokes whose bits were already absent.
	MetricRevokeNoop
	// MetricRevokeDenied counts revokes refused for missing admin authority.
	MetricRevokeDenied
	// MetricRevokeFailed counts revokes aborted by store or observer failure.
	MetricRevokeFailed
	// MetricTransferSuccess counts transfers that moved at least one bit.
	MetricTransferSuccess
	// MetricTransferNoop counts transfers from an empty source.
	MetricTransferNoop
	// MetricObserverRejected counts operations rolled back by an observer.
	MetricObserverRejected
	// MetricLockQuery counts permanent-lock checks.
	MetricLockQuery

	metricCount
)

// Metrics is a fixed set of in-process atomic counters. It allocates once
// and never locks.
type Metrics struct {
	counters [metricCount]atomic.Uint64
}

func newMetrics() *Metrics {
	return &Metrics{}
}

// Inc increments one counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || id >= metricCount {
		return
	}
	m.counters[id].Add(1)
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// Snapshot copies every nonzero counter.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{Counters: make(map[MetricID]uint64, metricCount)}
	if m == nil {
		return snap
	}
	for id := MetricID(0); id < metricCount; id++ {
		if v := m.counters[id].Load(); v != 0 {
			snap.Counters[id] = v
		}
	}
	return snap
}
