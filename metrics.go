package goIdentity

import "sync/atomic"

// MetricID identifies one counter in the in-process metrics system.
type MetricID int

const (
	// MetricRegisterSuccess counts completed registrations.
	MetricRegisterSuccess MetricID = iota
	// MetricRegisterDuplicate counts registrations rejected as conflicts.
	MetricRegisterDuplicate
	// MetricLoginSuccess counts successful password and external logins.
	MetricLoginSuccess
	// MetricLoginFailure counts rejected credentials.
	MetricLoginFailure
	// MetricRefreshSuccess counts completed rotations.
	MetricRefreshSuccess
	// MetricRefreshReplay counts refresh attempts against missing sessions,
	// including replays of already-rotated tokens.
	MetricRefreshReplay
	// MetricRefreshFailure counts rotations that failed mid-flight and
	// rolled back.
	MetricRefreshFailure
	// MetricVerificationSuccess counts consumed confirmation tokens.
	MetricVerificationSuccess
	// MetricVerificationFailure counts invalid or reused confirmation tokens.
	MetricVerificationFailure
	// MetricSessionCreated counts persisted sessions.
	MetricSessionCreated
	// MetricSessionInvalidated counts deleted sessions (rotation + logout).
	MetricSessionInvalidated
	// MetricMailSendFailure counts swallowed mail-dispatch errors.
	MetricMailSendFailure

	metricIDCount
)

// Metrics holds atomic counters. A nil *Metrics is valid and counts nothing.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]atomic.Uint64
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// NewMetrics creates a Metrics instance. When cfg.Enabled is false, all
// operations are no-ops.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Inc increments one counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id < 0 || id >= metricIDCount {
		return
	}
	m.counters[id].Add(1)
}

// Snapshot deep-copies all counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{Counters: make(map[MetricID]uint64, metricIDCount)}
	if m == nil || !m.enabled {
		return snap
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		snap.Counters[id] = m.counters[id].Load()
	}
	return snap
}
