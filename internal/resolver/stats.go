package resolver

import (
	"sync/atomic"
	"time"
)

// Stats collects resolution counters.
// All methods are safe for concurrent use.
type Stats struct {
	queriesSent    atomic.Uint64
	resolutions    atomic.Uint64
	failures       atomic.Uint64
	referrals      atomic.Uint64
	latencyTotalNs atomic.Uint64
}

// NewStats creates a new statistics collector.
func NewStats() *Stats {
	return &Stats{}
}

// RecordQuery counts one query datagram sent to a nameserver.
func (s *Stats) RecordQuery() {
	s.queriesSent.Add(1)
}

// RecordReferral counts one referral followed (glue or glueless delegation).
func (s *Stats) RecordReferral() {
	s.referrals.Add(1)
}

// RecordResolution counts one completed top-level resolution and its
// end-to-end latency.
func (s *Stats) RecordResolution(ok bool, d time.Duration) {
	s.resolutions.Add(1)
	if !ok {
		s.failures.Add(1)
	}
	if d > 0 {
		s.latencyTotalNs.Add(uint64(d.Nanoseconds()))
	}
}

// StatsSnapshot is a point-in-time snapshot of resolver statistics.
type StatsSnapshot struct {
	QueriesSent  uint64  `json:"queries_sent"`
	Resolutions  uint64  `json:"resolutions"`
	Failures     uint64  `json:"failures"`
	Referrals    uint64  `json:"referrals"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
}

// Snapshot returns the current statistics.
func (s *Stats) Snapshot() StatsSnapshot {
	resolutions := s.resolutions.Load()
	latencyNs := s.latencyTotalNs.Load()

	avgLatencyMs := 0.0
	if resolutions > 0 {
		avgLatencyMs = float64(latencyNs) / float64(resolutions) / 1e6
	}

	return StatsSnapshot{
		QueriesSent:  s.queriesSent.Load(),
		Resolutions:  resolutions,
		Failures:     s.failures.Load(),
		Referrals:    s.referrals.Load(),
		AvgLatencyMs: avgLatencyMs,
	}
}
