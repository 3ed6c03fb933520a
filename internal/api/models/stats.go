package models

import "time"

// ServerStatsResponse contains daemon runtime statistics.
type ServerStatsResponse struct {
	Uptime        string                `json:"uptime"`
	UptimeSeconds int64                 `json:"uptime_seconds"`
	StartTime     time.Time             `json:"start_time"`
	GoRoutines    int                   `json:"goroutines"`
	NumCPU        int                   `json:"num_cpu"`
	Process       *ProcessStatsResponse `json:"process,omitempty"`
	Host          *HostStatsResponse    `json:"host,omitempty"`
	Resolver      ResolverStatsResponse `json:"resolver"`
}

// HostStatsResponse contains host-level statistics.
type HostStatsResponse struct {
	MemoryTotalBytes  uint64  `json:"memory_total_bytes"`
	MemoryUsedPercent float64 `json:"memory_used_percent"`
}

// ProcessStatsResponse contains OS-level process statistics.
type ProcessStatsResponse struct {
	RSSBytes   uint64  `json:"rss_bytes"`
	CPUPercent float64 `json:"cpu_percent"`
}

// ResolverStatsResponse contains resolution statistics.
type ResolverStatsResponse struct {
	QueriesSent  uint64  `json:"queries_sent"`
	Resolutions  uint64  `json:"resolutions"`
	Failures     uint64  `json:"failures"`
	Referrals    uint64  `json:"referrals"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
}
