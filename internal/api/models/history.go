package models

import "time"

// HistoryEntryResponse is one persisted resolution attempt.
type HistoryEntryResponse struct {
	ID         int64     `json:"id"`
	Domain     string    `json:"domain"`
	Addresses  []string  `json:"addresses"`
	Hops       int       `json:"hops"`
	Outcome    string    `json:"outcome"`
	DurationMs int64     `json:"duration_ms"`
	ResolvedAt time.Time `json:"resolved_at"`
}

// HistoryResponse lists recent resolutions, newest first.
type HistoryResponse struct {
	Total   int64                  `json:"total"`
	Entries []HistoryEntryResponse `json:"entries"`
}
