package models

// HopResponse describes one query/response cycle of a traced resolution.
type HopResponse struct {
	Nameserver  string `json:"nameserver"`
	Domain      string `json:"domain"`
	Branch      string `json:"branch"`
	Answers     int    `json:"answers"`
	Authorities int    `json:"authorities"`
	Additionals int    `json:"additionals"`
}

// ResolveResponse is the result of an on-demand resolution.
type ResolveResponse struct {
	Domain     string        `json:"domain"`
	Addresses  []string      `json:"addresses"`
	Hops       []HopResponse `json:"hops"`
	DurationMs int64         `json:"duration_ms"`
}
