package model

// MatchRecord is one recorded outcome. Records are immutable once logged.
type MatchRecord struct {
	ID     string `json:"id,omitempty"` // assigned on record; empty for legacy rows
	Winner string `json:"winner"`
	Loser  string `json:"loser"`
	Time   string `json:"time"` // caller-supplied, ISO-8601 parseable
}
