// Package matchlog keeps a bounded, newest-first history of match results.
package matchlog

import "github.com/okian/ladder/internal/domain/model"

// DefaultCapacity is the number of records kept when no option overrides it.
const DefaultCapacity = 5

// Log is an ordered history, index 0 is the newest record. Inserting past
// capacity evicts the oldest (tail) record. Not safe for concurrent use.
type Log struct {
	entries  []model.MatchRecord
	capacity int
}

// New creates an empty log.
func New(opts ...Option) *Log {
	l := &Log{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(l)
	}
	l.entries = make([]model.MatchRecord, 0, l.capacity+1)
	return l
}

// Load creates a log from persisted records, already newest first.
// Records beyond capacity are dropped from the tail.
func Load(records []model.MatchRecord, opts ...Option) *Log {
	l := New(opts...)
	n := len(records)
	if n > l.capacity {
		n = l.capacity
	}
	l.entries = append(l.entries, records[:n]...)
	return l
}

// Record prepends entry and evicts the tail past capacity.
// Returns the evicted record, if any.
func (l *Log) Record(entry model.MatchRecord) (evicted *model.MatchRecord) {
	l.entries = append(l.entries, model.MatchRecord{})
	copy(l.entries[1:], l.entries)
	l.entries[0] = entry
	if len(l.entries) > l.capacity {
		last := l.entries[len(l.entries)-1]
		l.entries = l.entries[:len(l.entries)-1]
		return &last
	}
	return nil
}

// ListNewestFirst returns a copy of the history, newest first.
func (l *Log) ListNewestFirst() []model.MatchRecord {
	out := make([]model.MatchRecord, len(l.entries))
	copy(out, l.entries)
	return out
}

// Clear drops every record.
func (l *Log) Clear() {
	l.entries = l.entries[:0]
}

// Len returns the number of records held.
func (l *Log) Len() int {
	return len(l.entries)
}

// Capacity returns the maximum number of records held.
func (l *Log) Capacity() int {
	return l.capacity
}
