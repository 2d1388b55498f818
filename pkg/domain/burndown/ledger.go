package burndown

import "time"

// ProgressEntry is a single dated progress update. Entries are never mutated
// after being appended.
type ProgressEntry struct {
	Date            time.Time
	CompletedPoints float64
	Description     string
}

// Ledger is the append-only, call-ordered log of progress updates. It is the
// source of truth for current completed points: the value of the most
// recently appended entry, regardless of the dates supplied. Entries are
// intentionally not re-sorted by date.
type Ledger struct {
	entries []ProgressEntry
}

// Append records an entry in strict call order.
func (l *Ledger) Append(e ProgressEntry) {
	l.entries = append(l.entries, e)
}

// Latest returns the most recently appended entry, if any.
func (l *Ledger) Latest() (ProgressEntry, bool) {
	if len(l.entries) == 0 {
		return ProgressEntry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Len returns the number of recorded entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the log in append order.
func (l *Ledger) Entries() []ProgressEntry {
	out := make([]ProgressEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
