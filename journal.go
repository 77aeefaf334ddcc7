package tracked

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cast"
)

// JournalEntry is one committed change as recorded by the journal.
type JournalEntry struct {
	Seq         uint64
	At          time.Time
	Op          Op
	Kind        Kind
	Key         string
	Subscribers int
}

// Journal keeps a bounded in-memory history of committed changes for
// debugging and auditing. When the limit is reached the oldest entries are
// evicted. Enabled per realm with WithJournal.
type Journal struct {
	mu      sync.Mutex
	entries []JournalEntry
	limit   int
	seq     *atomic.Uint64
}

func newJournal(limit int, seq *atomic.Uint64) *Journal {
	if limit <= 0 {
		limit = 1000
	}
	return &Journal{
		entries: make([]JournalEntry, 0, limit),
		limit:   limit,
		seq:     seq,
	}
}

func (j *Journal) record(change Change, subscribers int) {
	entry := JournalEntry{
		Seq:         j.seq.Add(1),
		At:          time.Now(),
		Op:          change.Op,
		Key:         keyLabel(change.Key),
		Subscribers: subscribers,
	}
	if change.Target != nil {
		entry.Kind = change.Target.Kind()
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry)
	if over := len(j.entries) - j.limit; over > 0 {
		j.entries = append(j.entries[:0], j.entries[over:]...)
	}
}

// Entries returns a snapshot of the journal, oldest first.
func (j *Journal) Entries() []JournalEntry {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]JournalEntry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Len returns the number of retained entries.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}

// Filter returns the retained entries matching predicate, oldest first.
func (j *Journal) Filter(predicate func(JournalEntry) bool) []JournalEntry {
	j.mu.Lock()
	snapshot := make([]JournalEntry, len(j.entries))
	copy(snapshot, j.entries)
	j.mu.Unlock()

	var out []JournalEntry
	for _, e := range snapshot {
		if predicate(e) {
			out = append(out, e)
		}
	}
	return out
}

// Walk visits retained entries oldest first until visitor returns false.
func (j *Journal) Walk(visitor func(JournalEntry) bool) {
	for _, e := range j.Entries() {
		if !visitor(e) {
			return
		}
	}
}

// keyLabel renders a change key for journal entries and log output.
func keyLabel(key any) string {
	switch k := key.(type) {
	case nil:
		return ""
	case iterateKey:
		return "<iterate>"
	case Composite:
		return string(k.Kind())
	}
	if s, err := cast.ToStringE(key); err == nil {
		return s
	}
	return typeName(key)
}
