package catalog

import (
	"sync/atomic"
	"time"
)

// Snapshot is one published pipeline result.
type Snapshot struct {
	Generation uint64
	Criteria   Criteria
	Phones     []PhoneAggregate
	BuiltAt    time.Time
}

// Board holds the latest catalog snapshot for readers. Each rebuild takes a
// generation from Begin; Publish drops results from a batch that a newer
// Begin has superseded, so the board never goes back to older data.
type Board struct {
	issued  atomic.Uint64
	current atomic.Pointer[Snapshot]
}

// Begin starts a new batch and returns its generation.
func (b *Board) Begin() uint64 {
	return b.issued.Add(1)
}

// Publish installs s unless a newer batch has begun or already published.
// It reports whether s was installed.
func (b *Board) Publish(s *Snapshot) bool {
	if s.Generation < b.issued.Load() {
		return false
	}
	for {
		cur := b.current.Load()
		if cur != nil && cur.Generation >= s.Generation {
			return false
		}
		if b.current.CompareAndSwap(cur, s) {
			return true
		}
	}
}

// Current returns the latest snapshot, or nil before the first publish.
func (b *Board) Current() *Snapshot {
	return b.current.Load()
}
