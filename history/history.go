// Package history persists the append-only, size-capped interaction log.
//
// The store owns InteractionRecord exclusively: records are appended at the
// end of a completed chat turn and never mutated. When the cap is exceeded
// the oldest records are dropped. Readers get a chronological snapshot, so
// retrieval observes either the pre- or post-append state but never a
// partially written record.
package history

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DevSars24/ai-mentor/memory"
)

// DefaultMaxRecords caps the store length.
const DefaultMaxRecords = 1000

// Store is the full history contract: the read side consumed by retrieval
// plus the append side used by the completing chat turn.
type Store interface {
	memory.HistoryStore

	// Append adds one record, evicting the oldest when over the cap.
	Append(ctx context.Context, rec memory.InteractionRecord) error
}

// MemStore is an in-memory Store, used in tests and single-process runs
// without durability requirements.
type MemStore struct {
	mu      sync.RWMutex
	max     int
	records []memory.InteractionRecord
}

// NewMemStore creates an in-memory store. max <= 0 uses DefaultMaxRecords.
func NewMemStore(max int) *MemStore {
	if max <= 0 {
		max = DefaultMaxRecords
	}
	return &MemStore{max: max}
}

// Load returns a chronological snapshot.
func (s *MemStore) Load(ctx context.Context) ([]memory.InteractionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]memory.InteractionRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Append adds a record, enforcing the FIFO cap.
func (s *MemStore) Append(ctx context.Context, rec memory.InteractionRecord) error {
	fillDefaults(&rec)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	if len(s.records) > s.max {
		s.records = s.records[len(s.records)-s.max:]
	}
	return nil
}

// Len returns the current record count.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func fillDefaults(rec *memory.InteractionRecord) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
}
