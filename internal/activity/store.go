package activity

import (
	"context"
	"errors"
	"sync"
)

// ErrRecordNotFound is returned when removing a record that is not in the ledger.
var ErrRecordNotFound = errors.New("activity record not found")

// Record is one logged activity.
type Record struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DurationText string `json:"duration"`
}

// Store holds the ordered records behind a Ledger. List returns newest first.
type Store interface {
	Prepend(ctx context.Context, r Record) error
	Remove(ctx context.Context, id string) (Record, error)
	List(ctx context.Context) ([]Record, error)
}

// MemoryStore is a slice-backed Store.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Prepend(_ context.Context, r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]Record{r}, s.records...)
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i:i], s.records[i+1:]...)
			return r, nil
		}
	}
	return Record{}, ErrRecordNotFound
}

func (s *MemoryStore) List(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out, nil
}
