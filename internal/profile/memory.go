package profile

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/onboarding/internal/common"
)

// MemoryStore is a process-local Store used by the server's "memory" backend
// and by tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Fields
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Fields)}
}

func (s *MemoryStore) Write(ctx context.Context, uid string, fields Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[uid] = fields.Clone()
	return nil
}

// UpdateField creates the record when it does not exist yet, like a partial
// update against a document store would.
func (s *MemoryStore) UpdateField(ctx context.Context, uid string, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[uid]
	if !ok {
		rec = make(Fields)
		s.records[uid] = rec
	}
	rec[key] = value
	return nil
}

func (s *MemoryStore) Read(ctx context.Context, uid string) (Fields, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[uid]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return rec.Clone(), nil
}
