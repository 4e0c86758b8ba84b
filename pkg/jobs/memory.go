package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/lumafab/agpattern/pkg/errors"
)

// MemoryStore keeps records in process memory. Used by the CLI, tests,
// and API deployments that don't need durable job history.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// Create inserts a new record. Duplicate ids are rejected.
func (s *MemoryStore) Create(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.ID]; exists {
		return errors.New(errors.ErrCodeInvalidRequest, "job %q already exists", rec.ID)
	}
	s.records[rec.ID] = *rec
	return nil
}

// Get returns a copy of the record.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeJobNotFound, "job %q not found", id)
	}
	return &rec, nil
}

// Update replaces the record.
func (s *MemoryStore) Update(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.ID]; !ok {
		return errors.New(errors.ErrCodeJobNotFound, "job %q not found", rec.ID)
	}
	rec.UpdatedAt = time.Now().UTC()
	s.records[rec.ID] = *rec
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
