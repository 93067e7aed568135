package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// InMemoryStore keeps evaluations in process memory. It favors clarity
// over performance and is the default when no database is configured.
type InMemoryStore struct {
	mu          sync.RWMutex
	evaluations map[uuid.UUID]*Evaluation
}

// NewInMemoryStore creates an empty in-memory evaluation store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{evaluations: make(map[uuid.UUID]*Evaluation)}
}

func (s *InMemoryStore) Save(_ context.Context, eval *Evaluation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *eval
	s.evaluations[eval.ID] = &copied
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if eval, ok := s.evaluations[id]; ok {
		copied := *eval
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID string) ([]*Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Evaluation
	for _, eval := range s.evaluations {
		if eval.UserID == userID {
			copied := *eval
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
