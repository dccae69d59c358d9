package association

import (
	"context"
	"sync"
)

// MemoryStore is a thread-safe in-memory Store used in tests and as a
// reference implementation of the replace semantics.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64][]Association // keyed by filter instance id
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[int64][]Association)}
}

func (s *MemoryStore) Replace(ctx context.Context, filterID, wikiID int64, pairs []Pair) error {
	rows := make([]Association, 0, len(pairs))
	for _, p := range pairs {
		a, err := New(p.RoleID, p.TagID, wikiID, filterID)
		if err != nil {
			return err
		}
		rows = append(rows, a)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range rows {
		s.nextID++
		rows[i].ID = s.nextID
	}
	s.rows[filterID] = rows
	return nil
}

func (s *MemoryStore) DeleteAll(ctx context.Context, filterID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, filterID)
	return nil
}

func (s *MemoryStore) GroupedByRole(ctx context.Context, filterID int64) (RoleTagSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := make(RoleTagSet)
	for _, a := range s.rows[filterID] {
		set[a.RoleID] = append(set[a.RoleID], a.TagID)
	}
	return set, nil
}

func (s *MemoryStore) List(ctx context.Context, filterID int64) ([]Association, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Association, len(s.rows[filterID]))
	copy(out, s.rows[filterID])
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
