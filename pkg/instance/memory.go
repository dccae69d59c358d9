package instance

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStore is a thread-safe in-memory Store used in tests.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]Instance
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[int64]Instance)}
}

func (s *MemoryStore) Create(ctx context.Context, inst *Instance) error {
	if err := inst.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	inst.ID = s.nextID
	inst.TimeCreated = time.Now().UTC()
	inst.TimeModified = inst.TimeCreated
	s.items[inst.ID] = *inst
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, inst *Instance) error {
	if err := inst.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[inst.ID]; !ok {
		return ErrNotFound
	}
	inst.TimeModified = time.Now().UTC()
	s.items[inst.ID] = *inst
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id int64) (Instance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inst, ok := s.items[id]
	if !ok {
		return Instance{}, ErrNotFound
	}
	return inst, nil
}

func (s *MemoryStore) ListByCourse(ctx context.Context, courseID int64) ([]Instance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Instance
	for _, inst := range s.items {
		if inst.CourseID == courseID {
			out = append(out, inst)
		}
	}
	slices.SortFunc(out, func(a, b Instance) int {
		return b.TimeCreated.Compare(a.TimeCreated)
	})
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
