package backup

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/coursekit/wikifilter/pkg/association"
	"github.com/coursekit/wikifilter/pkg/instance"
)

// Service exports filter instances to archive storage and restores them
// into a target course and wiki. It serves duplication and migration, not
// the runtime view path.
type Service struct {
	instances    instance.Store
	associations association.Store
	storage      Storage
}

// NewService wires the stores and the archive storage.
func NewService(instances instance.Store, associations association.Store, storage Storage) *Service {
	return &Service{
		instances:    instances,
		associations: associations,
		storage:      storage,
	}
}

// Export snapshots the instance and its associations and stores the XML
// document under a fresh UUID-based key, which it returns.
func (s *Service) Export(ctx context.Context, filterID int64) (string, error) {
	inst, err := s.instances.Get(ctx, filterID)
	if err != nil {
		return "", fmt.Errorf("load instance %d: %w", filterID, err)
	}
	rows, err := s.associations.List(ctx, filterID)
	if err != nil {
		return "", fmt.Errorf("load associations of %d: %w", filterID, err)
	}

	data, err := NewArchive(inst, rows).Marshal()
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("wikifilter-%d-%s.xml", filterID, uuid.NewString())
	if err := s.storage.Put(ctx, key, data); err != nil {
		return "", err
	}
	return key, nil
}

// Import creates a new instance in the target course and wiki from a stored
// archive. Instance and association ids are reassigned by the stores and the
// archived wiki id is replaced by the target's, matching the host's restore
// remapping. The new instance is returned.
func (s *Service) Import(ctx context.Context, key string, courseID, wikiID int64) (instance.Instance, error) {
	data, err := s.storage.Get(ctx, key)
	if err != nil {
		return instance.Instance{}, err
	}
	archive, err := Unmarshal(data)
	if err != nil {
		return instance.Instance{}, err
	}

	inst := archive.Instance()
	inst.ID = 0
	inst.CourseID = courseID
	inst.WikiID = wikiID
	if err := s.instances.Create(ctx, &inst); err != nil {
		return instance.Instance{}, fmt.Errorf("restore instance from %s: %w", key, err)
	}

	if pairs := archive.Pairs(); len(pairs) > 0 {
		if err := s.associations.Replace(ctx, inst.ID, wikiID, pairs); err != nil {
			return instance.Instance{}, fmt.Errorf("restore associations from %s: %w", key, err)
		}
	}
	return inst, nil
}
