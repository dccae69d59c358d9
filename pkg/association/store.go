package association

import "context"

// Store persists role/tag associations scoped to a filter instance.
// All writes are scoped to one instance id; there are no cross-instance
// effects. Replace is atomic within one call but concurrent replaces of the
// same instance from two sessions are last-writer-wins; retry is the caller's
// responsibility.
type Store interface {
	// Replace deletes all existing associations for the instance and inserts
	// the new set. The batch is validated before any write.
	Replace(ctx context.Context, filterID, wikiID int64, pairs []Pair) error

	// DeleteAll removes all associations for the instance. Used when a
	// re-saved configuration has zero associations.
	DeleteAll(ctx context.Context, filterID int64) error

	// GroupedByRole returns the instance's role→tags mapping, rebuilt from
	// stored rows grouped by role.
	GroupedByRole(ctx context.Context, filterID int64) (RoleTagSet, error)

	// List returns the instance's association rows in insertion order.
	// Used by the backup exporter, not by the evaluation path.
	List(ctx context.Context, filterID int64) ([]Association, error)
}
