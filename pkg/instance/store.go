package instance

import "context"

// Store persists filter instances. Association rows live in their own store;
// the Postgres schema cascades association deletion when an instance goes
// away, the in-memory implementation leaves cascading to the caller.
type Store interface {
	// Create validates and inserts an instance, assigning its id and creation
	// timestamp.
	Create(ctx context.Context, inst *Instance) error

	// Update rewrites the mutable fields and stamps the modification time.
	Update(ctx context.Context, inst *Instance) error

	// Delete removes the instance. Deleting an unknown id returns ErrNotFound.
	Delete(ctx context.Context, id int64) error

	Get(ctx context.Context, id int64) (Instance, error)

	// ListByCourse returns all instances configured in a course, newest first.
	ListByCourse(ctx context.Context, courseID int64) ([]Instance, error)
}
