package instance

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coursekit/wikifilter/pkg/pg"
)

// PostgresStore is the pgx-backed Store implementation.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, inst *Instance) error {
	if err := inst.Validate(); err != nil {
		return err
	}

	inst.TimeCreated = time.Now().UTC()
	inst.TimeModified = inst.TimeCreated

	err := s.pool.QueryRow(ctx,
		`INSERT INTO wikifilter (course, wiki, name, intro, introformat, timecreated, timemodified)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		inst.CourseID, inst.WikiID, inst.Name, inst.Intro, inst.IntroFormat,
		inst.TimeCreated, inst.TimeModified).Scan(&inst.ID)
	if err != nil {
		return fmt.Errorf("insert instance: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, inst *Instance) error {
	if err := inst.Validate(); err != nil {
		return err
	}

	inst.TimeModified = time.Now().UTC()

	tag, err := s.pool.Exec(ctx,
		`UPDATE wikifilter
		 SET course = $2, wiki = $3, name = $4, intro = $5, introformat = $6, timemodified = $7
		 WHERE id = $1`,
		inst.ID, inst.CourseID, inst.WikiID, inst.Name, inst.Intro, inst.IntroFormat,
		inst.TimeModified)
	if err != nil {
		return fmt.Errorf("update instance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	// Association rows cascade via the foreign key.
	tag, err := s.pool.Exec(ctx, `DELETE FROM wikifilter WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete instance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (Instance, error) {
	var inst Instance
	err := s.pool.QueryRow(ctx,
		`SELECT id, course, wiki, name, intro, introformat, timecreated, timemodified
		 FROM wikifilter WHERE id = $1`, id).
		Scan(&inst.ID, &inst.CourseID, &inst.WikiID, &inst.Name, &inst.Intro,
			&inst.IntroFormat, &inst.TimeCreated, &inst.TimeModified)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Instance{}, ErrNotFound
		}
		return Instance{}, fmt.Errorf("get instance: %w", err)
	}
	return inst, nil
}

func (s *PostgresStore) ListByCourse(ctx context.Context, courseID int64) ([]Instance, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, course, wiki, name, intro, introformat, timecreated, timemodified
		 FROM wikifilter WHERE course = $1
		 ORDER BY timecreated DESC`, courseID)
	if err != nil {
		return nil, fmt.Errorf("list instances: %w", err)
	}
	defer rows.Close()

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Instance, error) {
		var inst Instance
		err := row.Scan(&inst.ID, &inst.CourseID, &inst.WikiID, &inst.Name, &inst.Intro,
			&inst.IntroFormat, &inst.TimeCreated, &inst.TimeModified)
		return inst, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect instances: %w", err)
	}
	return out, nil
}

var _ Store = (*PostgresStore)(nil)
