package association

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the pgx-backed Store implementation.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Replace(ctx context.Context, filterID, wikiID int64, pairs []Pair) error {
	// Validate the whole batch before touching the table so a bad pair can
	// never leave a partial association set behind.
	rows := make([]Association, 0, len(pairs))
	for _, p := range pairs {
		a, err := New(p.RoleID, p.TagID, wikiID, filterID)
		if err != nil {
			return err
		}
		rows = append(rows, a)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`DELETE FROM wikifilter_associations WHERE wikifilter_id = $1`, filterID); err != nil {
		return fmt.Errorf("delete associations: %w", err)
	}

	batch := &pgx.Batch{}
	for _, a := range rows {
		batch.Queue(
			`INSERT INTO wikifilter_associations (role_id, tag_id, wiki_id, wikifilter_id)
			 VALUES ($1, $2, $3, $4)`,
			a.RoleID, a.TagID, a.WikiID, a.FilterID)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for range rows {
		if _, err := br.Exec(); err != nil {
			batchErr = errors.Join(batchErr, err)
		}
	}
	if err := br.Close(); err != nil {
		batchErr = errors.Join(batchErr, err)
	}
	if batchErr != nil {
		return fmt.Errorf("insert associations: %w", batchErr)
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) DeleteAll(ctx context.Context, filterID int64) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM wikifilter_associations WHERE wikifilter_id = $1`, filterID); err != nil {
		return fmt.Errorf("delete associations: %w", err)
	}
	return nil
}

func (s *PostgresStore) GroupedByRole(ctx context.Context, filterID int64) (RoleTagSet, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT role_id, string_agg(tag_id::text, ',' ORDER BY id)
		 FROM wikifilter_associations
		 WHERE wikifilter_id = $1
		 GROUP BY role_id`, filterID)
	if err != nil {
		return nil, fmt.Errorf("query associations: %w", err)
	}
	defer rows.Close()

	set := make(RoleTagSet)
	for rows.Next() {
		var roleID int64
		var joined string
		if err := rows.Scan(&roleID, &joined); err != nil {
			return nil, fmt.Errorf("scan association row: %w", err)
		}
		tags, err := parseGrouped(roleID, joined)
		if err != nil {
			return nil, err
		}
		set[roleID] = tags
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read association rows: %w", err)
	}

	return set, nil
}

func (s *PostgresStore) List(ctx context.Context, filterID int64) ([]Association, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, role_id, tag_id, wiki_id, wikifilter_id, created_at
		 FROM wikifilter_associations
		 WHERE wikifilter_id = $1
		 ORDER BY id`, filterID)
	if err != nil {
		return nil, fmt.Errorf("query associations: %w", err)
	}
	defer rows.Close()

	var out []Association
	for rows.Next() {
		var a Association
		if err := rows.Scan(&a.ID, &a.RoleID, &a.TagID, &a.WikiID, &a.FilterID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan association row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read association rows: %w", err)
	}

	return out, nil
}

var _ Store = (*PostgresStore)(nil)
