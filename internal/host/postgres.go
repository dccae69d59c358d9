package host

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coursekit/wikifilter/pkg/pg"
	"github.com/coursekit/wikifilter/pkg/wiki"
)

// PostgresHost reads the host application's wiki data through the SQL views
// the deployment provides (host_wiki, host_subwiki, host_page,
// host_page_tag, host_user_role). Access is read-only; the filter never
// writes host data.
type PostgresHost struct {
	pool *pgxpool.Pool
}

func NewPostgresHost(pool *pgxpool.Pool) *PostgresHost {
	return &PostgresHost{pool: pool}
}

func (h *PostgresHost) WikiByID(ctx context.Context, wikiID int64) (wiki.Wiki, error) {
	var w wiki.Wiki
	err := h.pool.QueryRow(ctx,
		`SELECT id, course_id, name, mode FROM host_wiki WHERE id = $1`, wikiID).
		Scan(&w.ID, &w.CourseID, &w.Name, &w.Mode)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return wiki.Wiki{}, wiki.ErrWikiNotFound
		}
		return wiki.Wiki{}, fmt.Errorf("host wiki %d: %w", wikiID, err)
	}
	return w, nil
}

func (h *PostgresHost) Subwiki(ctx context.Context, wikiID, groupID, userID int64) (wiki.Subwiki, error) {
	var sw wiki.Subwiki
	err := h.pool.QueryRow(ctx,
		`SELECT id, wiki_id, group_id, user_id
		 FROM host_subwiki
		 WHERE wiki_id = $1 AND group_id = $2 AND user_id = $3`,
		wikiID, groupID, userID).
		Scan(&sw.ID, &sw.WikiID, &sw.GroupID, &sw.UserID)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return wiki.Subwiki{}, wiki.ErrSubwikiNotFound
		}
		return wiki.Subwiki{}, fmt.Errorf("host subwiki of wiki %d: %w", wikiID, err)
	}
	return sw, nil
}

func (h *PostgresHost) PageList(ctx context.Context, subwikiID int64) ([]wiki.Page, error) {
	rows, err := h.pool.Query(ctx,
		`SELECT id, subwiki_id, title, cached_content, is_first
		 FROM host_page WHERE subwiki_id = $1
		 ORDER BY id`, subwikiID)
	if err != nil {
		return nil, fmt.Errorf("host pages of subwiki %d: %w", subwikiID, err)
	}
	defer rows.Close()

	out, err := pgx.CollectRows(rows, scanPage)
	if err != nil {
		return nil, fmt.Errorf("collect host pages: %w", err)
	}
	return out, nil
}

func (h *PostgresHost) PageByID(ctx context.Context, pageID int64) (wiki.Page, error) {
	rows, err := h.pool.Query(ctx,
		`SELECT id, subwiki_id, title, cached_content, is_first
		 FROM host_page WHERE id = $1`, pageID)
	if err != nil {
		return wiki.Page{}, fmt.Errorf("host page %d: %w", pageID, err)
	}
	defer rows.Close()

	p, err := pgx.CollectOneRow(rows, scanPage)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return wiki.Page{}, wiki.ErrPageNotFound
		}
		return wiki.Page{}, fmt.Errorf("host page %d: %w", pageID, err)
	}
	return p, nil
}

func (h *PostgresHost) FirstPage(ctx context.Context, subwikiID int64) (wiki.Page, error) {
	rows, err := h.pool.Query(ctx,
		`SELECT id, subwiki_id, title, cached_content, is_first
		 FROM host_page WHERE subwiki_id = $1 AND is_first
		 LIMIT 1`, subwikiID)
	if err != nil {
		return wiki.Page{}, fmt.Errorf("host front page of subwiki %d: %w", subwikiID, err)
	}
	defer rows.Close()

	p, err := pgx.CollectOneRow(rows, scanPage)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return wiki.Page{}, wiki.ErrPageNotFound
		}
		return wiki.Page{}, fmt.Errorf("host front page of subwiki %d: %w", subwikiID, err)
	}
	return p, nil
}

func (h *PostgresHost) PageTags(ctx context.Context, pageID int64) (map[int64]string, error) {
	rows, err := h.pool.Query(ctx,
		`SELECT tag_id, tag_text FROM host_page_tag WHERE page_id = $1`, pageID)
	if err != nil {
		return nil, fmt.Errorf("host tags of page %d: %w", pageID, err)
	}
	defer rows.Close()

	tags := make(map[int64]string)
	for rows.Next() {
		var id int64
		var text string
		if err := rows.Scan(&id, &text); err != nil {
			return nil, fmt.Errorf("scan host tag: %w", err)
		}
		tags[id] = text
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("host tags of page %d: %w", pageID, err)
	}
	return tags, nil
}

func (h *PostgresHost) UserRoles(ctx context.Context, courseID, userID int64) ([]wiki.Role, error) {
	rows, err := h.pool.Query(ctx,
		`SELECT role_id, role_name
		 FROM host_user_role
		 WHERE course_id = $1 AND user_id = $2
		 ORDER BY sort_order`, courseID, userID)
	if err != nil {
		return nil, fmt.Errorf("host roles of user %d: %w", userID, err)
	}
	defer rows.Close()

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (wiki.Role, error) {
		var r wiki.Role
		err := row.Scan(&r.ID, &r.Name)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect host roles: %w", err)
	}
	return out, nil
}

func scanPage(row pgx.CollectableRow) (wiki.Page, error) {
	var p wiki.Page
	err := row.Scan(&p.ID, &p.SubwikiID, &p.Title, &p.Content, &p.First)
	return p, err
}

var (
	_ wiki.Source     = (*PostgresHost)(nil)
	_ wiki.PageSource = (*PostgresHost)(nil)
	_ wiki.TagSource  = (*PostgresHost)(nil)
	_ wiki.RoleSource = (*PostgresHost)(nil)
)
