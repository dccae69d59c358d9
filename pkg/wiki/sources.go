package wiki

import "context"

// The host application is consumed only through these narrow read interfaces.
// The filter never manages users, roles, pages, or tags itself.

// TagSource exposes the host's tagging subsystem for wiki pages.
type TagSource interface {
	// PageTags returns the page's tags as id→text. Untagged pages return an
	// empty map.
	PageTags(ctx context.Context, pageID int64) (map[int64]string, error)
}

// RoleSource exposes the host's resolved course role assignments.
type RoleSource interface {
	// UserRoles returns the user's roles within the course, in the host's
	// deterministic order.
	UserRoles(ctx context.Context, courseID, userID int64) ([]Role, error)
}

// PageSource exposes the host's wiki page storage.
type PageSource interface {
	PageList(ctx context.Context, subwikiID int64) ([]Page, error)
	PageByID(ctx context.Context, pageID int64) (Page, error)
	// FirstPage returns the subwiki's front page, used when a view request
	// names no page id.
	FirstPage(ctx context.Context, subwikiID int64) (Page, error)
}

// Source exposes host wiki activities and their subwiki partitions.
type Source interface {
	WikiByID(ctx context.Context, wikiID int64) (Wiki, error)
	// Subwiki resolves the partition for a group/user pair. For collaborative
	// wikis the user component is zero.
	Subwiki(ctx context.Context, wikiID, groupID, userID int64) (Subwiki, error)
}
