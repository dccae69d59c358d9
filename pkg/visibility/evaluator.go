package visibility

import (
	"context"
	"fmt"

	"github.com/coursekit/wikifilter/pkg/association"
	"github.com/coursekit/wikifilter/pkg/instance"
	"github.com/coursekit/wikifilter/pkg/wiki"
)

// AssociationReader is the read path the evaluator needs from the association
// store: the instance's role→tag-set mapping.
type AssociationReader interface {
	GroupedByRole(ctx context.Context, filterID int64) (association.RoleTagSet, error)
}

// Evaluator decides per-page visibility for a filter instance. It is
// stateless: the acting user and the instance arrive as explicit arguments on
// every call, never from ambient request state.
type Evaluator struct {
	tags         wiki.TagSource
	roles        wiki.RoleSource
	associations AssociationReader
}

func NewEvaluator(tags wiki.TagSource, roles wiki.RoleSource, associations AssociationReader) *Evaluator {
	return &Evaluator{tags: tags, roles: roles, associations: associations}
}

// CanView reports whether the user may see the page through the given filter
// instance.
//
// Admins always may. Everyone else may when at least one of their course
// roles is associated with at least one of the page's tags. Roles are checked
// in the order the host returns them and the first match wins; the order does
// not change the outcome, only which role matched.
func (e *Evaluator) CanView(ctx context.Context, user wiki.User, inst instance.Instance, pageID int64) (bool, error) {
	if user.Admin {
		return true, nil
	}

	pageTags, err := e.tags.PageTags(ctx, pageID)
	if err != nil {
		return false, fmt.Errorf("tags of page %d: %w", pageID, err)
	}
	// An untagged page can never intersect any association.
	if len(pageTags) == 0 {
		return false, nil
	}

	pageTagIDs := make([]int64, 0, len(pageTags))
	for id := range pageTags {
		pageTagIDs = append(pageTagIDs, id)
	}

	roles, err := e.roles.UserRoles(ctx, inst.CourseID, user.ID)
	if err != nil {
		return false, fmt.Errorf("roles of user %d in course %d: %w", user.ID, inst.CourseID, err)
	}

	roleTags, err := e.associations.GroupedByRole(ctx, inst.ID)
	if err != nil {
		return false, fmt.Errorf("associations of instance %d: %w", inst.ID, err)
	}

	for _, role := range roles {
		if roleTags.Intersects(role.ID, pageTagIDs) {
			return true, nil
		}
	}

	return false, nil
}
