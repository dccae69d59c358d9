// Package visibility implements the per-page permission check at the heart
// of the filter: a page is visible to a user when one of the user's course
// roles is associated with one of the page's tags, or when the user carries
// the administrative override.
//
// The evaluator consumes already-resolved role and tag data through the wiki
// package's collaborator interfaces and the association store's grouped read
// path. Association entries whose tag ids no longer exist on any page are
// left inert: they never match, and the evaluator does not prune them.
package visibility
