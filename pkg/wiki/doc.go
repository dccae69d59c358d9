// Package wiki defines the narrow interfaces through which the filter
// consumes the host application: page tags, course roles, page storage, and
// the wiki/subwiki partition model. It also provides the TagCollector, which
// resolves the subwiki a user actually sees and merges the tag vocabulary of
// its pages, an optional redis-backed tag cache, and an in-memory host
// implementation for tests.
//
// Everything here is read-only from the filter's point of view: the filter
// never creates users, roles, pages, or tags.
package wiki
