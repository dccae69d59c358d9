// Package backup exports filter instances as XML archives and restores them
// into another course or wiki.
//
// The document layout mirrors the host's activity backup format: a
// wikifilter element carrying the instance fields and a nested list of
// association elements. On import all ids are reassigned and the archived
// wiki id is replaced by the restore target's.
//
// Archives live behind the Storage interface, with local-filesystem and S3
// implementations. Keys are UUID-based and generated on export.
package backup
