// Package association persists the role→tag visibility rules of a filter
// instance and rebuilds the derived role→tag-set mapping used during
// permission evaluation.
//
// Rules arrive from the configuration form as "roleId-tagId" tokens; that
// encoding, and the comma-joined tag-id aggregate produced by the grouped SQL
// read, are wire formats only. In memory the package works with Pair values
// and the RoleTagSet type.
//
// Replace semantics: the existing set is deleted and the new set inserted in
// one transaction, and a single malformed token rejects the whole batch, so
// the store never holds a partially valid association set. Concurrent
// replaces of the same instance are last-writer-wins; configuration is a
// single-operator workflow and the store adds no locking of its own.
package association
