package editor

import "errors"

var (
	// ErrNoTagSelected is returned by Confirm when the tag selection is empty.
	// The modal stays open and no row is mutated.
	ErrNoTagSelected = errors.New("editor.no_tag_selected")

	// ErrNoRoleSelected is returned by Confirm in add mode when no role has
	// been chosen yet.
	ErrNoRoleSelected = errors.New("editor.no_role_selected")

	// ErrRoleNotSelectable is returned when the chosen role is unknown or
	// already carries a row.
	ErrRoleNotSelectable = errors.New("editor.role_not_selectable")

	// ErrRoleLocked is returned when attempting to change the role while a
	// row is being edited.
	ErrRoleLocked = errors.New("editor.role_locked")

	// ErrUnknownTag is returned when a selected tag id is not part of the
	// current wiki's tag set.
	ErrUnknownTag = errors.New("editor.unknown_tag")

	// ErrRowNotFound is returned when the referenced role has no row.
	ErrRowNotFound = errors.New("editor.row_not_found")

	// ErrClosed is returned by modal operations while no modal is open.
	ErrClosed = errors.New("editor.closed")

	// ErrStaleResponse marks a tag refetch that was superseded by a later
	// wiki change before it completed. The response is discarded.
	ErrStaleResponse = errors.New("editor.stale_response")

	// ErrFetchFailed wraps tag refetch failures.
	ErrFetchFailed = errors.New("editor.fetch_failed")
)
