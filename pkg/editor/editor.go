package editor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/coursekit/wikifilter/pkg/association"
	"github.com/coursekit/wikifilter/pkg/wiki"
)

// Mode identifies the modal state of the editor.
type Mode string

const (
	// ModeClosed means no modal is open; the row table is visible.
	ModeClosed Mode = "closed"
	// ModeAdd means the modal is open to create a new row. The role
	// selector offers only roles without an existing row.
	ModeAdd Mode = "add"
	// ModeEdit means the modal is open on an existing row. The row's role
	// is locked and its tags pre-populate the selection.
	ModeEdit Mode = "edit"
)

// Row is one visible association row: a role and the tag ids bound to it.
// Rows are keyed by role, one row per role at most.
type Row struct {
	RoleID int64
	TagIDs []int64
}

// TagFetchFunc loads the tag set of a wiki. It backs the refetch triggered
// by a target-wiki change.
type TagFetchFunc func(ctx context.Context, wikiID int64) (map[int64]string, error)

// Editor maintains the in-memory table of role to tag associations while an
// instance is being configured, before anything is persisted. It is safe for
// concurrent use; the wiki-change refetch runs without holding the lock.
type Editor struct {
	mu sync.Mutex

	mode       Mode
	rows       []Row
	roles      []wiki.Role
	tags       map[int64]string
	wikiID     int64
	seq        uint64
	fetch      TagFetchFunc
	onError    func(error)
	selectedID int64   // role chosen in add mode, or the locked role in edit mode
	selection  []int64 // tag ids currently selected in the modal
	invalid    bool    // confirm was attempted with no tag selected
}

// NewEditor builds an editor over the course's role list and the target
// wiki's initial tag set.
func NewEditor(wikiID int64, roles []wiki.Role, tags map[int64]string, opts ...Option) *Editor {
	e := &Editor{
		mode:   ModeClosed,
		roles:  slices.Clone(roles),
		tags:   cloneTags(tags),
		wikiID: wikiID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Option configures an Editor.
type Option func(*Editor)

// WithTagFetcher installs the loader used when the target wiki changes.
func WithTagFetcher(fetch TagFetchFunc) Option {
	return func(e *Editor) { e.fetch = fetch }
}

// WithErrorHandler installs the callback that receives refetch failures.
func WithErrorHandler(fn func(error)) Option {
	return func(e *Editor) { e.onError = fn }
}

// Mode reports the current modal state.
func (e *Editor) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Rows returns a copy of the visible rows in insertion order.
func (e *Editor) Rows() []Row {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Row, len(e.rows))
	for i, r := range e.rows {
		out[i] = Row{RoleID: r.RoleID, TagIDs: slices.Clone(r.TagIDs)}
	}
	return out
}

// Empty reports whether the table has no rows, in which case the view shows
// the placeholder row instead.
func (e *Editor) Empty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.rows) == 0
}

// SelectableRoles returns the roles still available for a new row, in the
// order the host provided them.
func (e *Editor) SelectableRoles() []wiki.Role {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectableLocked()
}

func (e *Editor) selectableLocked() []wiki.Role {
	taken := make(map[int64]struct{}, len(e.rows))
	for _, r := range e.rows {
		taken[r.RoleID] = struct{}{}
	}
	var out []wiki.Role
	for _, role := range e.roles {
		if _, ok := taken[role.ID]; !ok {
			out = append(out, role)
		}
	}
	return out
}

// AvailableTags returns a copy of the current wiki's tag set.
func (e *Editor) AvailableTags() map[int64]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneTags(e.tags)
}

// SelectedTags returns the tag ids currently selected in the open modal.
func (e *Editor) SelectedTags() []int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.selection)
}

// Invalid reports whether the last Confirm failed validation. It is cleared
// by any selection change or by closing the modal.
func (e *Editor) Invalid() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.invalid
}

// OpenAdd opens the modal in add mode with an empty selection. Opening it
// again while already in add mode is a no-op reset of the selection.
func (e *Editor) OpenAdd() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = ModeAdd
	e.resetModalLocked()
}

// OpenEdit opens the modal on an existing row: the role is locked and the
// row's tags pre-populate the selection.
func (e *Editor) OpenEdit(roleID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	row := e.rowLocked(roleID)
	if row == nil {
		return fmt.Errorf("%w: role %d", ErrRowNotFound, roleID)
	}
	e.mode = ModeEdit
	e.selectedID = roleID
	e.selection = slices.Clone(row.TagIDs)
	e.invalid = false
	return nil
}

// SelectRole chooses the role for the row being added. The role must not
// already carry a row. In edit mode the role is locked.
func (e *Editor) SelectRole(roleID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.mode {
	case ModeClosed:
		return ErrClosed
	case ModeEdit:
		return ErrRoleLocked
	}
	for _, role := range e.selectableLocked() {
		if role.ID == roleID {
			e.selectedID = roleID
			return nil
		}
	}
	return fmt.Errorf("%w: role %d", ErrRoleNotSelectable, roleID)
}

// ToggleTag adds the tag to the modal selection, or removes it if already
// selected. The tag must exist on the current wiki.
func (e *Editor) ToggleTag(tagID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode == ModeClosed {
		return ErrClosed
	}
	if _, ok := e.tags[tagID]; !ok {
		return fmt.Errorf("%w: tag %d", ErrUnknownTag, tagID)
	}
	if i := slices.Index(e.selection, tagID); i >= 0 {
		e.selection = slices.Delete(e.selection, i, i+1)
	} else {
		e.selection = append(e.selection, tagID)
	}
	e.invalid = false
	return nil
}

// Confirm commits the modal. At least one tag must be selected; otherwise
// the validation flag is raised, the modal stays open and nothing changes.
// Add mode appends a row for the chosen role, edit mode overwrites the
// row's tags in place. On success the modal closes.
func (e *Editor) Confirm() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.mode {
	case ModeClosed:
		return ErrClosed
	}
	if len(e.selection) == 0 {
		e.invalid = true
		return ErrNoTagSelected
	}
	tags := slices.Clone(e.selection)
	slices.Sort(tags)
	switch e.mode {
	case ModeAdd:
		if e.selectedID == 0 {
			return ErrNoRoleSelected
		}
		e.rows = append(e.rows, Row{RoleID: e.selectedID, TagIDs: tags})
	case ModeEdit:
		row := e.rowLocked(e.selectedID)
		if row == nil {
			return fmt.Errorf("%w: role %d", ErrRowNotFound, e.selectedID)
		}
		row.TagIDs = tags
	}
	e.mode = ModeClosed
	e.resetModalLocked()
	return nil
}

// Cancel closes the modal, discarding the selection and any validation
// error. Rows are untouched.
func (e *Editor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = ModeClosed
	e.resetModalLocked()
}

// DeleteRow removes the role's row, returning the role to the selectable
// pool.
func (e *Editor) DeleteRow(roleID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, r := range e.rows {
		if r.RoleID == roleID {
			e.rows = slices.Delete(e.rows, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("%w: role %d", ErrRowNotFound, roleID)
}

// ChangeWiki retargets the editor at another wiki. The new tag set is
// fetched first; only on success are the rows cleared and the tags swapped,
// so a failed refetch leaves the table intact. Each call takes a sequence
// number, and a fetch that completes after a later call has been issued is
// discarded as stale.
func (e *Editor) ChangeWiki(ctx context.Context, wikiID int64) error {
	if e.fetch == nil {
		return errors.New("editor.no_tag_fetcher")
	}

	e.mu.Lock()
	e.seq++
	seq := e.seq
	e.mu.Unlock()

	tags, err := e.fetch(ctx, wikiID)

	e.mu.Lock()
	defer e.mu.Unlock()
	if seq != e.seq {
		return ErrStaleResponse
	}
	if err != nil {
		err = fmt.Errorf("%w: wiki %d: %w", ErrFetchFailed, wikiID, err)
		if e.onError != nil {
			e.onError(err)
		}
		return err
	}
	e.wikiID = wikiID
	e.tags = cloneTags(tags)
	e.rows = nil
	e.mode = ModeClosed
	e.resetModalLocked()
	return nil
}

// Serialize renders every row as its "roleId-tagId" wire tokens, one token
// per role-tag pair, in row order with tags ascending. The result is the
// exact input of the association store's Replace.
func (e *Editor) Serialize() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []string
	for _, row := range e.rows {
		for _, tagID := range row.TagIDs {
			out = append(out, association.Pair{RoleID: row.RoleID, TagID: tagID}.Token())
		}
	}
	return out
}

func (e *Editor) rowLocked(roleID int64) *Row {
	for i := range e.rows {
		if e.rows[i].RoleID == roleID {
			return &e.rows[i]
		}
	}
	return nil
}

func (e *Editor) resetModalLocked() {
	e.selectedID = 0
	e.selection = nil
	e.invalid = false
}

func cloneTags(tags map[int64]string) map[int64]string {
	out := make(map[int64]string, len(tags))
	for id, text := range tags {
		out[id] = text
	}
	return out
}
