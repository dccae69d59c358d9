// Package editor holds the in-memory role/tag association table an operator
// builds while configuring a filter instance.
//
// The editor is a small modal state machine: closed, add mode (pick a free
// role and at least one tag) and edit mode (the row's role is locked, its
// tags are replaced). Confirming with an empty tag selection raises a
// validation flag and keeps the modal open. Deleting a row frees its role
// for a later add. Changing the target wiki refetches the tag set and, on
// success, clears every row; out-of-order refetches are discarded by
// sequence number.
//
// Serialize renders the table as "roleId-tagId" tokens, the wire format the
// association store persists:
//
//	ed := editor.NewEditor(wikiID, roles, tags)
//	ed.OpenAdd()
//	ed.SelectRole(2)
//	ed.ToggleTag(9)
//	ed.Confirm()
//	pairs, _ := association.ParsePairs(ed.Serialize())
//	store.Replace(ctx, filterID, wikiID, pairs)
package editor
