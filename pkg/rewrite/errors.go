package rewrite

import "errors"

// ErrUnparsablePageID is returned when a captured page id does not fit a
// 64-bit integer.
var ErrUnparsablePageID = errors.New("rewrite.unparsable_page_id")
