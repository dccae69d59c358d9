// Package filter is the HTTP module of the wiki visibility filter.
//
// It serves the filtered page view (content rewritten by the link
// rewriter, or a fixed denial page), the tag-listing procedure used by the
// association editor, and the instance configuration endpoints that persist
// association token lists.
package filter
