// Package rewrite neutralizes in-page wiki links according to per-page
// visibility: anchors pointing at pages the acting user cannot see lose their
// anchor element and keep only their text, permitted view links are routed
// through the filter's own view endpoint, and edit-action links are always
// removed outright.
//
// The rewriter operates on rendered HTML as text with the same regular
// expression approach the host uses; it does not parse or validate markup.
package rewrite
