package wiki

import "errors"

var (
	// ErrWikiNotFound is returned when the target wiki does not exist.
	ErrWikiNotFound = errors.New("wiki.not_found")

	// ErrSubwikiNotFound is returned when no partition exists for the
	// requested group/user context.
	ErrSubwikiNotFound = errors.New("wiki.subwiki_not_found")

	// ErrPageNotFound is returned for unknown page ids.
	ErrPageNotFound = errors.New("wiki.page_not_found")
)
