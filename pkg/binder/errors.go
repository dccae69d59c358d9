package binder

import "errors"

var (
	// ErrInvalidQuery marks query parameters that do not bind to the target
	// struct.
	ErrInvalidQuery = errors.New("binder.invalid_query")

	// ErrInvalidForm marks a request body that does not parse or bind as a
	// form.
	ErrInvalidForm = errors.New("binder.invalid_form")

	// ErrMissingContentType is returned when a form request carries no
	// Content-Type header.
	ErrMissingContentType = errors.New("binder.missing_content_type")

	// ErrUnsupportedMediaType is returned for form requests with a body
	// that is neither urlencoded nor multipart.
	ErrUnsupportedMediaType = errors.New("binder.unsupported_media_type")
)
