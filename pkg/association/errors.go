package association

import "errors"

// Domain errors for association storage.
var (
	// ErrMalformedPair is returned when a submitted token does not split into
	// exactly two positive integer components.
	ErrMalformedPair = errors.New("association.malformed_pair")

	// ErrInvalidAssociation is returned when an association references
	// non-positive ids.
	ErrInvalidAssociation = errors.New("association.invalid_association")

	// ErrMalformedTagList is returned when a stored tag-id aggregate cannot be
	// parsed back into tag ids.
	ErrMalformedTagList = errors.New("association.malformed_tag_list")
)
