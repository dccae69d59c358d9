package backup

import "errors"

var (
	// ErrInvalidArchive marks an XML document that does not decode into a
	// well-formed filter archive.
	ErrInvalidArchive = errors.New("backup.invalid_archive")

	// ErrArchiveNotFound is returned when the storage has no object under
	// the given key.
	ErrArchiveNotFound = errors.New("backup.archive_not_found")

	// ErrInvalidKey marks a storage key that is empty or escapes the
	// storage root.
	ErrInvalidKey = errors.New("backup.invalid_key")

	// ErrInvalidConfig is returned when a storage backend is missing
	// required configuration.
	ErrInvalidConfig = errors.New("backup.invalid_config")

	// ErrAccessDenied is returned when the object store rejects the
	// caller's credentials.
	ErrAccessDenied = errors.New("backup.access_denied")

	// ErrStorageUnavailable covers transient object-store failures.
	ErrStorageUnavailable = errors.New("backup.storage_unavailable")
)
