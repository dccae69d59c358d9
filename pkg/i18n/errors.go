package i18n

import "errors"

var (
	// ErrNoCatalogs is returned when the catalog source contains no
	// language files.
	ErrNoCatalogs = errors.New("i18n.no_catalogs")

	// ErrInvalidCatalog marks a catalog file that is not a flat
	// string-to-string YAML mapping.
	ErrInvalidCatalog = errors.New("i18n.invalid_catalog")

	// ErrInvalidLanguage marks a catalog filename that does not parse as a
	// language tag.
	ErrInvalidLanguage = errors.New("i18n.invalid_language")
)
