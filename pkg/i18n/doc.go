// Package i18n resolves user-facing filter messages from YAML catalogs.
//
// Catalogs are flat key-to-message files, one per language, embedded with
// the package (English and French ship by default). Lookup falls back to
// the default language and then to the key itself. Accept-Language headers
// are negotiated with golang.org/x/text/language matching.
//
//	tr, _ := i18n.NewBuiltinTranslator()
//	lang := tr.Match(r.Header.Get("Accept-Language"))
//	msg := tr.T(lang, "selecttagerror")
package i18n
