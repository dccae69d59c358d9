package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed translations/*.yml
var builtin embed.FS

// LoadCatalogs reads every .yml/.yaml file in dir of fsys as one language
// catalog, keyed by the filename stem ("en.yml" holds the "en" catalog).
// Each file must be a flat string-to-string mapping.
func LoadCatalogs(fsys fs.FS, dir string) (map[string]map[string]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog directory %s: %w", dir, err)
	}

	catalogs := make(map[string]map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := path.Ext(entry.Name())
		if ext != ".yml" && ext != ".yaml" {
			continue
		}

		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", entry.Name(), err)
		}

		var catalog map[string]string
		if err := yaml.Unmarshal(data, &catalog); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidCatalog, entry.Name(), err)
		}

		lang := strings.TrimSuffix(entry.Name(), ext)
		catalogs[lang] = catalog
	}

	if len(catalogs) == 0 {
		return nil, ErrNoCatalogs
	}
	return catalogs, nil
}

// NewBuiltinTranslator loads the catalogs embedded with the package.
func NewBuiltinTranslator(opts ...Option) (*Translator, error) {
	catalogs, err := LoadCatalogs(builtin, "translations")
	if err != nil {
		return nil, err
	}
	return NewTranslator(catalogs, opts...)
}
