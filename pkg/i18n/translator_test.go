package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursekit/wikifilter/pkg/i18n"
)

func newTestTranslator(t *testing.T) *i18n.Translator {
	t.Helper()
	tr, err := i18n.NewTranslator(map[string]map[string]string{
		"en": {
			"selecttagerror": "You must at least select one tag",
			"greeting":       "Hello, %{name}!",
			"only_en":        "english only",
		},
		"fr": {
			"selecttagerror": "Vous devez sélectionnner au moins une étiquette",
			"greeting":       "Bonjour, %{name}!",
		},
	})
	require.NoError(t, err)
	return tr
}

func TestTranslator_T(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t)

	assert.Equal(t, "You must at least select one tag", tr.T("en", "selecttagerror"))
	assert.Equal(t, "Vous devez sélectionnner au moins une étiquette", tr.T("fr", "selecttagerror"))
}

func TestTranslator_Substitution(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t)

	assert.Equal(t, "Hello, Ada!", tr.T("en", "greeting", "name", "Ada"))
	assert.Equal(t, "Hello, %{name}!", tr.T("en", "greeting", "other", "x"),
		"unknown placeholder left as-is")
}

func TestTranslator_Fallbacks(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t)

	assert.Equal(t, "english only", tr.T("fr", "only_en"), "missing key falls back to default language")
	assert.Equal(t, "nosuchkey", tr.T("en", "nosuchkey"), "unknown key falls back to the key")
	assert.Equal(t, "english only", tr.T("de", "only_en"), "unknown language falls back to default")
}

func TestTranslator_Match(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t)

	tests := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"fr", "fr"},
		{"fr-CA,fr;q=0.9,en;q=0.5", "fr"},
		{"de-DE,de;q=0.9", "en"},
		{"en-GB,en;q=0.8,fr;q=0.5", "en"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tr.Match(tt.header), "header %q", tt.header)
	}
}

func TestTranslator_Has(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t)

	assert.True(t, tr.Has("en", "only_en"))
	assert.False(t, tr.Has("fr", "only_en"), "Has does not fall back")
}

func TestNewTranslator_Validation(t *testing.T) {
	t.Parallel()

	_, err := i18n.NewTranslator(nil)
	assert.ErrorIs(t, err, i18n.ErrNoCatalogs)

	_, err = i18n.NewTranslator(map[string]map[string]string{"!!": {"k": "v"}, "en": {}})
	assert.ErrorIs(t, err, i18n.ErrInvalidLanguage)
}

func TestBuiltinCatalogs(t *testing.T) {
	t.Parallel()

	tr, err := i18n.NewBuiltinTranslator()
	require.NoError(t, err)

	assert.Equal(t, []string{"en", "fr"}, tr.Languages())
	assert.Equal(t, "There is no Wiki activity in this course.", tr.T("en", "nowikiincourse"))
	assert.Equal(t, "Cette page ne peut pas être affichée", tr.T("fr", "cantdisplaypage"))

	// Both catalogs carry the same key set.
	for _, key := range []string{"add", "associations", "selecttagerror", "wikifiltername", "nodata"} {
		assert.True(t, tr.Has("en", key), "en missing %s", key)
		assert.True(t, tr.Has("fr", key), "fr missing %s", key)
	}
}
