package i18n

import (
	"regexp"
	"sort"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when negotiation finds no acceptable match.
const DefaultLanguage = "en"

// Translator resolves message keys against per-language catalogs. Missing
// keys fall back to the default language's message, then to the key itself,
// so a gap in a catalog never produces an empty string.
type Translator struct {
	catalogs    map[string]map[string]string
	defaultLang string
	tags        []language.Tag
	matcher     language.Matcher
}

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage overrides the fallback language. The language must
// have a catalog.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) { t.defaultLang = lang }
}

// NewTranslator builds a translator over the given catalogs, keyed by
// language tag.
func NewTranslator(catalogs map[string]map[string]string, opts ...Option) (*Translator, error) {
	if len(catalogs) == 0 {
		return nil, ErrNoCatalogs
	}

	t := &Translator{
		catalogs:    catalogs,
		defaultLang: DefaultLanguage,
	}
	for _, opt := range opts {
		opt(t)
	}

	// The default language leads the matcher's tag list, making it the
	// negotiation fallback.
	langs := make([]string, 0, len(catalogs))
	for lang := range catalogs {
		if lang != t.defaultLang {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)
	langs = append([]string{t.defaultLang}, langs...)

	for _, lang := range langs {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, ErrInvalidLanguage
		}
		t.tags = append(t.tags, tag)
	}
	t.matcher = language.NewMatcher(t.tags)
	return t, nil
}

// Languages returns the catalog languages, default first.
func (t *Translator) Languages() []string {
	out := make([]string, len(t.tags))
	for i, tag := range t.tags {
		out[i] = tag.String()
	}
	return out
}

// Match negotiates the best catalog language for an Accept-Language header.
// An empty or unmatchable header resolves to the default language.
func (t *Translator) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return t.defaultLang
	}
	_, i := language.MatchStrings(t.matcher, acceptLanguage)
	return t.tags[i].String()
}

var paramRe = regexp.MustCompile(`%\{([^}]+)\}`)

// T resolves a key for a language, substituting %{name} placeholders from
// the key-value argument pairs.
func (t *Translator) T(lang, key string, args ...string) string {
	msg, ok := t.catalogs[lang][key]
	if !ok {
		msg, ok = t.catalogs[t.defaultLang][key]
	}
	if !ok {
		msg = key
	}
	if len(args) < 2 {
		return msg
	}

	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRe.ReplaceAllStringFunc(msg, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}

// Has reports whether the language's own catalog carries the key.
func (t *Translator) Has(lang, key string) bool {
	_, ok := t.catalogs[lang][key]
	return ok
}
