package filter

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// pageDocument wraps rendered wiki content in a minimal HTML document. The
// content has already been through the link rewriter and is trusted as-is;
// the title is escaped.
func pageDocument(title, content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!doctype html><html><head><meta charset="utf-8"><title>`+
			templ.EscapeString(title)+`</title></head><body><div class="wikifilter-page">`); err != nil {
			return err
		}
		if err := templ.Raw(content).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></body></html>`)
		return err
	})
}

// deniedDocument is the fixed permission-denied page.
func deniedDocument(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!doctype html><html><head><meta charset="utf-8"></head><body>`+
			`<div class="wikifilter-denied"><p>`+templ.EscapeString(message)+`</p></div></body></html>`)
		return err
	})
}
