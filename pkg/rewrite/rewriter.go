package rewrite

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/coursekit/wikifilter/pkg/instance"
	"github.com/coursekit/wikifilter/pkg/wiki"
)

// PermissionChecker is the per-page visibility decision the rewriter consults
// for every distinct page referenced by the content. Satisfied by
// visibility.Evaluator.
type PermissionChecker interface {
	CanView(ctx context.Context, user wiki.User, inst instance.Instance, pageID int64) (bool, error)
}

// Endpoint renders the filter's own view URL for a page, so navigation
// between permitted pages stays inside the filtered view.
type Endpoint func(filterID, pageID int64) string

const placeholderPrefix = "inaccessiblelink-"

var (
	// defaultEditLink matches the host's "edit this page" anchors. The whole
	// anchor is dropped, inner text included.
	defaultEditLink = regexp.MustCompile(`(?s)<a href="[^"]*edit\.php[^"]*">.*?</a>`)

	// defaultViewLink matches the host's canonical "view page by id" URL and
	// captures the numeric page id. The full URL fragment is matched so that
	// replacement can never confuse page id 1 with page id 12.
	defaultViewLink = regexp.MustCompile(`[^"\s]*view\.php\?pageid=(\d+)`)

	// placeholderAnchor matches anchors left wrapping a placeholder after the
	// per-page substitution pass.
	placeholderAnchor = regexp.MustCompile(`(?s)<a href="` + placeholderPrefix + `\d+"[^>]*>(.*?)</a>`)
)

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithEditLinkPattern overrides the edit-action URL pattern of the host.
func WithEditLinkPattern(re *regexp.Regexp) Option {
	return func(r *Rewriter) {
		if re != nil {
			r.editLink = re
		}
	}
}

// WithViewLinkPattern overrides the view-link URL pattern. The pattern must
// capture the numeric page id as its first group.
func WithViewLinkPattern(re *regexp.Regexp) Option {
	return func(r *Rewriter) {
		if re != nil {
			r.viewLink = re
		}
	}
}

// WithEndpoint overrides how rewritten view URLs are rendered.
func WithEndpoint(fn Endpoint) Option {
	return func(r *Rewriter) {
		if fn != nil {
			r.endpoint = fn
		}
	}
}

// Rewriter neutralizes links to pages the acting user cannot see and routes
// permitted in-wiki links through the filter's own view endpoint. It works on
// the host's rendered HTML as text: malformed markup passes through
// best-effort, and content without any matching link is returned unchanged.
type Rewriter struct {
	checker  PermissionChecker
	editLink *regexp.Regexp
	viewLink *regexp.Regexp
	endpoint Endpoint
}

func NewRewriter(checker PermissionChecker, opts ...Option) *Rewriter {
	r := &Rewriter{
		checker:  checker,
		editLink: defaultEditLink,
		viewLink: defaultViewLink,
		endpoint: func(filterID, pageID int64) string {
			return fmt.Sprintf("/wikifilter/view?id=%d&pageid=%d", filterID, pageID)
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rewrite processes one rendered page. Edit links are stripped first so an
// edit link and a view link for the same page are never conflated; then every
// view link is either rewritten to the filter's endpoint or, when the target
// page is not visible to the user, reduced to its inner text.
func (r *Rewriter) Rewrite(ctx context.Context, user wiki.User, inst instance.Instance, html string) (string, error) {
	html = r.editLink.ReplaceAllString(html, "")

	matches := r.viewLink.FindAllStringSubmatch(html, -1)
	if len(matches) == 0 {
		return html, nil
	}

	// One visibility decision per distinct page id, however often it is linked.
	verdicts := make(map[int64]bool, len(matches))
	for _, m := range matches {
		pageID, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			// The pattern guarantees digits; overflow is the only way here.
			return "", fmt.Errorf("%w: %q", ErrUnparsablePageID, m[1])
		}
		if _, ok := verdicts[pageID]; ok {
			continue
		}
		ok, err := r.checker.CanView(ctx, user, inst, pageID)
		if err != nil {
			return "", fmt.Errorf("visibility of page %d: %w", pageID, err)
		}
		verdicts[pageID] = ok
	}

	html = r.viewLink.ReplaceAllStringFunc(html, func(match string) string {
		sub := r.viewLink.FindStringSubmatch(match)
		pageID, _ := strconv.ParseInt(sub[1], 10, 64)
		if !verdicts[pageID] {
			return placeholderPrefix + sub[1]
		}
		return r.endpoint(inst.ID, pageID)
	})

	// Second pass: anchors still wrapping a placeholder become plain text.
	html = placeholderAnchor.ReplaceAllString(html, "$1")

	return html, nil
}
