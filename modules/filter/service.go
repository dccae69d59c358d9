package filter

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/coursekit/wikifilter/pkg/association"
	"github.com/coursekit/wikifilter/pkg/i18n"
	"github.com/coursekit/wikifilter/pkg/instance"
	"github.com/coursekit/wikifilter/pkg/rewrite"
	"github.com/coursekit/wikifilter/pkg/visibility"
	"github.com/coursekit/wikifilter/pkg/wiki"
)

// PermissionChecker decides page visibility for a user. Satisfied by
// visibility.Evaluator.
type PermissionChecker interface {
	CanView(ctx context.Context, user wiki.User, inst instance.Instance, pageID int64) (bool, error)
}

// UserFunc resolves the acting user from the request, typically from the
// host's session. The default treats every request as an anonymous
// non-admin user.
type UserFunc func(r *http.Request) (wiki.User, error)

// Service exposes the filter's HTTP surface: the filtered page view, the
// tags remote procedure, and instance configuration.
type Service struct {
	instances    instance.Store
	associations association.Store
	checker      PermissionChecker
	rewriter     *rewrite.Rewriter
	collector    *wiki.TagCollector
	wikis        wiki.Source
	pages        wiki.PageSource
	translator   *i18n.Translator
	resolveUser  UserFunc
	log          *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithUserResolver installs the host session bridge.
func WithUserResolver(fn UserFunc) Option {
	return func(s *Service) { s.resolveUser = fn }
}

// WithLogger sets the service log.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// NewService wires the filter's stores and collaborators.
func NewService(
	instances instance.Store,
	associations association.Store,
	checker PermissionChecker,
	rewriter *rewrite.Rewriter,
	collector *wiki.TagCollector,
	wikis wiki.Source,
	pages wiki.PageSource,
	translator *i18n.Translator,
	opts ...Option,
) *Service {
	s := &Service{
		instances:    instances,
		associations: associations,
		checker:      checker,
		rewriter:     rewriter,
		collector:    collector,
		wikis:        wikis,
		pages:        pages,
		translator:   translator,
		resolveUser:  func(*http.Request) (wiki.User, error) { return wiki.User{}, nil },
		log:          slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewChecker is a convenience constructor for the default permission
// evaluator over the same sources the service uses.
func NewChecker(tags wiki.TagSource, roles wiki.RoleSource, associations association.Store) PermissionChecker {
	return visibility.NewEvaluator(tags, roles, associations)
}

// lang negotiates the response language from the request.
func (s *Service) lang(r *http.Request) string {
	return s.translator.Match(r.Header.Get("Accept-Language"))
}
