package filter

import (
	"github.com/go-chi/chi/v5"
)

// Router mounts the filter's HTTP surface:
//
//	GET    /view              render a wiki page through the filter
//	GET    /tags              tag map of a wiki partition (JSON)
//	POST   /instances         create a filter configuration
//	PUT    /instances/{id}    re-save a configuration
//	DELETE /instances/{id}    remove a configuration
func Router(s *Service) chi.Router {
	r := chi.NewRouter()

	r.Get("/view", s.handleView)
	r.Get("/tags", s.handleTags)

	r.Route("/instances", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Put("/{id}", s.handleUpdate)
		r.Delete("/{id}", s.handleDelete)
	})

	return r
}
