package filter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/coursekit/wikifilter/pkg/association"
	"github.com/coursekit/wikifilter/pkg/binder"
	"github.com/coursekit/wikifilter/pkg/instance"
	"github.com/coursekit/wikifilter/pkg/logger"
	"github.com/coursekit/wikifilter/pkg/wiki"
)

type viewRequest struct {
	InstanceID int64 `query:"id"`
	PageID     int64 `query:"pageid"`
}

// handleView renders one wiki page through the filter: the page must be
// visible to the acting user and every internal link in it is rewritten.
// Without a page id the subwiki's front page is shown.
func (s *Service) handleView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := s.lang(r)

	var req viewRequest
	if err := binder.Query(r, &req); err != nil || req.InstanceID <= 0 {
		s.respondError(w, http.StatusBadRequest, "invalid instance id")
		return
	}

	inst, err := s.instances.Get(ctx, req.InstanceID)
	if errors.Is(err, instance.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "instance not found")
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	user, err := s.resolveUser(r)
	if err != nil {
		s.renderDenied(w, r, lang)
		return
	}

	subwiki, err := s.collector.ResolveSubwiki(ctx, inst.WikiID, user)
	if err != nil {
		s.respondHostLookup(w, r, err)
		return
	}

	var page wiki.Page
	if req.PageID > 0 {
		page, err = s.pages.PageByID(ctx, req.PageID)
		if err == nil && page.SubwikiID != subwiki.ID {
			err = wiki.ErrPageNotFound
		}
	} else {
		page, err = s.pages.FirstPage(ctx, subwiki.ID)
	}
	if err != nil {
		s.respondHostLookup(w, r, err)
		return
	}

	allowed, err := s.checker.CanView(ctx, user, inst, page.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !allowed {
		s.renderDenied(w, r, lang)
		return
	}

	content, err := s.rewriter.Rewrite(ctx, user, inst, page.Content)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageDocument(page.Title, content).Render(ctx, w); err != nil {
		s.log.ErrorContext(ctx, "render page", logger.Error(err))
	}
}

type tagsRequest struct {
	WikiID   int64 `query:"wikiid"`
	CourseID int64 `query:"courseid"`
}

// handleTags is the tag-listing remote procedure backing the association
// editor: the tag map of the wiki partition the acting user would see.
func (s *Service) handleTags(w http.ResponseWriter, r *http.Request) {
	var req tagsRequest
	if err := binder.Query(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid parameters")
		return
	}
	if req.WikiID <= 0 || req.CourseID <= 0 {
		s.respondError(w, http.StatusBadRequest, "wikiid and courseid must be positive")
		return
	}

	user, err := s.resolveUser(r)
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	tags, err := s.collector.WikiPageTags(r.Context(), req.WikiID, user)
	if err != nil {
		s.respondHostLookup(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, tags)
}

type saveRequest struct {
	CourseID     int64    `form:"course"`
	WikiID       int64    `form:"wiki"`
	Name         string   `form:"name"`
	Intro        string   `form:"intro"`
	IntroFormat  int      `form:"introformat"`
	Associations []string `form:"associations"`
}

// handleCreate saves a new filter configuration together with its
// association tokens. A malformed token rejects the whole request before
// anything is stored.
func (s *Service) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req saveRequest
	if err := binder.Form(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid form")
		return
	}

	pairs, err := association.ParsePairs(req.Associations)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "malformed association token")
		return
	}

	inst := instance.Instance{
		CourseID:    req.CourseID,
		WikiID:      req.WikiID,
		Name:        req.Name,
		Intro:       req.Intro,
		IntroFormat: instance.IntroFormat(req.IntroFormat),
	}
	if err := s.instances.Create(ctx, &inst); err != nil {
		if errors.Is(err, instance.ErrInvalidInstance) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.fail(w, r, err)
		return
	}

	if len(pairs) > 0 {
		if err := s.associations.Replace(ctx, inst.ID, inst.WikiID, pairs); err != nil {
			s.fail(w, r, err)
			return
		}
	}

	s.log.InfoContext(ctx, "instance created",
		slog.Int64("instance_id", inst.ID), slog.Int64("course_id", inst.CourseID))
	s.respondJSON(w, http.StatusCreated, newInstanceResponse(inst))
}

// handleUpdate re-saves an existing configuration. An empty association
// list clears the stored associations.
func (s *Service) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		s.respondError(w, http.StatusBadRequest, "invalid instance id")
		return
	}

	inst, err := s.instances.Get(ctx, id)
	if errors.Is(err, instance.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "instance not found")
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req saveRequest
	if err := binder.Form(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid form")
		return
	}

	pairs, err := association.ParsePairs(req.Associations)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "malformed association token")
		return
	}

	if req.WikiID > 0 {
		inst.WikiID = req.WikiID
	}
	if req.Name != "" {
		inst.Name = req.Name
	}
	inst.Intro = req.Intro
	inst.IntroFormat = instance.IntroFormat(req.IntroFormat)

	if err := s.instances.Update(ctx, &inst); err != nil {
		if errors.Is(err, instance.ErrInvalidInstance) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.fail(w, r, err)
		return
	}

	if len(pairs) == 0 {
		err = s.associations.DeleteAll(ctx, inst.ID)
	} else {
		err = s.associations.Replace(ctx, inst.ID, inst.WikiID, pairs)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, newInstanceResponse(inst))
}

// handleDelete removes an instance and its associations.
func (s *Service) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		s.respondError(w, http.StatusBadRequest, "invalid instance id")
		return
	}

	if err := s.instances.Delete(ctx, id); err != nil {
		if errors.Is(err, instance.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "instance not found")
			return
		}
		s.fail(w, r, err)
		return
	}
	// Postgres cascades this through the schema; the extra call covers
	// stores that do not.
	if err := s.associations.DeleteAll(ctx, id); err != nil {
		s.fail(w, r, err)
		return
	}

	s.log.InfoContext(ctx, "instance deleted", slog.Int64("instance_id", id))
	w.WriteHeader(http.StatusNoContent)
}

type instanceResponse struct {
	ID           int64  `json:"id"`
	CourseID     int64  `json:"course"`
	WikiID       int64  `json:"wiki"`
	Name         string `json:"name"`
	Intro        string `json:"intro"`
	IntroFormat  int    `json:"introformat"`
	TimeCreated  int64  `json:"timecreated"`
	TimeModified int64  `json:"timemodified"`
}

func newInstanceResponse(inst instance.Instance) instanceResponse {
	return instanceResponse{
		ID:           inst.ID,
		CourseID:     inst.CourseID,
		WikiID:       inst.WikiID,
		Name:         inst.Name,
		Intro:        inst.Intro,
		IntroFormat:  int(inst.IntroFormat),
		TimeCreated:  inst.TimeCreated.Unix(),
		TimeModified: inst.TimeModified.Unix(),
	}
}

func (s *Service) renderDenied(w http.ResponseWriter, r *http.Request, lang string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	msg := s.translator.T(lang, "cantdisplaypage")
	if err := deniedDocument(msg).Render(r.Context(), w); err != nil {
		s.log.ErrorContext(r.Context(), "render denial", logger.Error(err))
	}
}

// respondHostLookup maps host lookup failures to 404 and everything else to
// an internal error.
func (s *Service) respondHostLookup(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, wiki.ErrWikiNotFound),
		errors.Is(err, wiki.ErrSubwikiNotFound),
		errors.Is(err, wiki.ErrPageNotFound):
		s.respondError(w, http.StatusNotFound, err.Error())
	default:
		s.fail(w, r, err)
	}
}

func (s *Service) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.log.ErrorContext(r.Context(), "request failed",
		slog.String("path", r.URL.Path), logger.Error(err))
	s.respondError(w, http.StatusInternalServerError, "internal error")
}

func (s *Service) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", logger.Error(err))
	}
}

func (s *Service) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}
