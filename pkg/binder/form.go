package binder

import (
	"fmt"
	"mime"
	"net/http"
	"strings"
)

// maxMultipartMemory bounds in-memory buffering of multipart bodies (10MB).
const maxMultipartMemory = 10 << 20

// Form binds a urlencoded or multipart request body to a struct using
// `form` tags. Repeated fields bind to slices.
//
//	type saveRequest struct {
//		Name         string   `form:"name"`
//		Associations []string `form:"associations"`
//	}
func Form(r *http.Request, v any) error {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return fmt.Errorf("%w: expected application/x-www-form-urlencoded or multipart/form-data", ErrMissingContentType)
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedMediaType, contentType)
	}

	var values map[string][]string
	switch {
	case mediaType == "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidForm, err)
		}
		values = r.PostForm

	case strings.HasPrefix(mediaType, "multipart/"):
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidForm, err)
		}
		values = r.MultipartForm.Value

	default:
		return fmt.Errorf("%w: got %s", ErrUnsupportedMediaType, mediaType)
	}

	return bindValues(v, "form", values, ErrInvalidForm)
}
