package binder

import "net/http"

// Query binds URL query parameters to a struct using `query` tags.
//
//	type viewRequest struct {
//		InstanceID int64 `query:"id"`
//		PageID     int64 `query:"pageid"`
//	}
func Query(r *http.Request, v any) error {
	return bindValues(v, "query", r.URL.Query(), ErrInvalidQuery)
}
