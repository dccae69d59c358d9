// Package binder maps HTTP request parameters onto tagged structs.
//
// Query binds URL query parameters via `query` tags, Form binds urlencoded
// and multipart bodies via `form` tags. Fields without a matching parameter
// keep their zero value; a "-" tag opts a field out. Supported field types
// are strings, integers, booleans, pointers and slices of those.
package binder
