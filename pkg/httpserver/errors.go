package httpserver

import "errors"

var (
	// ErrStart indicates the server failed to start or serve.
	ErrStart = errors.New("httpserver.start_failed")

	// ErrShutdown indicates graceful shutdown did not complete in time.
	ErrShutdown = errors.New("httpserver.shutdown_failed")
)
