// Package logger provides a small factory over log/slog used by the wikifilter
// service. It supports JSON and text formats, static attributes, and dynamic
// attribute extraction from context (for example the HTTP request id), so every
// log record emitted while serving a filtered wiki page carries the request
// scope it belongs to.
//
// Usage:
//
//	log := logger.New(
//		logger.WithProduction("wikifilter"),
//		logger.WithContextValue("request_id", middleware.RequestIDKey),
//	)
//	log.InfoContext(ctx, "association set replaced", "filter_id", id)
package logger
