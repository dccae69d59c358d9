// Package httpserver wraps http.Server with graceful shutdown, env-driven
// configuration and a dependency health probe.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	err := srv.Run(ctx, router)
//
// Run blocks until the context is cancelled or SIGINT/SIGTERM arrives, then
// drains in-flight requests within the shutdown timeout.
package httpserver
