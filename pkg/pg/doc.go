// Package pg provides the PostgreSQL bootstrap layer for the wikifilter
// service: pooled connectivity via pgx/v5 with retrying Connect, goose schema
// migrations bridged through database/sql, a health check closure for the HTTP
// readiness endpoint, and error classifiers (not-found, duplicate key, foreign
// key violation) used by the instance and association stores.
//
// Configuration comes from environment variables; see the field tags on Config
// for variable names and defaults.
package pg
