// Package redis provides helpers for connecting to the Redis server backing
// the wiki tag cache: a retrying Connect built on go-redis and a health check
// closure for liveness probes. Configuration is described by the Config struct
// whose fields are populated from environment variables.
package redis
