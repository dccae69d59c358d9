// Package config loads service configuration from environment variables using
// struct tags (github.com/caarlos0/env), with optional .env file support via
// godotenv. Each configuration type is parsed once per process and cached, so
// the same struct can be loaded from several places without re-reading the
// environment.
package config
