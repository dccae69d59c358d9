// Package instance persists filter instances: one configured filter attached
// to one host wiki within one course. Association rules live in the
// association package; an instance exclusively owns its associations and the
// Postgres schema cascades their deletion.
package instance
