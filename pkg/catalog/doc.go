// Package catalog provides the record model, validation and query rules for a
// catalog of commercial content projects published across marketing channels.
//
// A project belongs to one Channel (site, youtube, instagram, ...) and one
// ContentType scoped to that channel. The channel/type taxonomy is a fixed
// table; Validate enforces it and Query filters and orders a snapshot of
// records.
//
// Storage
//
// The Store interface is the storage adapter consumed by handlers and the CLI.
// New builds a Store over any Repository (memory, key-value list, Postgres);
// the client subpackage provides a Store that talks to the REST API instead.
// Both variants share the same validation and query semantics.
package catalog
