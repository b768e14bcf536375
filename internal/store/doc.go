// Package store persists source releases and their pipeline projections in
// SQLite and exposes the conditional-write primitives the lifecycle relies
// on.
//
// Correctness properties live here as constraints rather than locks: a
// unique index on (owner_id, source_release_id) makes duplicate enrollment
// impossible, and status changes go through compare-and-set updates keyed on
// the expected prior status. Schema changes bump schemaVersion in schema.go;
// databases with an older version must be recreated.
package store
