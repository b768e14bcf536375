// Package release defines the domain model shared by the distribution
// pipeline: source releases owned by artists, their pipeline projections,
// and the status lifecycle that governs how a pipeline release moves from
// draft to published (or rejected).
//
// The status tables here are the single source of truth for lifecycle
// semantics. The draft to submitted edge is owned by package generation and
// never appears in the operator transition table; published and rejected
// are terminal.
package release
