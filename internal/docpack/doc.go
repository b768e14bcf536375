// Package docpack renders the three hand-off documents for an API-less
// distribution partner: a one-row CSV metadata table, a plain-text
// instructions document, and a machine-readable checklist.
//
// Generation is pure and total: no I/O, no clock reads (the caller supplies
// the generation timestamp), and missing optional source fields degrade to
// deterministic placeholders instead of errors.
package docpack
