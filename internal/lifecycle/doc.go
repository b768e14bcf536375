// Package lifecycle owns status progression for pipeline releases:
// draft to submitted (via package generation, guarded on attached assets),
// submitted to processing, processing to published, and rejection from
// either in-flight review state. Every transition is a conditional write
// keyed on the expected prior status.
package lifecycle
