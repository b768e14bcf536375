// Package services defines the error taxonomy shared by the distribution
// pipeline components.
//
// Every failure a component surfaces is tagged with one of the exported
// sentinel markers (not found, conflict, invalid transition, stale state,
// store failure, validation) via the Wrap helper, so callers classify
// outcomes with errors.Is instead of matching message text. No component
// retries internally; retry policy belongs to callers.
package services
