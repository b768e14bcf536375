// Package logging wires log/slog handlers for console and JSON output,
// optionally mirroring records to a log file under the configured log
// directory.
package logging
