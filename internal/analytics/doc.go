// Package analytics aggregates reported stream and revenue figures from
// published pipeline releases into per-owner totals.
package analytics
