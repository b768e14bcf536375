// Package catalog holds the static distribution registry: the platforms a
// release can target, grouped by category, and the fixed seven-step hand-off
// workflow. Pure data, initialized once at startup.
package catalog
