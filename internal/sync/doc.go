// Package sync enrolls source releases into the distribution pipeline. Each
// source may be enrolled at most once per owner; re-enrollment reports a
// conflict rather than creating a second record.
package sync
