// Package export writes generated distribution packages to disk.
package export
