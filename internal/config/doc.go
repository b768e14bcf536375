// Package config loads, normalizes, and validates Pressline configuration
// from TOML. Defaults come from repository constants; path fields are
// expanded to absolute paths at load time.
package config
