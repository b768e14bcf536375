// Package main hosts the Pressline CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into release
// store operations, pipeline sync and lifecycle requests, hand-off package
// generation, analytics queries, and configuration scaffolding. It
// centralizes configuration resolution and store setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
