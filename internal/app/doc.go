// Package app ties the tuning input loader to a run: it resolves the input
// paths, loads and validates each file, renders diagnostics and reports the
// result. It is decoupled from any specific entrypoint like a CLI.
package app
