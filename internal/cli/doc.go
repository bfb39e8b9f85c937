// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// merges CLI flags with an optional TOML defaults file into app.Config.
package cli
