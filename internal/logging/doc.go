// Package logging builds the log/slog logger handed to the combiner.
//
// The entry point owns the logger: it builds one per process with
// NewFromSettings, passes it to combine.NewManager, and closes it on exit.
// Nothing in this module logs through package-level state.
package logging
