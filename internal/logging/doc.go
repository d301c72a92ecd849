// Package logging assembles structured slog loggers for holdcut.
//
// It owns the console and JSON handlers, level parsing, and output plumbing,
// and exposes context helpers so pipeline code can tag every log line with the
// run identifier and the pipeline step that emitted it. A no-op logger is
// provided for tests and wiring code that cannot fail.
package logging
