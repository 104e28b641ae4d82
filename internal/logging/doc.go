// Package logging assembles structured slog loggers used by the catalog
// service and CLI.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so service code tags log lines with
// the video and operation being processed. NewNop gives tests and wiring code
// a logger that cannot fail.
package logging
