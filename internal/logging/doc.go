// Package logging wires log/slog into mangasync.
//
// It builds loggers from configuration (console or JSON format, shared
// level parsing, optional log file output) and exposes small helpers so
// call sites attach attributes consistently: typed Attr constructors, a
// component convention for per-subsystem loggers, and a no-op logger for
// tests.
package logging
