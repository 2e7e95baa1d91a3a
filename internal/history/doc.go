// Package history persists sync reports to a bounded, newest-first
// store backed by SQLite.
package history
