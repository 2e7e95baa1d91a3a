// Package syncer pushes list mutations to the catalog service: it
// diffs entries against known remote state, splits large progress
// jumps into incremental steps, retries rate-limited calls, and
// aggregates per-batch reports.
package syncer
