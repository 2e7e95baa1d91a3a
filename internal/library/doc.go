// Package library models the user's imported manga reading list.
//
// A SourceEntry is one record from a third-party tracker export. Entries
// are read-only inputs to a matching/sync run: the loader validates them
// once at import time and downstream packages never mutate them.
package library
