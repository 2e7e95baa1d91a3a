// Package anilist provides the GraphQL transport and catalog types for
// the AniList API.
//
// Client.Request is the single transport primitive the rest of the
// program uses: it posts a query with variables and an optional bearer
// token, and surfaces GraphQL errors, rate limiting (HTTP 429 or an
// error message naming a wait time), and server failures as a typed
// RequestError. Network-level hiccups are retried transparently; rate
// limits never are, so callers keep control of pacing.
package anilist
