// Package search wraps catalog title search behind a normalized-key
// cache with TTL expiry, bypass, and targeted invalidation.
package search
