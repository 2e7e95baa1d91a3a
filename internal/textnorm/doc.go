// Package textnorm canonicalizes manga titles for comparison.
//
// Normalize is the single normalization rule shared by the match engine
// and the search cache key derivation, so equivalent spellings of a title
// always collide. CacheKey layers confusable-character folding and
// tracker-site suffix stripping on top for noisy community-sourced
// titles. Season-marker helpers support sequel disambiguation.
package textnorm
