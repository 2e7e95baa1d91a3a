// Package similarity scores how alike two normalized titles are on a
// 0-100 scale. The primary signal is normalized Levenshtein distance,
// supplemented by substring containment; word-order overlap is exposed
// separately for sequel disambiguation.
package similarity
