package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes a raw title: NFKC folding, punctuation stripping,
// whitespace collapse, and lowercasing. Empty input yields an empty string.
func Normalize(raw string) string {
	return NormalizeWithCase(raw, false)
}

// NormalizeWithCase is Normalize with optional case preservation.
func NormalizeWithCase(raw string, caseSensitive bool) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	folded := norm.NFKC.String(raw)

	var b strings.Builder
	b.Grow(len(folded))
	prevSpace := true
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if !caseSensitive {
				r = unicode.ToLower(r)
			}
			b.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.' || r == '/':
			if !prevSpace {
				b.WriteByte(' ')
				prevSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// trackerSuffixes are trailing markers some tracker exports append to manga
// titles. They are stripped case-insensitively before cache-key derivation.
var trackerSuffixes = []string{
	"(comic)",
	"(manga)",
	"(novel)",
	"(webcomic)",
	"(light novel)",
}

// CacheKey derives the normalized lookup key used by the search cache.
// It folds script-confusable characters and strips known tracker-site
// suffixes before applying Normalize, because externally sourced titles
// are noisier than catalog titles.
func CacheKey(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	lowered := strings.ToLower(trimmed)
	for _, suffix := range trackerSuffixes {
		if strings.HasSuffix(lowered, suffix) {
			trimmed = strings.TrimSpace(trimmed[:len(trimmed)-len(suffix)])
			break
		}
	}
	return Normalize(foldConfusables(trimmed))
}
