package similarity

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// lengthMismatchScore is returned when two titles differ in length by more
// than half. Titles that far apart in size are assumed unrelated and the
// full edit-distance comparison is skipped.
const lengthMismatchScore = 20.0

// wordOrderPenalty discounts common-word overlap when the shared words
// appear in a different relative order.
const wordOrderPenalty = 0.7

// Score computes a 0-100 similarity between two titles. Inputs are
// expected to be pre-normalized (see textnorm.Normalize); identical
// strings score 100 and an empty side scores 0.
func Score(a, b string) float64 {
	if a == b {
		if a == "" {
			return 0
		}
		return 100
	}
	if a == "" || b == "" {
		return 0
	}

	lenA := utf8.RuneCountInString(a)
	lenB := utf8.RuneCountInString(b)
	shorter, longer := lenA, lenB
	if shorter > longer {
		shorter, longer = longer, shorter
	}

	// Containment is rewarded on its own: a short title fully contained in
	// a longer one scores the length ratio regardless of edit distance.
	contained := 0.0
	if strings.Contains(a, b) || strings.Contains(b, a) {
		contained = float64(shorter) / float64(longer) * 100
	}

	base := lengthMismatchScore
	if float64(shorter)/float64(longer) >= 0.5 {
		dist := levenshtein.ComputeDistance(a, b)
		base = (1 - float64(dist)/float64(longer)) * 100
	}

	return clamp(max(base, contained))
}

// WordOrder computes the 0-1 fraction of words shared between two titles,
// penalized when the shared words appear in a different relative order.
// It is a supplementary signal for season and part detection, not a
// replacement for Score.
func WordOrder(a, b string) float64 {
	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	setB := make(map[string]struct{}, len(wordsB))
	for _, w := range wordsB {
		setB[w] = struct{}{}
	}

	var commonA []string
	for _, w := range wordsA {
		if _, ok := setB[w]; ok {
			commonA = append(commonA, w)
		}
	}
	if len(commonA) == 0 {
		return 0
	}

	longest := len(wordsA)
	if len(wordsB) > longest {
		longest = len(wordsB)
	}
	fraction := float64(len(commonA)) / float64(longest)

	if !sameRelativeOrder(commonA, wordsB) {
		fraction *= wordOrderPenalty
	}
	if fraction > 1 {
		fraction = 1
	}
	return fraction
}

// sameRelativeOrder reports whether the words of subset appear in other in
// the same sequence.
func sameRelativeOrder(subset, other []string) bool {
	idx := 0
	for _, w := range other {
		if idx < len(subset) && w == subset[idx] {
			idx++
		}
	}
	return idx == len(subset)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
