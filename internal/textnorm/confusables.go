package textnorm

import "strings"

// confusables maps visually similar non-Latin letters to their Latin
// equivalents. Community-sourced titles occasionally carry Cyrillic or
// Greek look-alikes that defeat byte-level comparison.
var confusables = map[rune]rune{
	// Cyrillic
	'а': 'a', 'А': 'A',
	'в': 'b', 'В': 'B',
	'е': 'e', 'Е': 'E',
	'к': 'k', 'К': 'K',
	'м': 'm', 'М': 'M',
	'н': 'h', 'Н': 'H',
	'о': 'o', 'О': 'O',
	'р': 'p', 'Р': 'P',
	'с': 'c', 'С': 'C',
	'т': 't', 'Т': 'T',
	'у': 'y', 'У': 'Y',
	'х': 'x', 'Х': 'X',
	'і': 'i', 'І': 'I',
	// Greek
	'α': 'a', 'Α': 'A',
	'β': 'b', 'Β': 'B',
	'ε': 'e', 'Ε': 'E',
	'ο': 'o', 'Ο': 'O',
	'ρ': 'p', 'Ρ': 'P',
	'τ': 't', 'Τ': 'T',
	'υ': 'u', 'Υ': 'Y',
	'χ': 'x', 'Χ': 'X',
}

func foldConfusables(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if latin, ok := confusables[r]; ok {
			r = latin
		}
		b.WriteRune(r)
	}
	return b.String()
}
