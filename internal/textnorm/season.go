package textnorm

import (
	"regexp"
	"strings"
)

// seasonMarkers match sequel/arc designators inside normalized titles:
// "season 2", "2nd season", "s3", "part 2", and trailing roman numerals
// or digits. A lone trailing "i" is left alone since many titles end
// with the pronoun.
var seasonMarkers = []*regexp.Regexp{
	regexp.MustCompile(`\bseason\s*\d+\b`),
	regexp.MustCompile(`\b\d+(?:st|nd|rd|th)\s+season\b`),
	regexp.MustCompile(`\bs\d+\b`),
	regexp.MustCompile(`\bpart\s*\d+\b`),
	regexp.MustCompile(`\s(?:ii|iii|iv|v|vi|vii|viii|ix|x)$`),
	regexp.MustCompile(`\s\d+$`),
}

// StripSeasonMarkers removes season/sequel designators from a normalized
// title. It returns the core title and whether any marker was removed.
func StripSeasonMarkers(normalized string) (string, bool) {
	stripped := normalized
	for _, re := range seasonMarkers {
		stripped = re.ReplaceAllString(stripped, " ")
	}
	stripped = strings.Join(strings.Fields(stripped), " ")
	return stripped, stripped != normalized
}
