package match

import "mangasync/internal/config"

// Config holds the thresholds and preferences the engine scores with.
// The season constants are empirically tuned defaults rather than
// contractual values.
type Config struct {
	// ConfidenceThreshold is the minimum top-candidate confidence for an
	// entry to be auto-matched instead of left pending.
	ConfidenceThreshold float64
	// MaxMatches bounds how many candidates a result retains.
	MaxMatches int
	// MinTitleLength skips scoring entirely for very short primary
	// titles, which would otherwise collide with unrelated works.
	MinTitleLength int
	// UseAlternativeTitles includes the source entry's alternative
	// titles in the variant set.
	UseAlternativeTitles bool
	PreferEnglishTitles  bool
	PreferRomajiTitles   bool

	// SeasonCoreCutoff is the 0-1 core-title similarity two titles must
	// reach, after season markers are stripped, to count as the same
	// series.
	SeasonCoreCutoff float64
	// SeasonBoostFloor and SeasonBoostCeil bound the confidence band a
	// same-series pair is lifted into. The ceiling stays below an exact
	// hit so a different arc never auto-matches at full confidence.
	SeasonBoostFloor float64
	SeasonBoostCeil  float64
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		ConfidenceThreshold:  72,
		MaxMatches:           5,
		MinTitleLength:       3,
		UseAlternativeTitles: true,
		SeasonCoreCutoff:     0.85,
		SeasonBoostFloor:     80,
		SeasonBoostCeil:      90,
	}
}

// FromMatcher builds an engine config from the application matcher
// settings, keeping engine defaults for anything the file does not
// expose.
func FromMatcher(m config.Matcher) Config {
	cfg := DefaultConfig()
	if m.ConfidenceThreshold > 0 {
		cfg.ConfidenceThreshold = m.ConfidenceThreshold
	}
	if m.MaxMatches > 0 {
		cfg.MaxMatches = m.MaxMatches
	}
	if m.MinTitleLength > 0 {
		cfg.MinTitleLength = m.MinTitleLength
	}
	cfg.UseAlternativeTitles = m.UseAlternativeTitles
	cfg.PreferEnglishTitles = m.PreferEnglishTitles
	cfg.PreferRomajiTitles = m.PreferRomajiTitles
	return cfg
}
