package match

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"mangasync/internal/anilist"
	"mangasync/internal/library"
	"mangasync/internal/similarity"
	"mangasync/internal/textnorm"
)

type variant struct {
	field string
	text  string
}

// ScoreMatch scores one source entry against one catalog record. The
// confidence is the best similarity over every (source variant x
// candidate variant) pair, lifted into the season band when the two
// titles share a core once sequel markers are stripped.
func ScoreMatch(source library.SourceEntry, media anilist.Media, cfg Config) Candidate {
	primary := textnorm.Normalize(source.Title)
	if utf8.RuneCountInString(primary) < cfg.MinTitleLength {
		return Candidate{Media: media, MatchedField: FieldNone}
	}

	sourceVariants := sourceVariants(primary, source, cfg)
	candidateVariants := candidateVariants(media)
	if len(candidateVariants) == 0 {
		return Candidate{Media: media, MatchedField: FieldNone}
	}

	best := Candidate{Media: media, MatchedField: FieldNone}
	for i, sv := range sourceVariants {
		for _, cv := range candidateVariants {
			score := similarity.Score(sv, cv.text)
			score = seasonAdjusted(sv, cv.text, score, cfg)

			field := cv.field
			if i > 0 {
				field = "alt_to_" + field
			}
			if score > best.Confidence || (score == best.Confidence && best.Confidence > 0 &&
				preferenceRank(field, cfg) < preferenceRank(best.MatchedField, cfg)) {
				best.Confidence = score
				best.MatchedField = field
			}
		}
	}

	best.IsExact = best.Confidence == 100
	return best
}

// FindBestMatches scores the source against every candidate, keeps the
// top cfg.MaxMatches sorted by confidence, and auto-selects the leader
// only when it clears the threshold.
func FindBestMatches(source library.SourceEntry, candidates []anilist.Media, cfg Config) Result {
	result := Result{
		Source:    source,
		Status:    StatusPending,
		MatchDate: time.Now().UTC(),
	}

	for _, media := range candidates {
		result.Candidates = append(result.Candidates, ScoreMatch(source, media, cfg))
	}
	sort.SliceStable(result.Candidates, func(i, j int) bool {
		return result.Candidates[i].Confidence > result.Candidates[j].Confidence
	})
	if cfg.MaxMatches > 0 && len(result.Candidates) > cfg.MaxMatches {
		result.Candidates = result.Candidates[:cfg.MaxMatches]
	}

	if len(result.Candidates) > 0 && result.Candidates[0].Confidence >= cfg.ConfidenceThreshold {
		selected := result.Candidates[0].Media
		result.Selected = &selected
		result.Status = StatusMatched
	}
	return result
}

// ProcessBatchMatches matches every source entry against the candidate
// list stored under its normalized title key. Entries with no candidate
// list come back pending with zero candidates rather than erroring.
func ProcessBatchMatches(sources []library.SourceEntry, candidatesByKey map[string][]anilist.Media, cfg Config) []Result {
	results := make([]Result, 0, len(sources))
	for _, source := range sources {
		candidates := candidatesByKey[textnorm.CacheKey(source.Title)]
		results = append(results, FindBestMatches(source, candidates, cfg))
	}
	return results
}

func sourceVariants(primary string, source library.SourceEntry, cfg Config) []string {
	variants := []string{primary}
	if !cfg.UseAlternativeTitles {
		return variants
	}
	seen := map[string]struct{}{primary: {}}
	for _, alt := range source.AlternativeTitles {
		normalized := textnorm.Normalize(alt)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		variants = append(variants, normalized)
	}
	return variants
}

func candidateVariants(media anilist.Media) []variant {
	var variants []variant
	add := func(field, raw string) {
		if normalized := textnorm.Normalize(raw); normalized != "" {
			variants = append(variants, variant{field: field, text: normalized})
		}
	}
	add(FieldRomaji, media.Title.Romaji)
	add(FieldEnglish, media.Title.English)
	add(FieldNative, media.Title.Native)
	for _, syn := range media.Synonyms {
		add(FieldSynonym, syn)
	}
	return variants
}

// seasonAdjusted lifts a mediocre score into the season band when both
// titles resolve to the same core after stripping sequel markers. Word
// overlap backs up the edit-distance signal for multi-word cores.
func seasonAdjusted(a, b string, score float64, cfg Config) float64 {
	if score >= cfg.SeasonBoostCeil {
		return score
	}
	coreA, strippedA := textnorm.StripSeasonMarkers(a)
	coreB, strippedB := textnorm.StripSeasonMarkers(b)
	if !strippedA && !strippedB {
		return score
	}
	if coreA == "" || coreB == "" {
		return score
	}

	core := similarity.Score(coreA, coreB)
	if order := similarity.WordOrder(coreA, coreB) * 100; order > core {
		core = order
	}
	cutoff := cfg.SeasonCoreCutoff * 100
	if core <= cutoff {
		return score
	}

	boosted := cfg.SeasonBoostFloor + (core-cutoff)/(100-cutoff)*(cfg.SeasonBoostCeil-cfg.SeasonBoostFloor)
	if boosted > score {
		return boosted
	}
	return score
}

// preferenceRank orders matched fields so language preference breaks
// score ties. Lower is preferred.
func preferenceRank(field string, cfg Config) int {
	base := strings.TrimPrefix(field, "alt_to_")
	switch {
	case cfg.PreferEnglishTitles && base == FieldEnglish:
		return 0
	case cfg.PreferRomajiTitles && base == FieldRomaji:
		return 0
	}
	return 1
}
