package alias

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultFuzzyThreshold is the minimum normalized similarity a fuzzy
// candidate needs before it is accepted.
const DefaultFuzzyThreshold = 0.70

// fuzzyScoreScale keeps fuzzy scores strictly below slug scores:
// a perfect fuzzy similarity still scores 0.70 < 0.95.
const fuzzyScoreScale = 0.70

// MatchOptions tunes the matching stage. Fuzzy matching is opt-in: the zero
// value performs exact and slug matching only.
type MatchOptions struct {
	// Fuzzy enables Levenshtein similarity on slugs.
	Fuzzy bool
	// FuzzyThreshold overrides DefaultFuzzyThreshold when positive.
	FuzzyThreshold float64
	// Logger, when set, receives per-call scoring and timing at debug level.
	Logger *zap.SugaredLogger
}

// Match scores candidates against free-text input.
//
// Per candidate: case-insensitive equality scores 1.0 (exact); otherwise
// slug equality scores 0.95 (slug); otherwise, only when opts.Fuzzy is set,
// normalized Levenshtein similarity between slugs at or above the threshold
// scores 0.70×similarity (fuzzy). Accepted matches are returned sorted by
// score descending with alias value as the ascending tie-break. An empty
// result is the normal no-match outcome; Match never fails.
func Match(input string, candidates []Candidate, opts *MatchOptions) []AliasMatch {
	var o MatchOptions
	if opts != nil {
		o = *opts
	}
	threshold := o.FuzzyThreshold
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}

	start := time.Now()
	trimmed := strings.TrimSpace(input)
	inputSlug := Slugify(input)

	matches := []AliasMatch{}
	for _, c := range candidates {
		switch {
		case strings.EqualFold(trimmed, c.AliasValue):
			matches = append(matches, AliasMatch{Candidate: c, Score: 1.0, Type: MatchExact})
		case inputSlug != "" && inputSlug == Slugify(c.AliasValue):
			matches = append(matches, AliasMatch{Candidate: c, Score: 0.95, Type: MatchSlug})
		case o.Fuzzy:
			sim := similarity(inputSlug, Slugify(c.AliasValue))
			if sim >= threshold {
				matches = append(matches, AliasMatch{Candidate: c, Score: fuzzyScoreScale * sim, Type: MatchFuzzy})
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Candidate.AliasValue < matches[j].Candidate.AliasValue
	})

	if o.Logger != nil {
		fields := []interface{}{
			"input", input,
			"candidates", len(candidates),
			"matches", len(matches),
			"fuzzy", o.Fuzzy,
			"time_us", time.Since(start).Microseconds(),
		}
		if len(matches) > 0 {
			fields = append(fields, "top_target", matches[0].Candidate.TargetAssetKey,
				"top_score", matches[0].Score)
		}
		o.Logger.Debugw("alias match", fields...)
	}

	return matches
}

// similarity is normalized Levenshtein similarity between two slugs:
// 1 - distance/max(len). Two empty slugs are not similar; they carry no
// signal to match on.
func similarity(a, b string) float64 {
	if a == b {
		if a == "" {
			return 0
		}
		return 1
	}
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	if longer == 0 {
		return 0
	}
	return 1 - float64(levenshtein(a, b))/float64(longer)
}

// levenshtein calculates edit distance between two strings.
func levenshtein(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}
	if s1 == s2 {
		return 0
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
	}
	for i := 0; i <= len(s1); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}
	return matrix[len(s1)][len(s2)]
}
