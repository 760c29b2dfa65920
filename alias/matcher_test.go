package alias

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateNamed(alias string) Candidate {
	return Candidate{
		AliasValue:     alias,
		TargetAssetKey: "db.rec.acme.public.invoices",
		ScopeType:      ScopeOrg,
		ScopeValue:     "acme",
	}
}

func TestMatchExact(t *testing.T) {
	matches := Match("Customer Invoice", []Candidate{candidateNamed("customer invoice")}, nil)
	require.Len(t, matches, 1)
	assert.Equal(t, MatchExact, matches[0].Type)
	assert.Equal(t, 1.0, matches[0].Score)
}

func TestMatchSlugNotExact(t *testing.T) {
	// Scenario: spacing differs, slug matches.
	matches := Match("Customer Invoice", []Candidate{candidateNamed("customer-invoice")}, nil)
	require.Len(t, matches, 1)
	assert.Equal(t, MatchSlug, matches[0].Type)
	assert.Equal(t, 0.95, matches[0].Score)
}

func TestMatchFuzzyIsOptIn(t *testing.T) {
	candidates := []Candidate{candidateNamed("customer-invoices")} // one char off after slugify

	// Fuzzy unset: no match at all.
	assert.Empty(t, Match("Customer Invoice", candidates, nil))
	assert.Empty(t, Match("Customer Invoice", candidates, &MatchOptions{Fuzzy: false}))

	// Fuzzy enabled: accepted, ranked below any slug score.
	matches := Match("Customer Invoice", candidates, &MatchOptions{Fuzzy: true})
	require.Len(t, matches, 1)
	assert.Equal(t, MatchFuzzy, matches[0].Type)
	assert.Less(t, matches[0].Score, 0.95)
	assert.GreaterOrEqual(t, matches[0].Score, DefaultFuzzyThreshold*fuzzyScoreScale)
}

func TestMatchNoFuzzyTypeWithoutOptIn(t *testing.T) {
	// Near-misses of every flavor; none may surface as fuzzy.
	candidates := []Candidate{
		candidateNamed("customer-invoicez"),
		candidateNamed("custmer invoice"),
		candidateNamed("customer invoice!"),
	}
	for _, m := range Match("Customer Invoice", candidates, nil) {
		assert.NotEqual(t, MatchFuzzy, m.Type)
	}
}

func TestMatchFuzzyThreshold(t *testing.T) {
	// "open invoices" vs "open-inv" is well below 0.70 similarity.
	matches := Match("open invoices", []Candidate{candidateNamed("open-inv")}, &MatchOptions{Fuzzy: true})
	assert.Empty(t, matches)

	// Loosening the threshold admits it.
	matches = Match("open invoices", []Candidate{candidateNamed("open-inv")},
		&MatchOptions{Fuzzy: true, FuzzyThreshold: 0.5})
	require.Len(t, matches, 1)
	assert.Equal(t, MatchFuzzy, matches[0].Type)
}

func TestMatchRankingAndTieBreak(t *testing.T) {
	candidates := []Candidate{
		candidateNamed("customer-invoice"),  // slug 0.95
		candidateNamed("Customer Invoice"),  // exact 1.0
		candidateNamed("customer invoicee"), // fuzzy
	}
	matches := Match("Customer Invoice", candidates, &MatchOptions{Fuzzy: true})
	require.Len(t, matches, 3)
	assert.Equal(t, MatchExact, matches[0].Type)
	assert.Equal(t, MatchSlug, matches[1].Type)
	assert.Equal(t, MatchFuzzy, matches[2].Type)

	// Equal scores break ties on alias value ascending.
	tied := Match("billing", []Candidate{
		candidateNamed("Billing"),
		candidateNamed("BILLING"),
	}, nil)
	require.Len(t, tied, 2)
	assert.Equal(t, "BILLING", tied[0].Candidate.AliasValue)
}

func TestMatchEmptyInputs(t *testing.T) {
	assert.Empty(t, Match("anything", nil, nil))
	assert.Empty(t, Match("", []Candidate{candidateNamed("x")}, &MatchOptions{Fuzzy: true}))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("invoice", "invoice"))
	assert.Equal(t, 0.0, similarity("", ""))
	assert.InDelta(t, 1.0-1.0/7.0, similarity("invoice", "invoicz"), 1e-9)
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"invoice", "invoice", 0},
		{"invoice", "invoices", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshtein(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}
