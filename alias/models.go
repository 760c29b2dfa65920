// Package alias matches free-text human input against alias candidates and
// resolves the best-matching asset key with a full decision trace.
//
// Resolution is two-stage: Match scores candidates against the input
// (exact, slug, optionally fuzzy), then Resolve applies caller-supplied
// scope rules against a request context and picks a deterministic winner.
package alias

import (
	"time"

	"github.com/teranos/canonmeta/enumkit"
)

// ScopeType is the tenancy boundary an alias is defined within.
type ScopeType string

// Declared scope types.
const (
	ScopeOrg     ScopeType = "org"
	ScopeTeam    ScopeType = "team"
	ScopeRole    ScopeType = "role"
	ScopeUser    ScopeType = "user"
	ScopeLocale  ScopeType = "locale"
	ScopeAppArea ScopeType = "app_area"
)

// ScopeMeta is the registry metadata for one scope type.
type ScopeMeta struct {
	Label string
	// Specificity is the tie-break weight: a user-scoped alias beats a
	// role-scoped one when candidates otherwise tie.
	Specificity int
}

// Scopes is the scope type registry.
var Scopes = enumkit.New("alias_scope", []enumkit.Entry[ScopeType, ScopeMeta]{
	{Value: ScopeUser, Meta: ScopeMeta{Label: "User", Specificity: 60}},
	{Value: ScopeRole, Meta: ScopeMeta{Label: "Role", Specificity: 50}},
	{Value: ScopeTeam, Meta: ScopeMeta{Label: "Team", Specificity: 40}},
	{Value: ScopeOrg, Meta: ScopeMeta{Label: "Org", Specificity: 30}},
	{Value: ScopeLocale, Meta: ScopeMeta{Label: "Locale", Specificity: 20}},
	{Value: ScopeAppArea, Meta: ScopeMeta{Label: "App Area", Specificity: 10}},
})

// Candidate is one alias record from the catalog's alias store. Immutable
// here; produced and owned by the external store.
type Candidate struct {
	AliasValue     string    `json:"aliasValue" toml:"alias"`
	TargetAssetKey string    `json:"targetAssetKey" toml:"target"`
	ScopeType      ScopeType `json:"scopeType" toml:"scope_type"`
	ScopeValue     string    `json:"scopeValue" toml:"scope_value"`
	Priority       int       `json:"priority" toml:"priority"`
}

// MatchType classifies how a candidate matched the input.
type MatchType string

// Declared match types. MatchSynonym is produced by upstream glossary
// expansion in the alias store, never by Match itself.
const (
	MatchExact   MatchType = "exact"
	MatchSlug    MatchType = "slug"
	MatchSynonym MatchType = "synonym"
	MatchFuzzy   MatchType = "fuzzy"
)

// Match is one scored candidate for a single resolution call.
type AliasMatch struct {
	Candidate Candidate `json:"candidate"`
	Score     float64   `json:"score"`
	Type      MatchType `json:"matchType"`
}

// Context carries the caller's identity for scope filtering. Team scope
// matches TeamID, never OrgID.
type Context struct {
	OrgID   string   `json:"orgId"`
	TeamID  string   `json:"teamId"`
	UserID  string   `json:"userId"`
	Roles   []string `json:"roles"`
	Locale  string   `json:"locale"`
	AppArea string   `json:"appArea,omitempty"`
}

// HasRole reports whether the context carries the given role.
func (c Context) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Rule is one composable resolution policy step. Rules are applied in
// descending Priority order; each filters the working match set to
// scope-aligned candidates that also satisfy Predicate (nil means no extra
// constraint).
type Rule struct {
	Name      string
	Priority  int
	Predicate func(Candidate, Context) bool
}

// TraceStep records one rule application within a resolution call.
type TraceStep struct {
	Rule       string        `json:"rule"`
	Candidates int           `json:"candidates"`
	Winner     string        `json:"winner,omitempty"` // winning target asset key, empty if none
	Elapsed    time.Duration `json:"elapsed"`
}

// Result is the outcome of one resolution call. A nil Winner is the normal
// "no resolution" outcome, not an error.
type Result struct {
	Winner     *AliasMatch  `json:"winner"`
	Trace      []TraceStep  `json:"trace"`
	AllMatches []AliasMatch `json:"allMatches"`
}

// DefaultRules returns one rule per scope type in specificity order plus a
// catch-all, so callers without bespoke policy get specificity-ranked
// resolution out of the box.
func DefaultRules() []Rule {
	rules := make([]Rule, 0, Scopes.Len()+1)
	for _, st := range Scopes.Values() {
		scope := st
		rules = append(rules, Rule{
			Name:     string(scope) + "-scope",
			Priority: Scopes.MustMeta(scope).Specificity,
			Predicate: func(c Candidate, _ Context) bool {
				return c.ScopeType == scope
			},
		})
	}
	rules = append(rules, Rule{Name: "any-scope", Priority: 0})
	return rules
}
