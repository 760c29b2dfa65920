// Package quality compiles declarative data-quality rules into executable
// checks and reduces check outcomes into an ordinal quality tier.
//
// The model is two-layer: business dimensions (completeness, validity, ...)
// map onto executable rule types (not_null, range, ...) through a fixed
// registry validated at init. Compilation emits a SQL template for an
// external query engine and, for field-scoped rule types, an in-memory
// validator usable without one.
package quality

import (
	"time"

	"github.com/teranos/canonmeta/enumkit"
)

// Dimension is a business-facing quality dimension.
type Dimension string

// Declared dimensions.
const (
	DimCompleteness Dimension = "completeness"
	DimValidity     Dimension = "validity"
	DimUniqueness   Dimension = "uniqueness"
	DimConsistency  Dimension = "consistency"
	DimAccuracy     Dimension = "accuracy"
)

// RuleType is an executable rule kind.
type RuleType string

// Declared rule types.
const (
	RuleNotNull            RuleType = "not_null"
	RuleUnique             RuleType = "unique"
	RuleRange              RuleType = "range"
	RuleRegex              RuleType = "regex"
	RuleFKExists           RuleType = "fk_exists"
	RuleEnumSet            RuleType = "enum_set"
	RuleSumMatchesTotal    RuleType = "sum_matches_total"
	RuleDebitsEqualCredits RuleType = "debits_equal_credits"
)

// Severity grades how a failed check affects the tier.
type Severity string

// Declared severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Tier is the ordinal quality grade of an asset.
type Tier string

// Declared tiers.
const (
	TierGold   Tier = "gold"
	TierSilver Tier = "silver"
	TierBronze Tier = "bronze"
)

// DimensionMeta is the registry metadata for one dimension.
type DimensionMeta struct {
	Label string
	// RuleTypes are the executable kinds that measure this dimension.
	RuleTypes []RuleType
}

// RuleTypeMeta is the registry metadata for one rule type.
type RuleTypeMeta struct {
	Label string
	// FieldScoped rule types can be evaluated against a single value
	// in memory; row-set-scoped types require a query engine.
	FieldScoped bool
}

// SeverityMeta is the registry metadata for one severity.
type SeverityMeta struct {
	Label string
	Rank  int // higher is more severe
}

// TierMeta is the registry metadata for one tier.
type TierMeta struct {
	Label string
	Rank  int // higher is better
}

// Dimensions is the dimension registry. Its rule-type lists partition the
// declared rule types; see dimensions.go for the init assertion.
var Dimensions = enumkit.New("quality_dimension", []enumkit.Entry[Dimension, DimensionMeta]{
	{Value: DimCompleteness, Meta: DimensionMeta{Label: "Completeness", RuleTypes: []RuleType{RuleNotNull}}},
	{Value: DimValidity, Meta: DimensionMeta{Label: "Validity", RuleTypes: []RuleType{RuleRange, RuleRegex, RuleEnumSet}}},
	{Value: DimUniqueness, Meta: DimensionMeta{Label: "Uniqueness", RuleTypes: []RuleType{RuleUnique}}},
	{Value: DimConsistency, Meta: DimensionMeta{Label: "Consistency", RuleTypes: []RuleType{RuleFKExists, RuleDebitsEqualCredits}}},
	{Value: DimAccuracy, Meta: DimensionMeta{Label: "Accuracy", RuleTypes: []RuleType{RuleSumMatchesTotal}}},
})

// RuleTypes is the rule type registry.
var RuleTypes = enumkit.New("quality_rule_type", []enumkit.Entry[RuleType, RuleTypeMeta]{
	{Value: RuleNotNull, Meta: RuleTypeMeta{Label: "Not Null", FieldScoped: true}},
	{Value: RuleUnique, Meta: RuleTypeMeta{Label: "Unique"}},
	{Value: RuleRange, Meta: RuleTypeMeta{Label: "Range", FieldScoped: true}},
	{Value: RuleRegex, Meta: RuleTypeMeta{Label: "Regex", FieldScoped: true}},
	{Value: RuleFKExists, Meta: RuleTypeMeta{Label: "Foreign Key Exists"}},
	{Value: RuleEnumSet, Meta: RuleTypeMeta{Label: "Enum Set", FieldScoped: true}},
	{Value: RuleSumMatchesTotal, Meta: RuleTypeMeta{Label: "Sum Matches Total"}},
	{Value: RuleDebitsEqualCredits, Meta: RuleTypeMeta{Label: "Debits Equal Credits"}},
})

// Severities is the severity registry.
var Severities = enumkit.New("quality_severity", []enumkit.Entry[Severity, SeverityMeta]{
	{Value: SeverityError, Meta: SeverityMeta{Label: "Error", Rank: 3}},
	{Value: SeverityWarning, Meta: SeverityMeta{Label: "Warning", Rank: 2}},
	{Value: SeverityInfo, Meta: SeverityMeta{Label: "Info", Rank: 1}},
})

// Tiers is the tier registry.
var Tiers = enumkit.New("quality_tier", []enumkit.Entry[Tier, TierMeta]{
	{Value: TierGold, Meta: TierMeta{Label: "Gold", Rank: 3}},
	{Value: TierSilver, Meta: TierMeta{Label: "Silver", Rank: 2}},
	{Value: TierBronze, Meta: TierMeta{Label: "Bronze", Rank: 1}},
})

// Rule is one declarative quality rule against a cataloged asset.
type Rule struct {
	Type           RuleType       `json:"ruleType" yaml:"type"`
	TargetAssetKey string         `json:"targetAssetKey" yaml:"target"`
	Config         map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
	Severity       Severity       `json:"severity" yaml:"severity"`
}

// CheckResult is the outcome of executing one compiled rule, produced by an
// external execution engine and fed back into the scorer.
type CheckResult struct {
	Rule        Rule      `json:"rule"`
	Passed      bool      `json:"passed"`
	FailedCount int64     `json:"failedCount,omitempty"`
	TotalCount  int64     `json:"totalCount,omitempty"`
	CheckedAt   time.Time `json:"checkedAt"`
}

// DimensionOf returns the dimension a rule type measures.
func DimensionOf(rt RuleType) (Dimension, bool) {
	for _, dim := range Dimensions.Values() {
		for _, t := range Dimensions.MustMeta(dim).RuleTypes {
			if t == rt {
				return dim, true
			}
		}
	}
	return "", false
}
