package quality

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/teranos/canonmeta/assetkey"
	"github.com/teranos/canonmeta/errors"
)

// CompiledRule is the executable form of one Rule.
//
// SQLTemplate is a parameterized query counting violating rows: identifiers
// are spliced in at compile time after validation, values stay behind named
// placeholders (":name") resolved from TemplateParams by the external
// executor. A result of zero rows/zero count means the rule passed.
//
// Validate is present only for field-scoped rule types; it checks one value
// in memory without a query engine. ValidateError describes the failure for
// caller-facing messages.
type CompiledRule struct {
	Rule          Rule
	SQLTemplate   string
	TemplateParams map[string]any
	Validate      func(value any) bool
	ValidateError string
}

// Compile turns a declarative rule into its executable form.
//
// Column-scoped rule types require a column target key (db.field...);
// aggregate types require a table target key (db.rec...). The switch over
// rule types is exhaustive: an undeclared type fails fast before the switch
// and a declared-but-unhandled one is an assertion failure.
func Compile(rule Rule) (*CompiledRule, error) {
	if !RuleTypes.Has(rule.Type) {
		return nil, errors.Wrapf(errors.ErrUnknownEnumValue, "quality_rule_type: %q", string(rule.Type))
	}
	if !Severities.Has(rule.Severity) {
		return nil, errors.Wrapf(errors.ErrUnknownEnumValue, "quality_severity: %q", string(rule.Severity))
	}

	switch rule.Type {
	case RuleNotNull:
		return compileNotNull(rule)
	case RuleRange:
		return compileRange(rule)
	case RuleRegex:
		return compileRegex(rule)
	case RuleEnumSet:
		return compileEnumSet(rule)
	case RuleUnique:
		return compileUnique(rule)
	case RuleFKExists:
		return compileFKExists(rule)
	case RuleSumMatchesTotal:
		return compileSumMatchesTotal(rule)
	case RuleDebitsEqualCredits:
		return compileDebitsEqualCredits(rule)
	default:
		return nil, errors.AssertionFailedf("declared rule type %q has no compiler", string(rule.Type))
	}
}

// columnTarget resolves a rule's target to quoted table and column
// identifiers. The target must be a column key.
func columnTarget(rule Rule) (table, column string, err error) {
	parsed, err := assetkey.Parse(rule.TargetAssetKey)
	if err != nil {
		return "", "", err
	}
	if parsed.Type != assetkey.TypeColumn {
		return "", "", errors.Newf("%s rule requires a column target, got %s key %q",
			string(rule.Type), string(parsed.Type), parsed.Key)
	}
	// db.field.<org>.<schema>.<table>.<column>
	table, err = sqlIdent(parsed.Segments[1], parsed.Segments[2])
	if err != nil {
		return "", "", err
	}
	column, err = sqlIdent(parsed.Segments[3])
	return table, column, err
}

// tableTarget resolves a rule's target to a quoted table identifier.
// The target must be a table key.
func tableTarget(rule Rule) (string, error) {
	parsed, err := assetkey.Parse(rule.TargetAssetKey)
	if err != nil {
		return "", err
	}
	if parsed.Type != assetkey.TypeTable {
		return "", errors.Newf("%s rule requires a table target, got %s key %q",
			string(rule.Type), string(parsed.Type), parsed.Key)
	}
	// db.rec.<org>.<schema>.<table>
	return sqlIdent(parsed.Segments[1], parsed.Segments[2])
}

var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// sqlIdent quotes one or more identifier parts after validating their
// charset. Identifiers are spliced into SQL text, so anything outside the
// conservative pattern is rejected outright.
func sqlIdent(parts ...string) (string, error) {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		if !identPattern.MatchString(p) {
			return "", errors.Newf("unsafe SQL identifier %q", p)
		}
		quoted[i] = `"` + p + `"`
	}
	return strings.Join(quoted, "."), nil
}

func compileNotNull(rule Rule) (*CompiledRule, error) {
	table, column, err := columnTarget(rule)
	if err != nil {
		return nil, err
	}
	return &CompiledRule{
		Rule: rule,
		SQLTemplate: fmt.Sprintf(
			"SELECT COUNT(*) AS failed FROM %s WHERE %s IS NULL", table, column),
		TemplateParams: map[string]any{},
		Validate: func(value any) bool {
			if value == nil {
				return false
			}
			if s, ok := value.(string); ok {
				return s != ""
			}
			return true
		},
		ValidateError: "value must not be null or empty",
	}, nil
}

func compileRange(rule Rule) (*CompiledRule, error) {
	table, column, err := columnTarget(rule)
	if err != nil {
		return nil, err
	}
	min, hasMin, err := configFloat(rule, "min")
	if err != nil {
		return nil, err
	}
	max, hasMax, err := configFloat(rule, "max")
	if err != nil {
		return nil, err
	}
	if !hasMin && !hasMax {
		return nil, errors.Newf("range rule on %q needs at least one of config.min/config.max", rule.TargetAssetKey)
	}

	conds := []string{}
	params := map[string]any{}
	if hasMin {
		conds = append(conds, fmt.Sprintf("%s < :min", column))
		params["min"] = min
	}
	if hasMax {
		conds = append(conds, fmt.Sprintf("%s > :max", column))
		params["max"] = max
	}

	return &CompiledRule{
		Rule: rule,
		SQLTemplate: fmt.Sprintf(
			"SELECT COUNT(*) AS failed FROM %s WHERE %s", table, strings.Join(conds, " OR ")),
		TemplateParams: params,
		Validate: func(value any) bool {
			f, ok := toFloat(value)
			if !ok {
				return false
			}
			if hasMin && f < min {
				return false
			}
			if hasMax && f > max {
				return false
			}
			return true
		},
		ValidateError: "value must be numeric and within the configured bounds",
	}, nil
}

func compileRegex(rule Rule) (*CompiledRule, error) {
	table, column, err := columnTarget(rule)
	if err != nil {
		return nil, err
	}
	pattern, ok, err := configString(rule, "pattern")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Newf("regex rule on %q needs config.pattern", rule.TargetAssetKey)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "regex rule on %q has invalid pattern", rule.TargetAssetKey)
	}

	return &CompiledRule{
		Rule: rule,
		SQLTemplate: fmt.Sprintf(
			"SELECT COUNT(*) AS failed FROM %s WHERE %s IS NOT NULL AND %s !~ :pattern",
			table, column, column),
		TemplateParams: map[string]any{"pattern": pattern},
		Validate: func(value any) bool {
			return re.MatchString(fmt.Sprint(value))
		},
		ValidateError: fmt.Sprintf("value must match pattern %s", pattern),
	}, nil
}

func compileEnumSet(rule Rule) (*CompiledRule, error) {
	table, column, err := columnTarget(rule)
	if err != nil {
		return nil, err
	}
	values, err := configStrings(rule, "values")
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, errors.Newf("enum_set rule on %q needs a non-empty config.values", rule.TargetAssetKey)
	}
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}

	return &CompiledRule{
		Rule: rule,
		SQLTemplate: fmt.Sprintf(
			"SELECT COUNT(*) AS failed FROM %s WHERE %s IS NOT NULL AND %s NOT IN (:values)",
			table, column, column),
		TemplateParams: map[string]any{"values": values},
		Validate: func(value any) bool {
			_, ok := allowed[fmt.Sprint(value)]
			return ok
		},
		ValidateError: fmt.Sprintf("value must be one of %s", strings.Join(values, ", ")),
	}, nil
}

func compileUnique(rule Rule) (*CompiledRule, error) {
	table, column, err := columnTarget(rule)
	if err != nil {
		return nil, err
	}
	return &CompiledRule{
		Rule: rule,
		SQLTemplate: fmt.Sprintf(
			"SELECT %s AS dup_value, COUNT(*) AS occurrences FROM %s GROUP BY %s HAVING COUNT(*) > 1",
			column, table, column),
		TemplateParams: map[string]any{},
	}, nil
}

func compileFKExists(rule Rule) (*CompiledRule, error) {
	table, column, err := columnTarget(rule)
	if err != nil {
		return nil, err
	}
	refKey, ok, err := configString(rule, "ref")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Newf("fk_exists rule on %q needs config.ref (a column key)", rule.TargetAssetKey)
	}
	refTable, refColumn, err := columnTarget(Rule{Type: rule.Type, TargetAssetKey: refKey})
	if err != nil {
		return nil, errors.Wrapf(err, "fk_exists rule on %q has invalid config.ref", rule.TargetAssetKey)
	}

	return &CompiledRule{
		Rule: rule,
		SQLTemplate: fmt.Sprintf(
			"SELECT COUNT(*) AS failed FROM %s t LEFT JOIN %s r ON t.%s = r.%s "+
				"WHERE t.%s IS NOT NULL AND r.%s IS NULL",
			table, refTable, column, refColumn, column, refColumn),
		TemplateParams: map[string]any{},
	}, nil
}

func compileSumMatchesTotal(rule Rule) (*CompiledRule, error) {
	table, err := tableTarget(rule)
	if err != nil {
		return nil, err
	}
	groupBy, detail, total, err := aggregateColumns(rule, "detail_column", "total_column")
	if err != nil {
		return nil, err
	}

	return &CompiledRule{
		Rule: rule,
		SQLTemplate: fmt.Sprintf(
			"SELECT COUNT(*) AS failed FROM "+
				"(SELECT %s, SUM(%s) AS detail_sum, MAX(%s) AS total FROM %s GROUP BY %s) d "+
				"WHERE d.detail_sum <> d.total",
			groupBy, detail, total, table, groupBy),
		TemplateParams: map[string]any{},
	}, nil
}

func compileDebitsEqualCredits(rule Rule) (*CompiledRule, error) {
	table, err := tableTarget(rule)
	if err != nil {
		return nil, err
	}
	groupBy, debit, credit, err := aggregateColumns(rule, "debit_column", "credit_column")
	if err != nil {
		return nil, err
	}

	return &CompiledRule{
		Rule: rule,
		SQLTemplate: fmt.Sprintf(
			"SELECT COUNT(*) AS failed FROM "+
				"(SELECT %s, SUM(%s) AS debits, SUM(%s) AS credits FROM %s GROUP BY %s) j "+
				"WHERE j.debits <> j.credits",
			groupBy, debit, credit, table, groupBy),
		TemplateParams: map[string]any{},
	}, nil
}

// aggregateColumns reads the group_by column plus two named amount columns
// from rule config and returns them as quoted identifiers.
func aggregateColumns(rule Rule, aKey, bKey string) (groupBy, a, b string, err error) {
	for _, req := range []struct {
		key string
		dst *string
	}{
		{"group_by", &groupBy},
		{aKey, &a},
		{bKey, &b},
	} {
		raw, ok, cfgErr := configString(rule, req.key)
		if cfgErr != nil {
			return "", "", "", cfgErr
		}
		if !ok {
			return "", "", "", errors.Newf("%s rule on %q needs config.%s",
				string(rule.Type), rule.TargetAssetKey, req.key)
		}
		ident, identErr := sqlIdent(raw)
		if identErr != nil {
			return "", "", "", identErr
		}
		*req.dst = ident
	}
	return groupBy, a, b, nil
}

func configString(rule Rule, key string) (string, bool, error) {
	raw, ok := rule.Config[key]
	if !ok {
		return "", false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", false, errors.Newf("%s rule config.%s must be a string, got %T",
			string(rule.Type), key, raw)
	}
	return s, true, nil
}

func configFloat(rule Rule, key string) (float64, bool, error) {
	raw, ok := rule.Config[key]
	if !ok {
		return 0, false, nil
	}
	f, ok := toFloat(raw)
	if !ok {
		return 0, false, errors.Newf("%s rule config.%s must be numeric, got %T",
			string(rule.Type), key, raw)
	}
	return f, true, nil
}

func configStrings(rule Rule, key string) ([]string, error) {
	raw, ok := rule.Config[key]
	if !ok {
		return nil, nil
	}
	switch vals := raw.(type) {
	case []string:
		return vals, nil
	case []any:
		out := make([]string, 0, len(vals))
		for _, v := range vals {
			s, ok := v.(string)
			if !ok {
				return nil, errors.Newf("%s rule config.%s must hold strings, got %T",
					string(rule.Type), key, v)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, errors.Newf("%s rule config.%s must be a list, got %T",
			string(rule.Type), key, raw)
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
