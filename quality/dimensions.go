package quality

import (
	"github.com/teranos/canonmeta/errors"
)

func init() {
	if err := validateDimensionMapping(); err != nil {
		panic(err)
	}
}

// validateDimensionMapping asserts the dimension→rule-type registry is a
// partition: every dimension carries at least one rule type, every declared
// rule type is claimed, and no rule type is claimed twice.
func validateDimensionMapping() error {
	claimed := make(map[RuleType]Dimension, RuleTypes.Len())
	for _, dim := range Dimensions.Values() {
		meta := Dimensions.MustMeta(dim)
		if len(meta.RuleTypes) == 0 {
			return errors.AssertionFailedf("quality dimension %q maps to no rule types", string(dim))
		}
		for _, rt := range meta.RuleTypes {
			if !RuleTypes.Has(rt) {
				return errors.AssertionFailedf("quality dimension %q claims undeclared rule type %q",
					string(dim), string(rt))
			}
			if prior, dup := claimed[rt]; dup {
				return errors.AssertionFailedf("rule type %q claimed by both %q and %q",
					string(rt), string(prior), string(dim))
			}
			claimed[rt] = dim
		}
	}
	for _, rt := range RuleTypes.Values() {
		if _, ok := claimed[rt]; !ok {
			return errors.AssertionFailedf("rule type %q is not claimed by any dimension", string(rt))
		}
	}
	return nil
}
