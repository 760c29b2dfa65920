package alias

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

// ResolveOptions tunes the resolution stage.
type ResolveOptions struct {
	// MinConfidence drops matches scoring below it before rules apply.
	MinConfidence float64
	// Logger, when set, receives per-rule timing at debug level.
	Logger *zap.SugaredLogger
}

// Resolve picks a single winner from scored matches by applying rules in
// descending priority order against the caller's context.
//
// The match set is re-sorted into a total order independent of input order:
// score descending, candidate priority descending, scope specificity
// descending, target asset key ascending, alias value ascending. Each rule
// filters the working set to candidates whose scope aligns with the context
// and that satisfy the rule's predicate; the first rule whose filtered set
// is non-empty yields the winner (its first candidate). One trace step is
// recorded per rule evaluated.
//
// A nil winner with a populated trace is the normal no-resolution outcome;
// Resolve never fails.
func Resolve(matches []AliasMatch, rules []Rule, rctx Context, opts *ResolveOptions) Result {
	var o ResolveOptions
	if opts != nil {
		o = *opts
	}

	sorted := make([]AliasMatch, len(matches))
	copy(sorted, matches)
	sort.Slice(sorted, func(i, j int) bool {
		return matchLess(sorted[i], sorted[j])
	})

	if o.MinConfidence > 0 {
		kept := sorted[:0]
		for _, m := range sorted {
			if m.Score >= o.MinConfidence {
				kept = append(kept, m)
			}
		}
		sorted = kept
	}

	ordered := make([]Rule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority > ordered[j].Priority
		}
		return ordered[i].Name < ordered[j].Name
	})

	result := Result{AllMatches: sorted, Trace: make([]TraceStep, 0, len(ordered))}

	for _, rule := range ordered {
		start := time.Now()

		var ruleWinner *AliasMatch
		for i := range sorted {
			m := sorted[i]
			if !scopeAligned(m.Candidate, rctx) {
				continue
			}
			if rule.Predicate != nil && !rule.Predicate(m.Candidate, rctx) {
				continue
			}
			ruleWinner = &m
			break
		}

		step := TraceStep{
			Rule:       rule.Name,
			Candidates: len(sorted),
			Elapsed:    time.Since(start),
		}
		if ruleWinner != nil {
			step.Winner = ruleWinner.Candidate.TargetAssetKey
		}
		result.Trace = append(result.Trace, step)

		if ruleWinner != nil {
			result.Winner = ruleWinner
			break
		}
	}

	if o.Logger != nil {
		fields := []interface{}{
			"matches", len(sorted),
			"rules", len(ordered),
			"steps", len(result.Trace),
			"resolved", result.Winner != nil,
		}
		if result.Winner != nil {
			fields = append(fields, "winner", result.Winner.Candidate.TargetAssetKey,
				"winning_rule", result.Trace[len(result.Trace)-1].Rule)
		}
		o.Logger.Debugw("alias resolve", fields...)
	}

	return result
}

// matchLess is the total order over matches: score desc, candidate priority
// desc, scope specificity desc, target asset key asc, alias value asc.
// Total ordering makes resolution independent of input permutation.
func matchLess(a, b AliasMatch) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Candidate.Priority != b.Candidate.Priority {
		return a.Candidate.Priority > b.Candidate.Priority
	}
	sa, sb := specificity(a.Candidate.ScopeType), specificity(b.Candidate.ScopeType)
	if sa != sb {
		return sa > sb
	}
	if a.Candidate.TargetAssetKey != b.Candidate.TargetAssetKey {
		return a.Candidate.TargetAssetKey < b.Candidate.TargetAssetKey
	}
	return a.Candidate.AliasValue < b.Candidate.AliasValue
}

func specificity(st ScopeType) int {
	meta, ok := Scopes.Meta(st)
	if !ok {
		return 0
	}
	return meta.Specificity
}

// scopeAligned reports whether a candidate's scope admits the context.
// Org-scoped aliases are visible to everyone in the tenant; the narrower
// scopes require the matching context field. Undeclared scope types fail
// closed.
func scopeAligned(c Candidate, rctx Context) bool {
	switch c.ScopeType {
	case ScopeOrg:
		return true
	case ScopeTeam:
		return rctx.TeamID != "" && c.ScopeValue == rctx.TeamID
	case ScopeRole:
		return rctx.HasRole(c.ScopeValue)
	case ScopeUser:
		return rctx.UserID != "" && c.ScopeValue == rctx.UserID
	case ScopeLocale:
		return rctx.Locale != "" && c.ScopeValue == rctx.Locale
	case ScopeAppArea:
		return rctx.AppArea != "" && c.ScopeValue == rctx.AppArea
	default:
		return false
	}
}
