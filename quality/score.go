package quality

// ScoreTier reduces a batch of check results into one tier.
//
// The reduction is a pure function of the multiset of (passed, severity)
// pairs; result order never affects the outcome:
//
//   - no results        → silver (no evidence either way)
//   - any failed error   → bronze
//   - any failed warning → silver
//   - otherwise          → gold
//
// Failed info-severity checks do not lower the tier.
func ScoreTier(results []CheckResult) Tier {
	if len(results) == 0 {
		return TierSilver
	}

	anyErrorFailed := false
	anyWarningFailed := false
	for _, r := range results {
		if r.Passed {
			continue
		}
		switch r.Rule.Severity {
		case SeverityError:
			anyErrorFailed = true
		case SeverityWarning:
			anyWarningFailed = true
		}
	}

	switch {
	case anyErrorFailed:
		return TierBronze
	case anyWarningFailed:
		return TierSilver
	default:
		return TierGold
	}
}
