package commands

import (
	"encoding/json"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/canonmeta/errors"
	"github.com/teranos/canonmeta/quality"
)

// QualityCmd groups quality-rule operations.
var QualityCmd = &cobra.Command{
	Use:   "quality",
	Short: "Compile quality rule packs and score check results",
	Long: `quality — Compile declarative quality rules and score check results.

Rules are declared in YAML packs. Compiling turns each rule into a SQL
template (plus an in-memory validator for field-scoped types) for an external
executor. Scoring folds executed check results into a gold/silver/bronze tier.

Examples:
  canonmeta quality compile rules.yaml
  canonmeta quality score results.json`,
}

var qualityCompileCmd = &cobra.Command{
	Use:   "compile <rules.yaml>",
	Short: "Compile a YAML rule pack and print the emitted SQL",
	Args:  cobra.ExactArgs(1),
	RunE:  runQualityCompile,
}

var qualityScoreCmd = &cobra.Command{
	Use:   "score <results.json>",
	Short: "Score executed check results into a quality tier",
	Args:  cobra.ExactArgs(1),
	RunE:  runQualityScore,
}

func init() {
	QualityCmd.AddCommand(qualityCompileCmd)
	QualityCmd.AddCommand(qualityScoreCmd)
}

func runQualityCompile(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return errors.Wrapf(err, "failed to open rule pack %s", args[0])
	}
	defer f.Close()

	pack, err := quality.LoadPack(f)
	if err != nil {
		return err
	}

	pterm.Success.Printf("Pack %q compiles: %d rules, schema %s\n",
		pack.Name, len(pack.Rules), pack.SchemaVersion)

	for i, rule := range pack.Rules {
		compiled, err := quality.Compile(rule)
		if err != nil {
			// LoadPack already compiled every rule.
			return errors.NewAssertionErrorWithWrappedErrf(err, "rule %d failed to recompile", i)
		}

		dimension, _ := quality.DimensionOf(rule.Type)
		pterm.Println()
		pterm.Info.Printf("Rule %d: %s on %s (%s, %s)\n",
			i, rule.Type, rule.TargetAssetKey, dimension, rule.Severity)
		pterm.Printf("  SQL: %s\n", compiled.SQLTemplate)
		for name, value := range compiled.TemplateParams {
			pterm.Printf("  :%s = %v\n", name, value)
		}
		if compiled.Validate != nil {
			pterm.Printf("  Validator: %s\n", compiled.ValidateError)
		}
	}
	return nil
}

func runQualityScore(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return errors.Wrapf(err, "failed to read check results %s", args[0])
	}

	var results []quality.CheckResult
	if err := json.Unmarshal(data, &results); err != nil {
		return errors.Wrap(err, "failed to decode check results")
	}

	tier := quality.ScoreTier(results)

	failed := 0
	for _, r := range results {
		if !r.Passed {
			failed++
		}
	}

	pterm.Printf("Checks: %d total, %d failed\n", len(results), failed)
	switch tier {
	case quality.TierGold:
		pterm.Success.Printf("Tier: %s\n", tier)
	case quality.TierSilver:
		pterm.Info.Printf("Tier: %s\n", tier)
	default:
		pterm.Warning.Printf("Tier: %s\n", tier)
	}
	return nil
}
