package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/canonmeta/alias"
	"github.com/teranos/canonmeta/config"
	"github.com/teranos/canonmeta/errors"
	"github.com/teranos/canonmeta/logger"
)

// AliasCmd groups alias resolution operations.
var AliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Resolve human-readable aliases against an alias pack",
	Long: `alias — Resolve human-readable names onto canonical asset keys.

Candidates come from a TOML alias pack; resolution matches the input against
each candidate (exact, slug, and optionally fuzzy), then applies scope rules
for the supplied context and reports the winner with a full decision trace.

Examples:
  canonmeta alias resolve --pack finance.toml --org acme "Customer Invoice"
  canonmeta alias resolve --pack finance.toml --org acme --role analyst --fuzzy "custmer invoice"`,
}

var aliasResolveCmd = &cobra.Command{
	Use:   "resolve <alias>",
	Short: "Resolve one alias and print the decision trace",
	Args:  cobra.ExactArgs(1),
	RunE:  runAliasResolve,
}

var (
	aliasPackPath string
	aliasOrg      string
	aliasTeam     string
	aliasUser     string
	aliasRoles    []string
	aliasLocale   string
	aliasAppArea  string
	aliasFuzzy    bool
)

func init() {
	aliasResolveCmd.Flags().StringVar(&aliasPackPath, "pack", "", "Path to a TOML alias pack (required)")
	aliasResolveCmd.Flags().StringVar(&aliasOrg, "org", "", "Organization ID for the resolution context (required)")
	aliasResolveCmd.Flags().StringVar(&aliasTeam, "team", "", "Team ID for the resolution context")
	aliasResolveCmd.Flags().StringVar(&aliasUser, "user", "", "User ID for the resolution context")
	aliasResolveCmd.Flags().StringSliceVar(&aliasRoles, "role", nil, "Role for the resolution context (repeatable)")
	aliasResolveCmd.Flags().StringVar(&aliasLocale, "locale", "", "Locale for the resolution context")
	aliasResolveCmd.Flags().StringVar(&aliasAppArea, "app-area", "", "Application area for the resolution context")
	aliasResolveCmd.Flags().BoolVar(&aliasFuzzy, "fuzzy", false, "Enable fuzzy matching")
	aliasResolveCmd.MarkFlagRequired("pack")
	aliasResolveCmd.MarkFlagRequired("org")

	AliasCmd.AddCommand(aliasResolveCmd)
}

func runAliasResolve(cmd *cobra.Command, args []string) error {
	f, err := os.Open(aliasPackPath)
	if err != nil {
		return errors.Wrapf(err, "failed to open alias pack %s", aliasPackPath)
	}
	defer f.Close()

	pack, err := alias.LoadPack(f)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	matchOpts := &alias.MatchOptions{
		Fuzzy:          aliasFuzzy || cfg.Matcher.FuzzyEnabled,
		FuzzyThreshold: cfg.Matcher.FuzzyThreshold,
		Logger:         logger.Logger,
	}
	matches := alias.Match(args[0], pack.Candidates, matchOpts)

	rctx := alias.Context{
		OrgID:   aliasOrg,
		TeamID:  aliasTeam,
		UserID:  aliasUser,
		Roles:   aliasRoles,
		Locale:  aliasLocale,
		AppArea: aliasAppArea,
	}
	result := alias.Resolve(matches, alias.DefaultRules(), rctx, &alias.ResolveOptions{
		MinConfidence: cfg.Resolver.MinConfidence,
		Logger:        logger.Logger,
	})

	if result.Winner == nil {
		pterm.Warning.Printf("No resolution for %q (%d candidate matches)\n", args[0], len(result.AllMatches))
	} else {
		pterm.Success.Printf("%q -> %s\n", args[0], result.Winner.Candidate.TargetAssetKey)
		pterm.Printf("  Match type: %s  score: %.2f  scope: %s/%s\n",
			result.Winner.Type, result.Winner.Score,
			result.Winner.Candidate.ScopeType, result.Winner.Candidate.ScopeValue)
	}

	pterm.Println()
	pterm.Info.Println("Decision trace:")
	for _, step := range result.Trace {
		outcome := "no match"
		if step.Winner != "" {
			outcome = step.Winner
		}
		pterm.Printf("  %-14s candidates=%d  %s  (%s)\n",
			step.Rule, step.Candidates, outcome, step.Elapsed)
	}

	if result.Winner == nil {
		return errors.Newf("alias %q did not resolve", args[0])
	}
	return nil
}
