package config

import (
	"github.com/spf13/viper"

	"github.com/teranos/canonmeta/alias"
)

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	// Matcher defaults
	v.SetDefault("matcher.fuzzy_enabled", false) // fuzzy matching is opt-in
	v.SetDefault("matcher.fuzzy_threshold", alias.DefaultFuzzyThreshold)

	// Resolver defaults
	v.SetDefault("resolver.min_confidence", 0.0) // keep every match by default

	// Pack directory defaults
	v.SetDefault("packs.alias_dir", "packs/alias")
	v.SetDefault("packs.rule_dir", "packs/quality")

	// Log defaults
	v.SetDefault("log.json", false)
}
