// Package config loads canonmeta configuration from TOML files and
// environment variables. Precedence (lowest to highest): defaults, system
// config, user config, project config found by upward search, env vars.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/canonmeta/errors"
)

// Config is the canonmeta runtime configuration.
type Config struct {
	Matcher  MatcherConfig  `mapstructure:"matcher"`
	Resolver ResolverConfig `mapstructure:"resolver"`
	Packs    PacksConfig    `mapstructure:"packs"`
	Log      LogConfig      `mapstructure:"log"`
}

// MatcherConfig tunes alias candidate matching.
type MatcherConfig struct {
	FuzzyEnabled   bool    `mapstructure:"fuzzy_enabled"`
	FuzzyThreshold float64 `mapstructure:"fuzzy_threshold"` // minimum similarity-scaled score (default: 0.70)
}

// ResolverConfig tunes alias resolution.
type ResolverConfig struct {
	MinConfidence float64 `mapstructure:"min_confidence"` // matches below this score are dropped before rules run
}

// PacksConfig points at alias and rule pack directories for the CLI.
type PacksConfig struct {
	AliasDir string `mapstructure:"alias_dir"`
	RuleDir  string `mapstructure:"rule_dir"`
}

// LogConfig configures log output.
type LogConfig struct {
	JSON bool `mapstructure:"json"` // structured JSON instead of console output
}

var globalConfig *Config
var viperInstance *viper.Viper

// Load reads the canonmeta configuration, caching the result.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := initViper()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	globalConfig = &config
	return globalConfig, nil
}

// LoadWithViper loads configuration from a provided Viper instance.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}
	return LoadWithViper(v)
}

// GetViper returns the Viper instance for advanced configuration access.
func GetViper() *viper.Viper {
	return initViper()
}

// Reset clears the cached configuration (useful for testing).
func Reset() {
	globalConfig = nil
	viperInstance = nil
}

func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	v.SetEnvPrefix("CANONMETA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
	mergeConfigFiles(v)

	viperInstance = v
	return v
}

// findProjectConfig walks up from the working directory looking for
// canonmeta.toml and returns the first hit, or "" if none exists.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, "canonmeta.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// mergeConfigFiles merges configuration files in precedence order
// (lowest to highest): system < user < project.
func mergeConfigFiles(v *viper.Viper) {
	homeDir, _ := os.UserHomeDir()

	configPaths := []string{
		"/etc/canonmeta/config.toml",
		filepath.Join(homeDir, ".canonmeta", "config.toml"),
	}
	if projectConfig := findProjectConfig(); projectConfig != "" {
		configPaths = append(configPaths, projectConfig)
	}

	for _, configPath := range configPaths {
		if _, err := os.Stat(configPath); err != nil {
			continue
		}
		fileViper := viper.New()
		fileViper.SetConfigFile(configPath)
		fileViper.SetConfigType("toml")
		if err := fileViper.ReadInConfig(); err != nil {
			continue
		}
		for key, value := range fileViper.AllSettings() {
			v.Set(key, value)
		}
	}
}
