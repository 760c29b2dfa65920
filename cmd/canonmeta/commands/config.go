package commands

import (
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/teranos/canonmeta/config"
)

// ConfigCmd groups configuration inspection commands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect canonmeta configuration",
	Long: `config — Inspect canonmeta configuration.

Configuration sources (in order of precedence):
1. Environment variables (CANONMETA_* prefix)
2. Project config (canonmeta.toml, searched upward from the working directory)
3. User config (~/.canonmeta/config.toml)
4. System config (/etc/canonmeta/config.toml)
5. Default values

Examples:
  canonmeta config show
  canonmeta config show --format json
  canonmeta config get matcher.fuzzy_threshold`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value using dot notation",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configFormat string

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configGetCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch configFormat {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		fmt.Println(string(data))
	case "toml":
		if err := toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg); err != nil {
			return fmt.Errorf("failed to marshal config to TOML: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q (supported: toml, json)", configFormat)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	value := config.GetViper().Get(args[0])
	if value == nil {
		return fmt.Errorf("unknown configuration key %q", args[0])
	}
	fmt.Println(value)
	return nil
}
