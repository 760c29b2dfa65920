package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/canonmeta/cmd/canonmeta/commands"
	"github.com/teranos/canonmeta/config"
	"github.com/teranos/canonmeta/logger"
)

var rootCmd = &cobra.Command{
	Use:   "canonmeta",
	Short: "canonmeta - Asset catalog metadata governance",
	Long: `canonmeta - Metadata governance for a multi-tenant business-data catalog.

canonmeta identifies catalog assets by canonical keys, maps human-readable
aliases onto them, fingerprints asset descriptors for change detection, and
compiles declarative quality rules into executable checks.

Available commands:
  key         - Parse and validate canonical asset keys
  fingerprint - Fingerprint an asset descriptor for change detection
  alias       - Resolve human-readable aliases against an alias pack
  quality     - Compile quality rule packs and score check results
  config      - Inspect canonmeta configuration
  version     - Show version information

Examples:
  canonmeta key parse db.rec.acme.public.invoices
  canonmeta fingerprint descriptor.yaml
  canonmeta alias resolve --pack finance.toml --org acme "Customer Invoice"
  canonmeta quality compile rules.yaml
  canonmeta config show`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")

		jsonLogs := false
		if cfg, err := config.Load(); err == nil {
			jsonLogs = cfg.Log.JSON
		}
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")

	rootCmd.AddCommand(commands.KeyCmd)
	rootCmd.AddCommand(commands.FingerprintCmd)
	rootCmd.AddCommand(commands.AliasCmd)
	rootCmd.AddCommand(commands.QualityCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
