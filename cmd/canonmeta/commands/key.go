package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/canonmeta/assetkey"
)

// KeyCmd groups asset-key operations.
var KeyCmd = &cobra.Command{
	Use:   "key",
	Short: "Parse and validate canonical asset keys",
	Long: `key — Parse and validate canonical asset keys.

Asset keys identify catalog assets with a type prefix, organization segment,
and type-specific segments, e.g. db.rec.acme.public.invoices for a table or
db.field.acme.public.invoices.total for a column.

Examples:
  canonmeta key parse db.rec.acme.public.invoices
  canonmeta key parse --json metric:acme.dso
  canonmeta key validate --type column db.field.acme.public.invoices.total`,
}

var keyParseCmd = &cobra.Command{
	Use:   "parse <asset-key>",
	Short: "Parse an asset key into its components",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeyParse,
}

var keyValidateCmd = &cobra.Command{
	Use:   "validate <asset-key>",
	Short: "Validate an asset key, optionally against an expected type",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeyValidate,
}

var keyExpectedType string

func init() {
	keyParseCmd.Flags().BoolP("json", "j", false, "Output parsed key as JSON")
	keyValidateCmd.Flags().StringVar(&keyExpectedType, "type", "", "Expected asset type (e.g. table, column, metric)")

	KeyCmd.AddCommand(keyParseCmd)
	KeyCmd.AddCommand(keyValidateCmd)
}

func runKeyParse(cmd *cobra.Command, args []string) error {
	parsed, err := assetkey.Parse(args[0])
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		data, err := json.MarshalIndent(parsed, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	pterm.Success.Printf("Valid %s key\n", assetkey.Types.MustMeta(parsed.Type).Label)
	pterm.Printf("  Canonical: %s\n", parsed.Key)
	pterm.Printf("  Prefix:    %s\n", parsed.Prefix)
	pterm.Printf("  Org:       %s\n", parsed.Org)
	for i, seg := range parsed.Segments {
		pterm.Printf("  Segment %d: %s\n", i+1, seg)
	}
	return nil
}

func runKeyValidate(cmd *cobra.Command, args []string) error {
	key := args[0]

	if keyExpectedType == "" {
		if _, err := assetkey.Parse(key); err != nil {
			pterm.Error.Println(err.Error())
			return err
		}
		pterm.Success.Printf("%s is a valid asset key\n", assetkey.Canonicalize(key))
		return nil
	}

	assetType := assetkey.AssetType(keyExpectedType)
	if !assetkey.Types.Has(assetType) {
		return fmt.Errorf("unknown asset type %q (known: %v)", keyExpectedType, assetkey.Types.Values())
	}
	if err := assetkey.Validate(key, assetType); err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	pterm.Success.Printf("%s is a valid %s key\n", assetkey.Canonicalize(key), keyExpectedType)
	return nil
}
