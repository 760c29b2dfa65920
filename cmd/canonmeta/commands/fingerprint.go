package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/canonmeta/catalog"
	"github.com/teranos/canonmeta/errors"
)

// FingerprintCmd fingerprints an asset descriptor for change detection.
var FingerprintCmd = &cobra.Command{
	Use:   "fingerprint <descriptor.yaml>",
	Short: "Fingerprint an asset descriptor",
	Long: `fingerprint — Compute the deterministic fingerprint of an asset descriptor.

The fingerprint is stable across field ordering and tag/lineage ordering, so
two descriptors carry the same fingerprint exactly when their significant
content is equal. Use it to detect descriptor drift between catalog syncs.

Examples:
  canonmeta fingerprint descriptor.yaml
  canonmeta fingerprint --quiet descriptor.yaml   # fingerprint only, for scripts`,
	Args: cobra.ExactArgs(1),
	RunE: runFingerprint,
}

func init() {
	FingerprintCmd.Flags().BoolP("quiet", "q", false, "Print only the fingerprint")
}

func runFingerprint(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return errors.Wrapf(err, "failed to open descriptor %s", args[0])
	}
	defer f.Close()

	descriptor, err := catalog.DecodeDescriptor(f)
	if err != nil {
		return err
	}

	fingerprint := catalog.Fingerprint(*descriptor)

	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		pterm.Println(fingerprint)
		return nil
	}

	pterm.Success.Printf("Descriptor %s\n", descriptor.AssetKey)
	pterm.Printf("  Display name: %s\n", descriptor.DisplayName)
	pterm.Printf("  Fingerprint:  %s\n", fingerprint)
	return nil
}
