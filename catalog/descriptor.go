// Package catalog defines the asset descriptor record and its semantic
// fingerprint. Descriptors are owned and persisted by an external catalog
// store; this package only reads them and derives values.
package catalog

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/teranos/canonmeta/assetkey"
	"github.com/teranos/canonmeta/enumkit"
	"github.com/teranos/canonmeta/errors"
	"github.com/teranos/canonmeta/quality"
)

// Classification labels the sensitivity of an asset.
type Classification string

// Declared classifications.
const (
	ClassPII       Classification = "pii"
	ClassFinancial Classification = "financial"
	ClassInternal  Classification = "internal"
	ClassPublic    Classification = "public"
)

// ClassMeta is the registry metadata for one classification.
type ClassMeta struct {
	Label string
	// Restricted classifications require a steward on the descriptor.
	Restricted bool
}

// Classifications is the classification registry.
var Classifications = enumkit.New("classification", []enumkit.Entry[Classification, ClassMeta]{
	{Value: ClassPII, Meta: ClassMeta{Label: "PII", Restricted: true}},
	{Value: ClassFinancial, Meta: ClassMeta{Label: "Financial", Restricted: true}},
	{Value: ClassInternal, Meta: ClassMeta{Label: "Internal"}},
	{Value: ClassPublic, Meta: ClassMeta{Label: "Public"}},
})

// AssetDescriptor is the read-only metadata record for one asset.
// Tags, Upstream, Downstream, and GlossaryTerms are sets: element order
// carries no meaning and never affects the fingerprint.
type AssetDescriptor struct {
	AssetKey       string              `json:"assetKey" yaml:"asset_key"`
	AssetType      assetkey.AssetType  `json:"assetType" yaml:"asset_type"`
	DisplayName    string              `json:"displayName" yaml:"display_name"`
	Description    string              `json:"description,omitempty" yaml:"description,omitempty"`
	Owner          string              `json:"owner,omitempty" yaml:"owner,omitempty"`
	Steward        string              `json:"steward,omitempty" yaml:"steward,omitempty"`
	Classification Classification      `json:"classification,omitempty" yaml:"classification,omitempty"`
	Tags           []string            `json:"tags,omitempty" yaml:"tags,omitempty"`
	QualityTier    quality.Tier        `json:"qualityTier,omitempty" yaml:"quality_tier,omitempty"`
	Upstream       []string            `json:"upstream,omitempty" yaml:"upstream,omitempty"`
	Downstream     []string            `json:"downstream,omitempty" yaml:"downstream,omitempty"`
	GlossaryTerms  []string            `json:"glossaryTerms,omitempty" yaml:"glossary_terms,omitempty"`
}

// Validate checks the descriptor's declared invariants: the asset key must
// belong to the declared type's prefix family, the display name must be
// non-blank, and enum-valued fields must hold declared values.
func (d *AssetDescriptor) Validate() error {
	if err := assetkey.Validate(d.AssetKey, d.AssetType); err != nil {
		return err
	}
	if isBlank(d.DisplayName) {
		return errors.Newf("displayName: must not be blank for %q", d.AssetKey)
	}
	if d.Classification != "" && !Classifications.Has(d.Classification) {
		return errors.Wrapf(errors.ErrUnknownEnumValue, "classification: %q", string(d.Classification))
	}
	if d.QualityTier != "" && !quality.Tiers.Has(d.QualityTier) {
		return errors.Wrapf(errors.ErrUnknownEnumValue, "qualityTier: %q", string(d.QualityTier))
	}
	return nil
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

// DecodeDescriptor reads one YAML-encoded descriptor. Used by the CLI and
// fixtures; the production catalog store supplies descriptors directly.
func DecodeDescriptor(r io.Reader) (*AssetDescriptor, error) {
	var d AssetDescriptor
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, errors.Wrap(err, "failed to decode descriptor")
	}
	return &d, nil
}
