// Package assetkey parses and validates canonical asset keys.
//
// A canonical key names one cataloged asset. Dotted keys carry a two-part
// prefix family followed by location segments, for example
// "db.rec.acme.public.invoices" (a table) or
// "db.field.acme.public.invoices.total" (a column). Metric keys use the
// "metric:" prefix followed by "<org>.<name>".
//
// The prefix registry is the single source of truth for which prefix family
// belongs to which asset type. It is asserted total and non-overlapping at
// package init.
package assetkey

import (
	"fmt"
	"strings"

	"github.com/teranos/canonmeta/enumkit"
	"github.com/teranos/canonmeta/errors"
)

// AssetType classifies a cataloged asset.
type AssetType string

// Declared asset types.
const (
	TypeTable          AssetType = "table"
	TypeColumn         AssetType = "column"
	TypeView           AssetType = "view"
	TypePipeline       AssetType = "pipeline"
	TypeReport         AssetType = "report"
	TypeAPI            AssetType = "api"
	TypeBusinessObject AssetType = "business_object"
	TypePolicy         AssetType = "policy"
	TypeMetric         AssetType = "metric"
)

// TypeMeta is the registry metadata for one asset type.
type TypeMeta struct {
	Label string
	// Prefix is the canonical key prefix family for this type.
	// Dotted prefixes ("db.rec") are followed by dot-separated segments;
	// the colon prefix ("metric:") is followed by "<org>.<name>".
	Prefix string
	// Segments is the required number of location segments after the prefix.
	Segments int
}

// Types is the asset type registry.
var Types = enumkit.New("asset_type", []enumkit.Entry[AssetType, TypeMeta]{
	{Value: TypeTable, Meta: TypeMeta{Label: "Table", Prefix: "db.rec", Segments: 3}},
	{Value: TypeColumn, Meta: TypeMeta{Label: "Column", Prefix: "db.field", Segments: 4}},
	{Value: TypeView, Meta: TypeMeta{Label: "View", Prefix: "db.view", Segments: 3}},
	{Value: TypePipeline, Meta: TypeMeta{Label: "Pipeline", Prefix: "db.pipe", Segments: 2}},
	{Value: TypeReport, Meta: TypeMeta{Label: "Report", Prefix: "db.report", Segments: 2}},
	{Value: TypeAPI, Meta: TypeMeta{Label: "API", Prefix: "db.api", Segments: 2}},
	{Value: TypeBusinessObject, Meta: TypeMeta{Label: "Business Object", Prefix: "db.bo", Segments: 2}},
	{Value: TypePolicy, Meta: TypeMeta{Label: "Policy", Prefix: "db.policy", Segments: 2}},
	{Value: TypeMetric, Meta: TypeMeta{Label: "Metric", Prefix: "metric:", Segments: 2}},
})

// prefixToType is derived from Types at init.
var prefixToType map[string]AssetType

func init() {
	// The registry must be a total, non-overlapping mapping: every declared
	// type has a prefix and no two types share one.
	prefixToType = make(map[string]AssetType, Types.Len())
	for _, at := range Types.Values() {
		meta := Types.MustMeta(at)
		if meta.Prefix == "" {
			panic(errors.AssertionFailedf("asset type %q has no registered prefix", string(at)))
		}
		if prior, dup := prefixToType[meta.Prefix]; dup {
			panic(errors.AssertionFailedf("prefix %q registered for both %q and %q",
				meta.Prefix, string(prior), string(at)))
		}
		prefixToType[meta.Prefix] = at
	}
}

// ParsedAssetKey is the structural decomposition of a canonical key.
type ParsedAssetKey struct {
	Key      string    // canonicalized input
	Type     AssetType // type implied by the prefix family
	Prefix   string    // matched prefix family
	Org      string    // first location segment (owning tenant)
	Segments []string  // all location segments, org included
}

// ParseError reports a key that does not parse as a canonical asset key.
// It wraps errors.ErrInvalidKeyFormat.
type ParseError struct {
	Key    string
	Reason string
}

// Code is the stable machine-readable error code.
func (e *ParseError) Code() string { return "INVALID_KEY_FORMAT" }

// Field is the descriptor field path the error applies to.
func (e *ParseError) Field() string { return "assetKey" }

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: key %q: %s", e.Code(), e.Field(), e.Key, e.Reason)
}

func (e *ParseError) Unwrap() error { return errors.ErrInvalidKeyFormat }

// PrefixMismatchError reports a key whose prefix family does not belong to
// the declared asset type. It wraps errors.ErrPrefixMismatch.
type PrefixMismatchError struct {
	Key      string
	Prefix   string
	Declared AssetType
}

// Code is the stable machine-readable error code.
func (e *PrefixMismatchError) Code() string { return "CANON_META_PREFIX_MISMATCH" }

// Field is the descriptor field path the error applies to.
func (e *PrefixMismatchError) Field() string { return "assetKey" }

func (e *PrefixMismatchError) Error() string {
	return fmt.Sprintf("%s: %s: key %q has prefix %q, expected %q for type %s",
		e.Code(), e.Field(), e.Key, e.Prefix, Types.MustMeta(e.Declared).Prefix, string(e.Declared))
}

func (e *PrefixMismatchError) Unwrap() error { return errors.ErrPrefixMismatch }

// Canonicalize normalizes a raw key: trims surrounding whitespace and
// lowercases. Idempotent: Canonicalize(Canonicalize(k)) == Canonicalize(k).
func Canonicalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Parse splits a canonical key into its prefix family and location segments.
// The input is canonicalized first. Empty input, unknown prefixes, empty
// segments, and wrong segment counts all return a *ParseError.
func Parse(key string) (*ParsedAssetKey, error) {
	k := Canonicalize(key)
	if k == "" {
		return nil, &ParseError{Key: key, Reason: "empty key"}
	}

	prefix, rest, ok := splitPrefix(k)
	if !ok {
		return nil, &ParseError{Key: k, Reason: "no registered prefix family"}
	}
	at := prefixToType[prefix]
	meta := Types.MustMeta(at)

	if rest == "" {
		return nil, &ParseError{Key: k, Reason: "missing location segments"}
	}
	segments := strings.Split(rest, ".")
	for _, s := range segments {
		if s == "" {
			return nil, &ParseError{Key: k, Reason: "empty segment"}
		}
	}
	if len(segments) != meta.Segments {
		return nil, &ParseError{
			Key: k,
			Reason: fmt.Sprintf("prefix %q requires %d segments, got %d",
				prefix, meta.Segments, len(segments)),
		}
	}

	return &ParsedAssetKey{
		Key:      k,
		Type:     at,
		Prefix:   prefix,
		Org:      segments[0],
		Segments: segments,
	}, nil
}

// Validate confirms that key parses and that its prefix family belongs to
// the declared asset type. A syntactically valid key of the wrong family
// returns a *PrefixMismatchError, distinguishable from a *ParseError.
func Validate(key string, assetType AssetType) error {
	if !Types.Has(assetType) {
		return errors.Wrapf(errors.ErrUnknownEnumValue, "asset_type: %q", string(assetType))
	}
	parsed, err := Parse(key)
	if err != nil {
		return err
	}
	if parsed.Type != assetType {
		return &PrefixMismatchError{Key: parsed.Key, Prefix: parsed.Prefix, Declared: assetType}
	}
	return nil
}

// splitPrefix matches the longest registered prefix at the start of the key
// and returns the remainder with its leading separator stripped.
func splitPrefix(key string) (prefix, rest string, ok bool) {
	for p := range prefixToType {
		var tail string
		if strings.HasSuffix(p, ":") {
			if !strings.HasPrefix(key, p) {
				continue
			}
			tail = key[len(p):]
		} else {
			if !strings.HasPrefix(key, p+".") {
				continue
			}
			tail = key[len(p)+1:]
		}
		// Longest match wins so db.policy is never shadowed by a shorter
		// family sharing the same leading token.
		if len(p) > len(prefix) || !ok {
			prefix, rest, ok = p, tail, true
		}
	}
	return prefix, rest, ok
}
