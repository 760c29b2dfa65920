package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// Fingerprint produces a deterministic digest of a descriptor's semantic
// content. Two descriptors with the same present fields produce the same
// fingerprint regardless of field declaration order or element order within
// the set-valued fields.
//
// The canonical form is a JSON object holding only present fields, with
// set-valued collections sorted lexically. encoding/json sorts map keys at
// every nesting level, so the serialized bytes are stable; the digest is
// the first 16 bytes of their SHA-256, hex encoded.
//
// Fingerprint never fails: the canonical form contains only strings and
// string slices, which always marshal.
func Fingerprint(d AssetDescriptor) string {
	canonical := map[string]any{
		"assetKey":    d.AssetKey,
		"assetType":   string(d.AssetType),
		"displayName": d.DisplayName,
	}
	putString := func(key, val string) {
		if val != "" {
			canonical[key] = val
		}
	}
	putSet := func(key string, vals []string) {
		if len(vals) > 0 {
			canonical[key] = sortedCopy(vals)
		}
	}
	putString("description", d.Description)
	putString("owner", d.Owner)
	putString("steward", d.Steward)
	putString("classification", string(d.Classification))
	putString("qualityTier", string(d.QualityTier))
	putSet("tags", d.Tags)
	putSet("upstream", d.Upstream)
	putSet("downstream", d.Downstream)
	putSet("glossaryTerms", d.GlossaryTerms)

	raw, err := json.Marshal(canonical)
	if err != nil {
		// Unreachable: the canonical map holds only strings and []string.
		panic(err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:16])
}

// DescriptorsEqual defines descriptor equality as fingerprint equality.
func DescriptorsEqual(a, b AssetDescriptor) bool {
	return Fingerprint(a) == Fingerprint(b)
}

func sortedCopy(vals []string) []string {
	out := make([]string, len(vals))
	copy(out, vals)
	sort.Strings(out)
	return out
}
