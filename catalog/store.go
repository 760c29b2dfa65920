package catalog

import (
	"context"

	"github.com/teranos/canonmeta/errors"
)

// Store is the read contract an external catalog backend must satisfy.
// Implementations own persistence and must guarantee asset key uniqueness;
// canonmeta only derives ephemeral values from what they return.
type Store interface {
	// GetDescriptor returns the descriptor for a canonical asset key, or an
	// error wrapping errors.ErrNotFound when the key is unknown.
	GetDescriptor(ctx context.Context, assetKey string) (*AssetDescriptor, error)

	// ListDescriptors returns all descriptors owned by an org.
	ListDescriptors(ctx context.Context, orgID string) ([]*AssetDescriptor, error)
}

// DriftKind classifies one difference between an incoming descriptor batch
// and the stored catalog state.
type DriftKind string

const (
	DriftAdded   DriftKind = "added"   // incoming key unknown to the store
	DriftChanged DriftKind = "changed" // fingerprints differ
)

// Drift is one detected catalog difference.
type Drift struct {
	AssetKey            string    `json:"asset_key"`
	Kind                DriftKind `json:"kind"`
	StoredFingerprint   string    `json:"stored_fingerprint,omitempty"`
	IncomingFingerprint string    `json:"incoming_fingerprint"`
}

// DetectDrift compares incoming descriptors against the stored catalog by
// fingerprint and reports additions and changes in incoming order.
// Descriptors whose fingerprints match are silent. A store miss counts as an
// addition; any other store error aborts the scan.
func DetectDrift(ctx context.Context, store Store, incoming []AssetDescriptor) ([]Drift, error) {
	var drifts []Drift
	for i := range incoming {
		d := incoming[i]
		incomingFP := Fingerprint(d)

		stored, err := store.GetDescriptor(ctx, d.AssetKey)
		if errors.IsNotFound(err) {
			drifts = append(drifts, Drift{
				AssetKey:            d.AssetKey,
				Kind:                DriftAdded,
				IncomingFingerprint: incomingFP,
			})
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "drift scan failed at %s", d.AssetKey)
		}

		storedFP := Fingerprint(*stored)
		if storedFP == incomingFP {
			continue
		}
		drifts = append(drifts, Drift{
			AssetKey:            d.AssetKey,
			Kind:                DriftChanged,
			StoredFingerprint:   storedFP,
			IncomingFingerprint: incomingFP,
		})
	}
	return drifts, nil
}
