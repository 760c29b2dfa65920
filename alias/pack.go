package alias

import (
	"io"

	"github.com/BurntSushi/toml"

	"github.com/teranos/canonmeta/assetkey"
	"github.com/teranos/canonmeta/errors"
)

// Pack is a TOML-declared bundle of alias candidates, used by the CLI and
// tests to assemble candidate sets without a live alias store.
//
// Manifest shape:
//
//	name = "finance-aliases"
//
//	[[candidates]]
//	alias = "Customer Invoice"
//	target = "db.rec.acme.public.invoices"
//	scope_type = "org"
//	scope_value = "acme"
//	priority = 10
type Pack struct {
	Name       string      `toml:"name"`
	Candidates []Candidate `toml:"candidates"`
}

// LoadPack decodes an alias pack and validates every candidate: scope types
// must be declared and targets must parse as canonical asset keys. A pack
// with a single bad candidate is rejected whole.
func LoadPack(r io.Reader) (*Pack, error) {
	var pack Pack
	if _, err := toml.NewDecoder(r).Decode(&pack); err != nil {
		return nil, errors.Wrap(err, "failed to decode alias pack")
	}

	for i, c := range pack.Candidates {
		if c.AliasValue == "" {
			return nil, errors.Newf("alias pack %q: candidate %d has an empty alias", pack.Name, i)
		}
		if !Scopes.Has(c.ScopeType) {
			return nil, errors.Wrapf(errors.ErrUnknownEnumValue,
				"alias pack %q: candidate %d scope %q", pack.Name, i, string(c.ScopeType))
		}
		if _, err := assetkey.Parse(c.TargetAssetKey); err != nil {
			return nil, errors.Wrapf(err, "alias pack %q: candidate %d", pack.Name, i)
		}
	}
	return &pack, nil
}
