package quality

import (
	"io"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/teranos/canonmeta/errors"
)

// PackSchemaConstraint is the rule-pack schema range this build accepts.
const PackSchemaConstraint = "^1"

// Pack is a YAML-declared bundle of quality rules with a schema version.
type Pack struct {
	SchemaVersion string `yaml:"schema_version"`
	Name          string `yaml:"name,omitempty"`
	Rules         []Rule `yaml:"rules"`
}

// LoadPack decodes a rule pack and gates it on schema compatibility.
// Every rule in the pack must compile; a pack with a single bad rule is
// rejected whole rather than partially loaded.
func LoadPack(r io.Reader) (*Pack, error) {
	var pack Pack
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&pack); err != nil {
		return nil, errors.Wrap(err, "failed to decode rule pack")
	}

	if err := validatePackSchema(pack.SchemaVersion); err != nil {
		return nil, err
	}

	for i, rule := range pack.Rules {
		if _, err := Compile(rule); err != nil {
			return nil, errors.Wrapf(err, "rule pack %q: rule %d does not compile", pack.Name, i)
		}
	}
	return &pack, nil
}

// validatePackSchema checks the pack's declared schema version against the
// supported constraint.
func validatePackSchema(declared string) error {
	if declared == "" {
		return errors.Wrap(errors.ErrIncompatiblePack, "pack declares no schema_version")
	}
	ver, err := semver.NewVersion(declared)
	if err != nil {
		return errors.Wrapf(errors.ErrIncompatiblePack, "invalid schema_version %q", declared)
	}
	constraint, err := semver.NewConstraint(PackSchemaConstraint)
	if err != nil {
		return errors.NewAssertionErrorWithWrappedErrf(err, "invalid pack schema constraint %q", PackSchemaConstraint)
	}
	if !constraint.Check(ver) {
		return errors.Wrapf(errors.ErrIncompatiblePack,
			"pack schema %s outside supported range %s", declared, PackSchemaConstraint)
	}
	return nil
}
