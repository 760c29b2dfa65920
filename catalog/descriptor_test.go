package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/canonmeta/assetkey"
	"github.com/teranos/canonmeta/errors"
)

func TestDescriptorValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AssetDescriptor)
		wantErr func(error) bool
	}{
		{
			name:   "valid descriptor",
			mutate: func(d *AssetDescriptor) {},
		},
		{
			name: "prefix mismatch",
			mutate: func(d *AssetDescriptor) {
				d.AssetKey = "db.field.acme.public.invoices.total"
			},
			wantErr: errors.IsPrefixMismatch,
		},
		{
			name: "malformed key",
			mutate: func(d *AssetDescriptor) {
				d.AssetKey = "db.rec.acme"
			},
			wantErr: errors.IsInvalidKeyFormat,
		},
		{
			name: "blank display name",
			mutate: func(d *AssetDescriptor) {
				d.DisplayName = "   "
			},
			wantErr: func(err error) bool { return err != nil },
		},
		{
			name: "undeclared classification",
			mutate: func(d *AssetDescriptor) {
				d.Classification = "secret"
			},
			wantErr: func(err error) bool { return errors.Is(err, errors.ErrUnknownEnumValue) },
		},
		{
			name: "undeclared tier",
			mutate: func(d *AssetDescriptor) {
				d.QualityTier = "platinum"
			},
			wantErr: func(err error) bool { return errors.Is(err, errors.ErrUnknownEnumValue) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := invoiceDescriptor()
			tt.mutate(&d)
			err := d.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, tt.wantErr(err))
		})
	}
}

func TestDecodeDescriptor(t *testing.T) {
	doc := `
asset_key: db.rec.acme.public.invoices
asset_type: table
display_name: Invoices
classification: financial
tags:
  - billing
  - ar
upstream:
  - db.pipe.acme.nightly_load
`
	d, err := DecodeDescriptor(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "db.rec.acme.public.invoices", d.AssetKey)
	assert.Equal(t, assetkey.TypeTable, d.AssetType)
	assert.Equal(t, ClassFinancial, d.Classification)
	assert.Equal(t, []string{"billing", "ar"}, d.Tags)
	assert.NoError(t, d.Validate())
}

func TestDecodeDescriptorRejectsUnknownFields(t *testing.T) {
	doc := `
asset_key: db.rec.acme.public.invoices
asset_type: table
display_name: Invoices
not_a_field: true
`
	_, err := DecodeDescriptor(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestClassificationsRegistry(t *testing.T) {
	assert.True(t, Classifications.MustMeta(ClassPII).Restricted)
	assert.True(t, Classifications.MustMeta(ClassFinancial).Restricted)
	assert.False(t, Classifications.MustMeta(ClassPublic).Restricted)
}
