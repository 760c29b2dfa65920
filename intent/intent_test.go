package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/canonmeta/ids"
)

func TestEveryVariantIsRegistered(t *testing.T) {
	org := ids.OrgID("b3e6a7a0-6f2e-4e1a-9f0c-1c2d3e4f5a6b")
	date, err := ids.NewISODate("2026-08-28")
	require.NoError(t, err)

	variants := []Intent{
		NewRegisterAsset(org, "db.rec.acme.public.invoices", "Invoices", "finance"),
		NewRetireAsset(org, "db.rec.acme.public.invoices", date),
		NewReassignOwner("db.rec.acme.public.invoices", ids.UserID("c4f7b8b1-7a3f-4f2b-8a1d-2d3e4f5a6b7c")),
		NewReclassifyAsset("db.field.acme.public.invoices.total", "financial"),
		NewDeclareAlias(org, "Customer Invoice", "db.rec.acme.public.invoices", "org", "acme", 10),
		NewRetireAlias(org, "Customer Invoice", "db.rec.acme.public.invoices"),
		NewApplyRulePack(org, "invoice-quality", nil),
		NewRecordCheckResults(org, "db.rec.acme.public.invoices", nil),
	}
	require.Len(t, variants, Kinds.Len())

	seen := map[Kind]bool{}
	for _, v := range variants {
		assert.True(t, Kinds.Has(v.Kind()), v.Kind())
		assert.NotEmpty(t, Kinds.MustMeta(v.Kind()).Label, v.Kind())
		assert.False(t, seen[v.Kind()], "duplicate kind %s", v.Kind())
		seen[v.Kind()] = true
	}
}

func TestKindSwitchIsUsable(t *testing.T) {
	var in Intent = NewDeclareAlias(
		ids.OrgID("b3e6a7a0-6f2e-4e1a-9f0c-1c2d3e4f5a6b"),
		"DSO", "metric:acme.dso", "role", "analyst", 5)

	switch v := in.(type) {
	case DeclareAlias:
		assert.Equal(t, "metric:acme.dso", v.TargetKey)
		assert.Equal(t, 5, v.Priority)
	default:
		t.Fatalf("unexpected variant %T", in)
	}
}
