package alias

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple label", "Customer Invoice", "customer-invoice"},
		{"underscores", "gross_margin_pct", "gross-margin-pct"},
		{"mixed separators", "AR  Aging__Report", "ar-aging-report"},
		{"punctuation stripped", "Rev. (Net) — Q4!", "rev-net-q4"},
		{"already a slug", "customer-invoice", "customer-invoice"},
		{"collapses hyphen runs", "a---b- -c", "a-b-c"},
		{"leading and trailing separators", "  _invoice_  ", "invoice"},
		{"only punctuation", "!!!", ""},
		{"empty", "", ""},
		{"digits kept", "Top 10 Accounts", "top-10-accounts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"Customer Invoice",
		"gross_margin_pct",
		"Rev. (Net) — Q4!",
		"--a--b--",
		"",
		"Ünïcode Läbel",
	}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "input %q", in)
	}
}
