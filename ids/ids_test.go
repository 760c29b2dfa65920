package ids

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/canonmeta/errors"
)

func TestUUIDConstructors(t *testing.T) {
	valid := uuid.NewString()

	org, err := NewOrgID(valid)
	require.NoError(t, err)
	assert.Equal(t, valid, org.String())

	team, err := NewTeamID(valid)
	require.NoError(t, err)
	assert.Equal(t, valid, team.String())

	for _, raw := range []string{"", "not-a-uuid", "123e4567-e89b-12d3-a456"} {
		_, err := NewUserID(raw)
		require.Error(t, err, raw)
		assert.True(t, errors.Is(err, errors.ErrInvalidIdentifier), raw)

		_, err = NewCompanyID(raw)
		assert.Error(t, err, raw)

		_, err = NewLedgerID(raw)
		assert.Error(t, err, raw)
	}
}

func TestNewISODate(t *testing.T) {
	d, err := NewISODate("2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-28", d.String())
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), d.Time())

	for _, raw := range []string{
		"",
		"2026-8-28",
		"28-08-2026",
		"2026-08-28T00:00:00Z",
		"2026-13-01",
		"2026-02-30",
	} {
		_, err := NewISODate(raw)
		require.Error(t, err, raw)
		assert.True(t, errors.Is(err, errors.ErrInvalidIdentifier), raw)
	}
}
