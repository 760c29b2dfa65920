// Package ids provides opaque identifier types for the tenancy and ledger
// boundaries of the catalog. Each type has a smart constructor that is the
// only way to obtain a validated value; raw strings stop at the boundary.
package ids

import (
	"time"

	"github.com/google/uuid"

	"github.com/teranos/canonmeta/errors"
)

// OrgID identifies a tenant organization.
type OrgID string

// TeamID identifies a team within an organization.
type TeamID string

// UserID identifies an individual user.
type UserID string

// CompanyID identifies a legal entity in the ledger domain.
type CompanyID string

// LedgerID identifies a ledger book.
type LedgerID string

// NewOrgID validates raw as a UUID and brands it.
func NewOrgID(raw string) (OrgID, error) {
	if err := validateUUID("org_id", raw); err != nil {
		return "", err
	}
	return OrgID(raw), nil
}

// NewTeamID validates raw as a UUID and brands it.
func NewTeamID(raw string) (TeamID, error) {
	if err := validateUUID("team_id", raw); err != nil {
		return "", err
	}
	return TeamID(raw), nil
}

// NewUserID validates raw as a UUID and brands it.
func NewUserID(raw string) (UserID, error) {
	if err := validateUUID("user_id", raw); err != nil {
		return "", err
	}
	return UserID(raw), nil
}

// NewCompanyID validates raw as a UUID and brands it.
func NewCompanyID(raw string) (CompanyID, error) {
	if err := validateUUID("company_id", raw); err != nil {
		return "", err
	}
	return CompanyID(raw), nil
}

// NewLedgerID validates raw as a UUID and brands it.
func NewLedgerID(raw string) (LedgerID, error) {
	if err := validateUUID("ledger_id", raw); err != nil {
		return "", err
	}
	return LedgerID(raw), nil
}

func (id OrgID) String() string     { return string(id) }
func (id TeamID) String() string    { return string(id) }
func (id UserID) String() string    { return string(id) }
func (id CompanyID) String() string { return string(id) }
func (id LedgerID) String() string  { return string(id) }

func validateUUID(field, raw string) error {
	if raw == "" {
		return errors.Wrapf(errors.ErrInvalidIdentifier, "%s is empty", field)
	}
	if _, err := uuid.Parse(raw); err != nil {
		return errors.Wrapf(errors.ErrInvalidIdentifier, "%s %q is not a valid UUID", field, raw)
	}
	return nil
}

const isoDateLayout = "2006-01-02"

// ISODate is a calendar date in ISO-8601 extended format (YYYY-MM-DD).
type ISODate string

// NewISODate validates raw against the ISO-8601 date layout and brands it.
// The layout is strict: no time component, no offset, zero-padded fields.
func NewISODate(raw string) (ISODate, error) {
	t, err := time.Parse(isoDateLayout, raw)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInvalidIdentifier, "iso_date %q is not YYYY-MM-DD", raw)
	}
	// Round-trip equality keeps only the canonical zero-padded form.
	if t.Format(isoDateLayout) != raw {
		return "", errors.Wrapf(errors.ErrInvalidIdentifier, "iso_date %q is not canonical YYYY-MM-DD", raw)
	}
	return ISODate(raw), nil
}

// Time returns the date at midnight UTC.
func (d ISODate) Time() time.Time {
	t, err := time.Parse(isoDateLayout, string(d))
	if err != nil {
		panic(errors.AssertionFailedf("ISODate %q escaped its constructor", string(d)))
	}
	return t
}

func (d ISODate) String() string { return string(d) }
