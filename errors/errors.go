// Package errors provides error handling for canonmeta.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - PII-safe error formatting
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := validate(key); err != nil {
//	    return errors.Wrap(err, "failed to validate asset key")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrPrefixMismatch) {
//	    // handle type/prefix inconsistency
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Assertions and panics
var (
	AssertionFailedf                 = crdb.AssertionFailedf
	NewAssertionErrorWithWrappedErrf = crdb.NewAssertionErrorWithWrappedErrf
)

// Common sentinel errors for use across canonmeta.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrInvalidKeyFormat indicates an asset key that does not parse as a
	// canonical key (wrong delimiter structure, empty segments, blank input)
	ErrInvalidKeyFormat = New("invalid asset key format")

	// ErrPrefixMismatch indicates an asset key whose prefix family does not
	// match the prefix registered for the declared asset type
	ErrPrefixMismatch = New("asset key prefix does not match asset type")

	// ErrInvalidIdentifier indicates a branded identifier that failed its
	// constructor's format invariant
	ErrInvalidIdentifier = New("invalid identifier")

	// ErrUnknownEnumValue indicates a raw string that is not a declared
	// value of the enum registry it was parsed against
	ErrUnknownEnumValue = New("unknown enum value")

	// ErrIncompatiblePack indicates a rule or alias pack whose declared
	// schema version is outside the supported range
	ErrIncompatiblePack = New("incompatible pack schema version")

	// ErrNotFound indicates a catalog lookup that matched nothing; backends
	// wrap this so callers can distinguish a miss from a failure
	ErrNotFound = New("not found")
)

// IsNotFound checks if an error is or wraps ErrNotFound
func IsNotFound(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidKeyFormat checks if an error is or wraps ErrInvalidKeyFormat
func IsInvalidKeyFormat(err error) bool {
	return err != nil && Is(err, ErrInvalidKeyFormat)
}

// IsPrefixMismatch checks if an error is or wraps ErrPrefixMismatch
func IsPrefixMismatch(err error) bool {
	return err != nil && Is(err, ErrPrefixMismatch)
}

// IsInvalidIdentifier checks if an error is or wraps ErrInvalidIdentifier
func IsInvalidIdentifier(err error) bool {
	return err != nil && Is(err, ErrInvalidIdentifier)
}
