// Package enumkit provides a generic value→metadata registry for string
// enums. Each enum in canonmeta (asset types, alias scopes, quality
// dimensions, rule types, severities, tiers) is declared once as a fixed
// table of entries; the kit derives ordered value lists and lookup maps
// at construction time.
package enumkit

import (
	"github.com/teranos/canonmeta/errors"
)

// Entry binds an enum value to its metadata.
type Entry[T ~string, M any] struct {
	Value T
	Meta  M
}

// Kit is an immutable registry over a fixed set of enum values.
// Construct with New at package init; all methods are read-only and safe
// for concurrent use.
type Kit[T ~string, M any] struct {
	name    string
	order   []T
	entries map[T]M
}

// New builds a kit from a fixed entry table. Duplicate values are a
// programming error and fail the build-time assertion.
func New[T ~string, M any](name string, entries []Entry[T, M]) Kit[T, M] {
	k := Kit[T, M]{
		name:    name,
		order:   make([]T, 0, len(entries)),
		entries: make(map[T]M, len(entries)),
	}
	for _, e := range entries {
		if _, dup := k.entries[e.Value]; dup {
			panic(errors.AssertionFailedf("enumkit %s: duplicate value %q", name, string(e.Value)))
		}
		k.order = append(k.order, e.Value)
		k.entries[e.Value] = e.Meta
	}
	return k
}

// Name returns the kit's registry name, used in error messages.
func (k Kit[T, M]) Name() string { return k.name }

// Values returns the enum values in declaration order.
// The returned slice is a copy; callers may mutate it freely.
func (k Kit[T, M]) Values() []T {
	out := make([]T, len(k.order))
	copy(out, k.order)
	return out
}

// Len returns the number of declared values.
func (k Kit[T, M]) Len() int { return len(k.order) }

// Has reports whether v is a declared value.
func (k Kit[T, M]) Has(v T) bool {
	_, ok := k.entries[v]
	return ok
}

// Meta returns the metadata for a declared value.
func (k Kit[T, M]) Meta(v T) (M, bool) {
	m, ok := k.entries[v]
	return m, ok
}

// MustMeta returns the metadata for a value that is known to be declared.
// Looking up an undeclared value is a programming error.
func (k Kit[T, M]) MustMeta(v T) M {
	m, ok := k.entries[v]
	if !ok {
		panic(errors.AssertionFailedf("enumkit %s: unknown value %q", k.name, string(v)))
	}
	return m
}

// Parse converts a raw string into a declared enum value.
// Unknown strings return ErrUnknownEnumValue with the registry name attached.
func (k Kit[T, M]) Parse(raw string) (T, error) {
	v := T(raw)
	if _, ok := k.entries[v]; !ok {
		var zero T
		return zero, errors.Wrapf(errors.ErrUnknownEnumValue, "%s: %q", k.name, raw)
	}
	return v, nil
}
