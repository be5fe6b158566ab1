// Package enumkey holds the contracts that code generated by gen-enumkeys
// satisfies, plus lookup helpers that work over any type implementing them.
//
// A key type is a payload-free mirror of a sum type: one key per variant,
// carrying only the variant tag (and, for a single default variant, a string
// value). Generated variant types implement [Keyed]. A sum type that embeds
// Keyed in its own method set can be searched by key:
//
//	type Extension interface {
//		isExtension()
//		enumkey.Keyed[ExtensionKey]
//	}
//
//	exts := []Extension{Size{Limit: 10}, &StartTLS{}, Other("x-foo")}
//	if enumkey.HasKeyIn(exts, ExtensionKeyStartTLS) {
//		...
//	}
package enumkey

import "errors"

// ErrUnknownKey is returned by generated Parse functions when a string does
// not name any key and the key type has no default variant.
var ErrUnknownKey = errors.New("enumkey: unknown key")

// KeyEnum is implemented by every generated key type. Keys are comparable so
// that they can be used with == and as map keys.
type KeyEnum interface {
	comparable
	KeyEnum()
}

// HasKeyEnum is implemented by values that can produce a key.
//
// GetKey always returns a key that owns its data. GetKeyBorrowed may return a
// key whose default value shares memory with the receiver; for key types
// generated without the borrowed strategy both methods behave the same.
type HasKeyEnum[K KeyEnum] interface {
	GetKey() K
	GetKeyBorrowed() K
}

// Keyed is a HasKeyEnum that can also be compared against its own key type.
type Keyed[K KeyEnum] interface {
	HasKeyEnum[K]
	EqualKey(k K) bool
}

// StrEqualer is implemented by values generated with string comparison.
type StrEqualer interface {
	EqualsStr(candidate string) bool
}

// StrEquals reports whether candidate matches v. It is the reversed form of
// v.EqualsStr(candidate).
func StrEquals[T StrEqualer](candidate string, v T) bool {
	return v.EqualsStr(candidate)
}
