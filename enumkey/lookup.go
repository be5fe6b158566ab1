package enumkey

import (
	"iter"
	"slices"
)

// HasKey reports whether any value in seq matches key.
func HasKey[E Keyed[K], K KeyEnum](seq iter.Seq[E], key K) bool {
	for v := range seq {
		if v.EqualKey(key) {
			return true
		}
	}
	return false
}

// GetByKey returns the first value in seq matching key.
func GetByKey[E Keyed[K], K KeyEnum](seq iter.Seq[E], key K) (E, bool) {
	for v := range seq {
		if v.EqualKey(key) {
			return v, true
		}
	}
	var zero E
	return zero, false
}

// GetAllByKey returns every value in seq matching key, in iteration order.
func GetAllByKey[E Keyed[K], K KeyEnum](seq iter.Seq[E], key K) []E {
	var out []E
	for v := range seq {
		if v.EqualKey(key) {
			out = append(out, v)
		}
	}
	return out
}

// HasKeyIn is HasKey over a slice.
func HasKeyIn[E Keyed[K], K KeyEnum](values []E, key K) bool {
	return HasKey(slices.Values(values), key)
}

// GetByKeyIn is GetByKey over a slice.
func GetByKeyIn[E Keyed[K], K KeyEnum](values []E, key K) (E, bool) {
	return GetByKey(slices.Values(values), key)
}

// GetAllByKeyIn is GetAllByKey over a slice.
func GetAllByKeyIn[E Keyed[K], K KeyEnum](values []E, key K) []E {
	return GetAllByKey(slices.Values(values), key)
}
