package querymap

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// store is the immutable backing data of a QueryMap.
//
// Every key present in values maps to a non-empty list. keys holds the same
// key set in ascending order and drives iteration.
type store[V any] struct {
	values map[string][]V
	keys   []string
	size   int
}

// newStore takes ownership of values. Callers guarantee that no list is empty.
func newStore[V any](values map[string][]V) *store[V] {
	if len(values) == 0 {
		return nil
	}

	size := 0
	for _, vs := range values {
		size += len(vs)
	}

	return &store[V]{
		values: values,
		keys:   slices.Sorted(maps.Keys(values)),
		size:   size,
	}
}

// QueryMap is a read-only view into a map of data which may contain
// multiple values per key.
//
// Internally data is always represented as many values. A QueryMap is a small
// handle: copies share the same underlying data, which is never modified
// after construction, so a QueryMap may be passed by value and read from
// multiple goroutines without synchronization.
//
// The zero value is an empty map.
type QueryMap[V any] struct {
	s *store[V]
}

// New wraps a raw mapping of keys to value lists.
//
// The outer map is copied so later changes to m do not leak into the
// QueryMap. Keys with empty value lists are dropped. The value slices
// themselves are shared; the caller must not modify them afterwards.
func New[V any](m map[string][]V) QueryMap[V] {
	values := make(map[string][]V, len(m))
	for k, vs := range m {
		if len(vs) == 0 {
			continue
		}
		values[k] = slices.Clip(vs)
	}
	return QueryMap[V]{s: newStore(values)}
}

// wrap builds a QueryMap around values produced by one of the decoders.
func wrap[V any](values map[string][]V) QueryMap[V] {
	return QueryMap[V]{s: newStore(values)}
}

// First returns the first value associated with key.
func (m QueryMap[V]) First(key string) (V, bool) {
	if m.s != nil {
		if vs, ok := m.s.values[key]; ok {
			return vs[0], true
		}
	}
	var zero V
	return zero, false
}

// All returns every value associated with key, in source order.
//
// The returned slice is a copy of the list; modifying it does not affect the
// map. The elements are copied by value, so callers with large V should use
// Values to walk the list without allocating.
func (m QueryMap[V]) All(key string) ([]V, bool) {
	if m.s == nil {
		return nil, false
	}
	vs, ok := m.s.values[key]
	if !ok {
		return nil, false
	}
	return slices.Clone(vs), true
}

// Values returns an iterator over the values associated with key.
// The sequence is empty when the key is absent.
func (m QueryMap[V]) Values(key string) iter.Seq[V] {
	return func(yield func(V) bool) {
		if m.s == nil {
			return
		}
		for _, v := range m.s.values[key] {
			if !yield(v) {
				return
			}
		}
	}
}

// Has reports whether key is present.
func (m QueryMap[V]) Has(key string) bool {
	if m.s == nil {
		return false
	}
	_, ok := m.s.values[key]
	return ok
}

// IsEmpty returns true if there are no elements in the map.
func (m QueryMap[V]) IsEmpty() bool {
	return m.s == nil || len(m.s.values) == 0
}

// Len returns the number of distinct keys.
func (m QueryMap[V]) Len() int {
	if m.s == nil {
		return 0
	}
	return len(m.s.keys)
}

// Size returns the number of values across all keys.
func (m QueryMap[V]) Size() int {
	if m.s == nil {
		return 0
	}
	return m.s.size
}

// Keys returns an iterator over the keys in ascending order.
func (m QueryMap[V]) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		if m.s == nil {
			return
		}
		for _, k := range m.s.keys {
			if !yield(k) {
				return
			}
		}
	}
}

// Clone returns a handle sharing the same underlying data.
func (m QueryMap[V]) Clone() QueryMap[V] {
	return QueryMap[V]{s: m.s}
}

// ToMap returns an independent copy of the data as a plain Go map.
func (m QueryMap[V]) ToMap() map[string][]V {
	if m.s == nil {
		return map[string][]V{}
	}
	out := make(map[string][]V, len(m.s.values))
	for k, vs := range m.s.values {
		out[k] = slices.Clone(vs)
	}
	return out
}

// EqualFunc reports whether both maps hold the same keys with the same value
// lists in the same order, comparing values with eq.
func (m QueryMap[V]) EqualFunc(other QueryMap[V], eq func(V, V) bool) bool {
	if m.s == other.s {
		return true
	}
	if m.Len() != other.Len() || m.Size() != other.Size() {
		return false
	}
	return maps.EqualFunc(m.s.values, other.s.values, func(a, b []V) bool {
		return slices.EqualFunc(a, b, eq)
	})
}

// Equal reports whether a and b hold the same keys with the same value lists.
func Equal[V comparable](a, b QueryMap[V]) bool {
	return a.EqualFunc(b, func(x, y V) bool { return x == y })
}

// String renders the map the way fmt renders a map[string][]V.
func (m QueryMap[V]) String() string {
	if m.s == nil {
		return "map[]"
	}
	return fmt.Sprint(m.s.values)
}
