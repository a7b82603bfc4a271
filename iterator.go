package querymap

import "iter"

// Iterator walks the flattened (key, value) pairs of a QueryMap without
// materializing them. A key with three values yields three pairs.
//
// Keys are visited in ascending order and values in source order.
type Iterator[V any] struct {
	s       *store[V]
	keyPos  int
	key     string
	current []V // nil until a key is pulled and after its last value
	nextIdx int
}

// Iter returns a new iterator positioned before the first pair.
func (m QueryMap[V]) Iter() *Iterator[V] {
	return &Iterator[V]{s: m.s}
}

// Next returns the next pair. ok is false once the map is exhausted.
func (it *Iterator[V]) Next() (key string, value V, ok bool) {
	if it.current == nil {
		if it.s == nil || it.keyPos >= len(it.s.keys) {
			return "", value, false
		}
		it.key = it.s.keys[it.keyPos]
		it.current = it.s.values[it.key]
		it.keyPos++
	}

	key, value = it.key, it.current[it.nextIdx]

	if it.nextIdx+1 < len(it.current) {
		it.nextIdx++
	} else {
		it.current = nil
		it.nextIdx = 0
	}

	return key, value, true
}

// Pairs returns an iterator over every (key, value) pair.
//
//	for k, v := range m.Pairs() {
//	    fmt.Println(k, v)
//	}
func (m QueryMap[V]) Pairs() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		it := m.Iter()
		for {
			k, v, ok := it.Next()
			if !ok || !yield(k, v) {
				return
			}
		}
	}
}
