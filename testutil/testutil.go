package testutil

import (
	"math/rand"
	"net/url"
	"strconv"
	"strings"
	"sync"
)

// alphabet includes characters that need percent-encoding in a query string.
const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 -_.~+/%&=,?#"

// Entry is one key=value pair of a query string.
type Entry struct {
	Key   string
	Value string
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// String returns a random string of length [0, maxLen] drawn from an
// alphabet that includes URL-reserved characters.
func (r *RNG) String(maxLen int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stringLocked(maxLen)
}

func (r *RNG) stringLocked(maxLen int) string {
	n := r.rand.Intn(maxLen + 1)
	var sb strings.Builder
	sb.Grow(n)
	for range n {
		sb.WriteByte(alphabet[r.rand.Intn(len(alphabet))])
	}
	return sb.String()
}

// Map returns a map with numKeys keys, each holding 1..maxValues values.
func (r *RNG) Map(numKeys, maxValues int) map[string][]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := make(map[string][]string, numKeys)
	for i := range numKeys {
		n := 1 + r.rand.Intn(maxValues)
		vs := make([]string, n)
		for j := range vs {
			vs[j] = r.stringLocked(12)
		}
		m["k"+strconv.Itoa(i)] = vs
	}
	return m
}

// Entries returns n pairs whose keys are drawn from keySpace distinct keys,
// so repeated keys are likely.
func (r *RNG) Entries(n, keySpace int) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]Entry, n)
	for i := range entries {
		entries[i] = Entry{
			Key:   "k" + strconv.Itoa(r.rand.Intn(keySpace)),
			Value: r.stringLocked(12),
		}
	}
	return entries
}

// Join renders entries as a URL-encoded query string, preserving order.
func Join(entries []Entry) string {
	var sb strings.Builder
	for i, e := range entries {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(e.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(e.Value))
	}
	return sb.String()
}

// Group collects the values of each key in order of appearance.
func Group(entries []Entry) map[string][]string {
	m := make(map[string][]string)
	for _, e := range entries {
		m[e.Key] = append(m[e.Key], e.Value)
	}
	return m
}

// TotalValues returns the number of values across all keys of m.
func TotalValues(m map[string][]string) int {
	n := 0
	for _, vs := range m {
		n += len(vs)
	}
	return n
}
