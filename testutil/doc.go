// Package testutil provides testing utilities for querymap.
//
// This package is intended for use in tests and benchmarks only.
// It generates seeded random maps and query strings for property tests.
//
// # Random Maps
//
//	rng := testutil.NewRNG(seed)
//	raw := rng.Map(16, 4)           // map[string][]string, 16 keys, 1..4 values
//
// # Random Query Strings
//
//	entries := rng.Entries(32, 8)   // 32 pairs drawn from 8 keys
//	query := testutil.Join(entries) // "k3=v...&k1=v..."
//	want := testutil.Group(entries) // expected result of querymap.Parse
package testutil
