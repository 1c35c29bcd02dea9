package probemap

import (
	"bytes"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// HashFunc maps a key to an unsigned 64-bit hash. Callers must guarantee
// that equal keys hash equally; the table never synthesizes a hash for
// opaque data on its own.
type HashFunc[K any] func(K) uint64

// EqualFunc reports whether two keys are the same key.
type EqualFunc[K any] func(a, b K) bool

// Destructor releases a key or value owned by the table. Registering one
// at construction time is what transfers ownership; see
// WithKeyDestructor and WithValueDestructor.
type Destructor[T any] func(T)

// HashComparable builds a hash function for any comparable key type,
// seeded per call.
func HashComparable[K comparable]() HashFunc[K] {
	seed := maphash.MakeSeed()

	return func(k K) uint64 {
		return maphash.Comparable(seed, k)
	}
}

// EqualComparable builds an equality predicate from the == operator.
func EqualComparable[K comparable]() EqualFunc[K] {
	return func(a, b K) bool {
		return a == b
	}
}

// HashString hashes a string key with xxHash.
func HashString(s string) uint64 {
	return xxhash.Sum64String(s)
}

// HashBytes hashes a byte-slice key with xxHash.
func HashBytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// EqualBytes compares byte-slice keys by content.
func EqualBytes(a, b []byte) bool {
	return bytes.Equal(a, b)
}
