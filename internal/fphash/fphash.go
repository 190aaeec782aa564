// Package fphash derives the per-operation set index and fingerprint used by
// the set-associative probe from a user key. It is the "hash plumbing"
// component: a single 64-bit hash of the key feeds both numbers, so every
// operation on a given cache instance must route through the same Hasher.
//
// The key-type dispatch (string / scalar) mirrors the shard-local hashing
// done by the teacher implementation's shard.hash method, lifted into its
// own package so SingleCache, Shard and tests can all depend on the exact
// same derivation without importing the cache package.
//
// © 2025 arena-cache authors. MIT License.
package fphash

import (
	"hash/maphash"
	"unsafe"

	"github.com/arena-cache/setcache/internal/unsafehelpers"
)

// Hasher wraps a per-instance maphash seed. The zero value is not usable;
// construct with New.
type Hasher struct {
	seed maphash.Seed
}

// New returns a Hasher seeded once at construction time. The seed is kept for
// the lifetime of the owning cache: every Insert/Get/Invalidate on that cache
// must use the same Hasher, otherwise a key's set index and fingerprint would
// change between calls.
func New() Hasher {
	return Hasher{seed: maphash.MakeSeed()}
}

// Sum64 hashes key using h's seed. String keys are written directly; any
// other comparable type is hashed via its raw in-memory bytes. That agrees
// with == for pointer-free key types (integers, floats other than ±0 and
// NaN, arrays and structs of those); for a key type that holds a string,
// pointer, interface or channel inside it, the bytes hashed are the
// references themselves, so two keys that compare equal but refer to
// different memory get different hashes. There is no []byte case: K is
// constrained to comparable, and slice types never satisfy that constraint
// (not even under Go 1.20's relaxed interface-comparability rules, which
// apply only to interface-typed values, not to a concrete slice type
// instantiating K), so a []byte key can never reach this function.
func Sum64[K comparable](h Hasher, key K) uint64 {
	var mh maphash.Hash
	mh.SetSeed(h.seed)

	switch k := any(key).(type) {
	case string:
		mh.WriteString(k)
	default:
		ptr := unsafe.Pointer(&key)
		size := unsafe.Sizeof(key)
		mh.Write(unsafehelpers.ByteSliceFrom(ptr, size))
	}
	return mh.Sum64()
}

// SetIndex extracts the set index from a key hash given setMask = S-1 for a
// power-of-two set count S.
func SetIndex(h uint64, setMask uint64) uint64 {
	return h & setMask
}

// Fingerprint extracts the 8-bit fingerprint stored per slot from a key hash.
func Fingerprint(h uint64) byte {
	return byte(h & 0xFF)
}
