// Package unsafehelpers centralises **all** unavoidable usage of the
// `unsafe` standard-library package so that the rest of the cache stays clean
// and easier to audit. Every helper is documented with clear pre-/post-
// conditions.
//
// ⚠️  **DISCLAIMER**   These helpers deliberately break the Go memory-safety
// model for the sake of zero-allocation conversions. Use ONLY inside this
// repository; they are not part of the public API and may change without
// notice. Misuse will lead to subtle data-races or garbage-collector
// corruption.
//
// All functions are `go:linkname`-free, cgo-free and pure Go.
//
// © 2025 arena-cache authors. MIT License.

package unsafehelpers

import "unsafe"

/* -------------------------------------------------------------------------
   1. Generic pointer -> byte-slice helper
   ------------------------------------------------------------------------- */

// ByteSliceFrom returns a []byte view of raw memory starting at `ptr` with the
// given length. Caller must ensure the memory block is at least `length`
// bytes. Used by internal/fphash for hashing scalar key types where only the
// pointer and size are known at runtime.
func ByteSliceFrom(ptr unsafe.Pointer, length uintptr) []byte {
	return unsafe.Slice((*byte)(ptr), length)
}

/* -------------------------------------------------------------------------
   2. Size validation
   ------------------------------------------------------------------------- */

// IsPowerOfTwo returns true if x is a power of two (exactly one bit set).
// Used to validate the set-count parameter (cache.newSingleCache and
// tools/dataset_gen), which must be a power of two so that `idx & (n-1)` can
// replace `idx % n`. fplog.New checks its log capacity with its own inline
// test.
func IsPowerOfTwo(x int) bool {
	return x > 0 && (x&(x-1)) == 0
}
