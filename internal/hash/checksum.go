// Package hash computes the checksums stored in chunk frames.
package hash

import "github.com/cespare/xxhash/v2"

// Checksum computes the xxHash64 of an uncompressed chunk payload.
func Checksum(payload []byte) uint64 {
	return xxhash.Sum64(payload)
}

// Verify reports whether payload hashes to want.
func Verify(payload []byte, want uint64) bool {
	return xxhash.Sum64(payload) == want
}
