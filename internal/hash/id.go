// Package hash wraps xxHash64 for identifier hashing and payload checksums.
package hash

import "github.com/cespare/xxhash/v2"

// Sum64 returns the xxHash64 digest of data.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// String returns the xxHash64 digest of s.
func String(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Fields hashes a fixed sequence of small integer fields in order. Each field
// contributes its little-endian bytes so the result does not depend on the host.
func Fields(fields ...uint64) uint64 {
	d := xxhash.New()
	var b [8]byte
	for _, f := range fields {
		for i := range b {
			b[i] = byte(f >> (8 * i))
		}
		_, _ = d.Write(b[:])
	}

	return d.Sum64()
}
