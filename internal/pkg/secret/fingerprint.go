package secret

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint is the XXH64 (seed 0) digest of a string's bytes. It is stable
// across processes and platforms.
type Fingerprint uint64

// Sum returns the fingerprint of s.
func Sum(s string) Fingerprint {
	return Fingerprint(xxhash.Sum64String(s))
}

// String renders the fingerprint as 16 hex digits.
func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x", uint64(f))
}
