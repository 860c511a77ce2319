package hash

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Algorithm names accepted by NewFromName.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
	AlgorithmHMAC     = "hmac"
)

// ErrUnknownAlgorithm is returned by NewFromName for unsupported names.
var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

// Hash turns a plaintext into a stored digest and verifies plaintexts against it.
type Hash interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hashed, plaintext string) bool
}

// Options carries per-algorithm settings for NewFromName.
// Zero values fall back to each algorithm's defaults.
type Options struct {
	BcryptCost        int
	BcryptPepper      string
	Argon2idPepper    string
	Argon2idMemoryKiB uint32
	Argon2idTime      uint32
	HMACSecret        string
}

var constructors = map[string]func(Options) Hash{
	AlgorithmBcrypt: func(o Options) Hash {
		return NewBcrypt(o.BcryptCost, o.BcryptPepper)
	},
	AlgorithmArgon2id: func(o Options) Hash {
		return NewArgon2id(o.Argon2idPepper,
			WithArgon2idMemory(o.Argon2idMemoryKiB),
			WithArgon2idIterations(o.Argon2idTime),
		)
	},
	AlgorithmHMAC: func(o Options) Hash {
		return NewHMACSHA256(o.HMACSecret)
	},
}

// Algorithms lists the names accepted by NewFromName, sorted.
func Algorithms() []string {
	names := lo.Keys(constructors)
	slices.Sort(names)
	return names
}

// NewFromName builds the hasher registered under name (case-insensitive).
func NewFromName(name string, opts Options) (Hash, error) {
	ctor, ok := constructors[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w %q, expected one of %s", ErrUnknownAlgorithm, name, strings.Join(Algorithms(), ", "))
	}
	return ctor(opts), nil
}
