package secret

import (
	"fmt"

	"github.com/shandysiswandi/gosecret/internal/pkg/hash"
)

// Sealed is the hardened counterpart of Secret: the input is kept as a salted,
// slow digest produced by a hash.Hash instead of an XXH64 fingerprint.
type Sealed[P Policy] struct {
	hasher hash.Hash
	digest string
}

// Seal validates raw with P and stores h's digest of it.
func Seal[P Policy](h hash.Hash, raw string) (Sealed[P], error) {
	var policy P
	if err := policy.Validate(raw); err != nil {
		return Sealed[P]{}, err
	}

	digest, err := h.Hash(raw)
	if err != nil {
		return Sealed[P]{}, fmt.Errorf("failed to seal password: %w", err)
	}

	return Sealed[P]{hasher: h, digest: string(digest)}, nil
}

// Matches returns nil when candidate verifies against the digest and a
// *MatchError carrying candidate otherwise.
func (s Sealed[P]) Matches(candidate string) error {
	if s.hasher == nil || !s.hasher.Verify(s.digest, candidate) {
		return &MatchError{Value: candidate}
	}
	return nil
}

// Digest returns the stored digest, suitable for persisting.
func (s Sealed[P]) Digest() string {
	return s.digest
}

// String never reveals the digest.
func (s Sealed[P]) String() string {
	if s.hasher == nil {
		return "Sealed(unset)"
	}
	return "Sealed(***)"
}

var sealers = map[string]func(h hash.Hash, raw string) (Matcher, error){
	PolicyDefault: sealMatcher[DefaultPolicy],
	PolicyNoOp:    sealMatcher[NoOpPolicy],
	PolicyStrict:  sealMatcher[StrictPolicy],
}

func sealMatcher[P Policy](h hash.Hash, raw string) (Matcher, error) {
	s, err := Seal[P](h, raw)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// NewSealedMatcher is NewMatcher for sealed secrets.
func NewSealedMatcher(policy string, h hash.Hash, raw string) (Matcher, error) {
	build, ok := sealers[policy]
	if !ok {
		return nil, unknownPolicy(policy)
	}
	return build(h, raw)
}
