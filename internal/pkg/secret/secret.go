package secret

import (
	"log/slog"
)

// Secret is a password that passed policy P, identified only by its
// fingerprint. The zero value matches nothing.
//
// Secrets are immutable and safe for concurrent use.
type Secret[P Policy] struct {
	fp    Fingerprint
	valid bool
}

// Password is a Secret guarded by DefaultPolicy.
type Password = Secret[DefaultPolicy]

// New validates raw with P and returns a Secret holding its fingerprint.
// A policy error is returned unchanged.
func New[P Policy](raw string) (Secret[P], error) {
	var policy P
	if err := policy.Validate(raw); err != nil {
		return Secret[P]{}, err
	}
	return Secret[P]{fp: Sum(raw), valid: true}, nil
}

// NewPassword is New[DefaultPolicy].
func NewPassword(raw string) (Password, error) {
	return New[DefaultPolicy](raw)
}

// Matches returns nil when candidate has the secret's fingerprint and a
// *MatchError carrying candidate otherwise.
func (s Secret[P]) Matches(candidate string) error {
	if !s.valid || Sum(candidate) != s.fp {
		return &MatchError{Value: candidate}
	}
	return nil
}

// Fingerprint returns the stored fingerprint.
func (s Secret[P]) Fingerprint() Fingerprint {
	return s.fp
}

// Equal reports whether both secrets were created from the same input.
func (s Secret[P]) Equal(other Secret[P]) bool {
	return s.valid && other.valid && s.fp == other.fp
}

// String never reveals more than the fingerprint.
func (s Secret[P]) String() string {
	if !s.valid {
		return "Secret(unset)"
	}
	return "Secret(" + s.fp.String() + ")"
}

// LogValue implements slog.LogValuer.
func (s Secret[P]) LogValue() slog.Value {
	return slog.StringValue(s.String())
}
