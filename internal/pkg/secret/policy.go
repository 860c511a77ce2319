package secret

import (
	"sync"

	"github.com/shandysiswandi/gosecret/internal/pkg/validator"
)

// Policy decides whether a candidate may become a Secret.
//
// Implementations must be stateless: New calls Validate on the zero value of
// the policy type. A rejection should be a *CreationError carrying candidate.
type Policy interface {
	Validate(candidate string) error
}

// Reasons reported in CreationError.Reason.
const (
	ReasonTooShort = "too short"
	ReasonNonASCII = "contains non-ASCII characters"
	ReasonRule     = "does not satisfy the password rule"
)

// DefaultMinLength is the minimum byte length accepted by DefaultPolicy.
const DefaultMinLength = 8

// DefaultPolicy accepts ASCII-only input of at least DefaultMinLength bytes.
type DefaultPolicy struct{}

// Validate implements Policy.
func (DefaultPolicy) Validate(candidate string) error {
	if len(candidate) < DefaultMinLength {
		return &CreationError{Value: candidate, Reason: ReasonTooShort}
	}
	for i := 0; i < len(candidate); i++ {
		if candidate[i] >= 0x80 {
			return &CreationError{Value: candidate, Reason: ReasonNonASCII}
		}
	}
	return nil
}

// NoOpPolicy accepts everything, including the empty string.
type NoOpPolicy struct{}

// Validate implements Policy.
func (NoOpPolicy) Validate(string) error {
	return nil
}

// StrictPolicy applies the shared "password" validation rule: 8 to 72 printable
// ASCII characters.
type StrictPolicy struct{}

var strictRules = sync.OnceValues(func() (validator.Validator, error) {
	return validator.NewV10Validator()
})

// Validate implements Policy.
func (StrictPolicy) Validate(candidate string) error {
	v, err := strictRules()
	if err != nil {
		return err
	}
	if err := v.Var(candidate, "password"); err != nil {
		return &CreationError{Value: candidate, Reason: ReasonRule}
	}
	return nil
}
