package secret

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrInvalidPassword is matched by every *CreationError.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrPasswordMismatch is matched by every *MatchError.
	ErrPasswordMismatch = errors.New("password mismatch")

	// ErrUnknownPolicy is returned by NewMatcher for unregistered policy names.
	ErrUnknownPolicy = errors.New("unknown password policy")
)

// CreationError reports a value rejected by a Policy.
//
// Value is the rejected input. It is echoed by Error, so never log the error
// text of a CreationError built from real user input; structured logging goes
// through LogValue, which leaves Value out.
type CreationError struct {
	Value  string
	Reason string
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("%s is not a valid password", e.Value)
}

// Unwrap lets errors.Is match ErrInvalidPassword.
func (e *CreationError) Unwrap() error {
	return ErrInvalidPassword
}

// LogValue implements slog.LogValuer.
func (e *CreationError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrInvalidPassword.Error()),
		slog.String("reason", e.Reason),
	)
}

// MatchError reports a candidate whose fingerprint differs from the secret's.
type MatchError struct {
	Value string
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("%s does not match the password", e.Value)
}

// Unwrap lets errors.Is match ErrPasswordMismatch.
func (e *MatchError) Unwrap() error {
	return ErrPasswordMismatch
}

// LogValue implements slog.LogValuer.
func (e *MatchError) LogValue() slog.Value {
	return slog.StringValue(ErrPasswordMismatch.Error())
}
