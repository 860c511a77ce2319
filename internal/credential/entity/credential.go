package entity

import (
	"github.com/shandysiswandi/gosecret/internal/pkg/secret"
)

// Mode selects how an enrolled password is kept.
type Mode string

const (
	// ModeFingerprint keeps an XXH64 fingerprint (secret.Secret).
	ModeFingerprint Mode = "fingerprint"
	// ModeSealed keeps a salted slow digest (secret.Sealed).
	ModeSealed Mode = "sealed"
)

// Modes lists every Mode.
func Modes() []Mode {
	return []Mode{ModeFingerprint, ModeSealed}
}

// Credential is an enrolled password. Policy and Mode are fixed at enrollment.
type Credential struct {
	Policy  string
	Mode    Mode
	Matcher secret.Matcher
}

// String never reveals anything about the password.
func (c Credential) String() string {
	return "Credential{policy=" + c.Policy + ", mode=" + string(c.Mode) + "}"
}
