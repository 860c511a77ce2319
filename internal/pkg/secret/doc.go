// Package secret wraps passwords in a validated, opaque type.
//
// A Secret can only be obtained from New, which runs the policy chosen by the
// type parameter and keeps nothing but a 64-bit fingerprint of the input:
//
//	pw, err := secret.New[secret.DefaultPolicy]("correct horse")
//	if err != nil {
//		return err // *secret.CreationError
//	}
//	err = pw.Matches(candidate) // nil or *secret.MatchError
//
// The fingerprint is XXH64, a fast non-cryptographic hash. It answers "is this
// the same string" and nothing more: it is unsalted and cheap to brute force.
// Use Seal when the digest may leave the process.
package secret
