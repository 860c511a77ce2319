// Package hash provides salted, slow digests for secrets.
//
// Store only the digest, then verify later input by comparing the plaintext
// against it. Implementations (bcrypt, argon2id, HMAC-SHA256) live in this
// package behind the small Hash interface and can be picked by name from
// configuration with NewFromName.
package hash
