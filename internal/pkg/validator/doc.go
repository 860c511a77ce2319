// Package validator provides a small validation abstraction for input and
// dependency structs.
//
// Business code depends on the Validator interface so rules are shared and
// tested consistently. The go-playground/validator v10 implementation lives in
// this package and registers the "password" rule used by the strict secret
// policy.
package validator
