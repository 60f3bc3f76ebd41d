// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto holds the credential primitives used by the authentication
// core: a salted, deliberately slow password hasher and the MPIN helpers.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher hashes and verifies the password factor.
//
// Implementations must use a salted, deliberately slow algorithm. Verify must
// never compare digests by plain string equality.
type PasswordHasher interface {
	// Hash returns a self-describing digest of plaintext (salt and cost included).
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches digest. A malformed digest is
	// reported as a mismatch.
	Verify(plaintext, digest string) bool
}
