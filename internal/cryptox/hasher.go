// Package cryptox hashes and verifies user passwords.
//
// Two schemes exist. The legacy scheme is a salted SHA-256 hex digest with a
// rolling-hash fallback, kept bit-compatible with digests already persisted.
// The argon2id scheme produces self-describing PHC-style strings. Verify
// accepts digests of either scheme, so stored users keep working after the
// configured scheme changes.
package cryptox

import (
	"crypto/subtle"
	"fmt"
	"strings"
)

// Scheme names accepted by New.
const (
	SchemeLegacy   = "sha256"
	SchemeArgon2id = "argon2id"
)

// Hasher turns a password into a storable digest and checks it back.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
	// NeedsRehash reports whether digest is weaker than what this Hasher
	// produces and should be replaced on the next successful login. A
	// stronger digest is never reported.
	NeedsRehash(digest string) bool
}

// New returns the Hasher for scheme. An empty scheme selects the legacy one.
func New(scheme string) (Hasher, error) {
	switch scheme {
	case "", SchemeLegacy:
		return NewLegacyHasher(), nil
	case SchemeArgon2id:
		return NewArgon2Hasher(DefaultArgon2Params), nil
	default:
		return nil, fmt.Errorf("unknown hash scheme %q", scheme)
	}
}

// Verify checks password against a digest of any supported scheme.
func Verify(password, digest string) bool {
	if strings.HasPrefix(digest, argon2Prefix) {
		return NewArgon2Hasher(DefaultArgon2Params).Verify(password, digest)
	}
	return NewLegacyHasher().Verify(password, digest)
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
