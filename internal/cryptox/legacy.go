package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"unicode/utf16"
)

// StaticSecret is appended to every password before SHA-256 hashing.
const StaticSecret = "salt_secreto_sistema_memorias"

// digest is the primary hash primitive, replaceable in tests to exercise the fallback.
var digest = func(data []byte) ([]byte, error) {
	sum := sha256.Sum256(data)
	return sum[:], nil
}

// LegacyHasher produces lowercase hex SHA-256 of password+StaticSecret.
// If the digest primitive fails it falls back to FallbackHash of the bare
// password.
type LegacyHasher struct{}

func NewLegacyHasher() *LegacyHasher {
	return &LegacyHasher{}
}

func (h *LegacyHasher) Hash(password string) (string, error) {
	sum, err := digest([]byte(password + StaticSecret))
	if err != nil {
		return FallbackHash(password), nil
	}
	return hex.EncodeToString(sum), nil
}

// Verify compares against a SHA-256 digest when digest looks like one and
// against the fallback hash otherwise.
func (h *LegacyHasher) Verify(password, stored string) bool {
	if isSHA256Hex(stored) {
		sum, err := digest([]byte(password + StaticSecret))
		if err != nil {
			return false
		}
		return equal(hex.EncodeToString(sum), stored)
	}
	return equal(FallbackHash(password), stored)
}

// NeedsRehash is always false: an argon2id digest is stronger than anything
// this scheme produces and is kept as is.
func (h *LegacyHasher) NeedsRehash(string) bool {
	return false
}

// FallbackHash is a 32-bit rolling hash (h = h*31 + c) over the UTF-16 code
// units of s, wrapped to int32, rendered as the lowercase hex of its absolute
// value. The empty string hashes to "0".
func FallbackHash(s string) string {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 16)
}

func isSHA256Hex(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
