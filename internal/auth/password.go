package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	hashAlgorithm = "pbkdf2_sha256"
	saltBytes     = 16
	keyBytes      = 32
)

// Hasher derives and verifies salted PBKDF2-HMAC-SHA256 password hashes in
// the self-describing form "pbkdf2_sha256$<iterations>$<salt>$<key>". The
// salt and key fields are base64url encoded; the encoded salt string itself
// is the PBKDF2 salt input, so stored hashes stay portable as plain text.
type Hasher struct {
	iterations int
}

func NewHasher(iterations int) *Hasher {
	return &Hasher{iterations: iterations}
}

// Hash derives an encoded hash with a fresh random salt. Hashing the same
// password twice yields different strings.
func (h *Hasher) Hash(password string) (string, error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	salt := base64.URLEncoding.EncodeToString(raw)
	key := pbkdf2.Key([]byte(password), []byte(salt), h.iterations, keyBytes, sha256.New)
	return fmt.Sprintf("%s$%d$%s$%s", hashAlgorithm, h.iterations,
		salt, base64.URLEncoding.EncodeToString(key)), nil
}

// Verify re-derives the key using the iteration count and salt embedded in
// the encoded hash and compares in constant time. Malformed encoded hashes
// verify as false.
func (h *Hasher) Verify(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 {
		return false
	}
	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return false
	}
	salt := parts[2]
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyBytes, sha256.New)
	return hmac.Equal([]byte(base64.URLEncoding.EncodeToString(key)), []byte(parts[3]))
}
