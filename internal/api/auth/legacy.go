package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"io"
	"strings"
)

// legacyPrefix marks password records carried over from the previous
// deployment, which stored credentials reversibly encrypted instead of
// hashed. Matching records are decrypted for comparison at login and
// rehashed with bcrypt on first successful use.
const legacyPrefix = "enc:"

// LegacyCipher decrypts AES-256-GCM password records written by the
// previous deployment. The key is derived from the shared secret with
// SHA-256.
type LegacyCipher struct {
	key []byte
}

func NewLegacyCipher(secret string) *LegacyCipher {
	sum := sha256.Sum256([]byte(secret))
	return &LegacyCipher{key: sum[:]}
}

// IsLegacyRecord reports whether a stored password record uses the
// reversible legacy format.
func IsLegacyRecord(stored string) bool {
	return strings.HasPrefix(stored, legacyPrefix)
}

// Encrypt produces a legacy-format record: the prefix followed by
// base64 of nonce||ciphertext. Kept for migration tooling and tests.
func (c *LegacyCipher) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return legacyPrefix + base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. The record must carry the legacy prefix.
func (c *LegacyCipher) Decrypt(stored string) (string, error) {
	if !IsLegacyRecord(stored) {
		return "", errors.New("not a legacy password record")
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(stored, legacyPrefix))
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, cipherBytes := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, cipherBytes, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// Compare decrypts a legacy record and compares it to the candidate in
// constant time.
func (c *LegacyCipher) Compare(stored, candidate string) (bool, error) {
	plaintext, err := c.Decrypt(stored)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(plaintext), []byte(candidate)) == 1, nil
}
