// Package crypto provides the field-level encryption used to protect stored
// identity data. Values are encrypted with AES-256-GCM under a single
// process-wide key; a fresh random nonce is generated per encryption and
// stored alongside the ciphertext, so identical plaintexts never share
// ciphertexts and tampering is detected by the authentication tag.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// KeyLength is the required length of the symmetric key in bytes.
const KeyLength = 32

// FieldCipher encrypts and decrypts individual string-valued fields at the
// storage boundary. The zero value is unusable; construct with NewFieldCipher.
type FieldCipher struct {
	aead   cipher.AEAD
	macKey []byte
}

// NewFieldCipher builds a FieldCipher from the configured key. A key of the
// wrong length is a configuration error and is fatal to the caller.
func NewFieldCipher(key string) (*FieldCipher, error) {
	if len(key) != KeyLength {
		return nil, fmt.Errorf("crypto: encryption key must be %d bytes, got %d", KeyLength, len(key))
	}

	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return nil, fmt.Errorf("crypto: init cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypto: init gcm: %w", err)
	}

	// Lookup digests use a key derived from the cipher key so equality
	// digests cannot be recomputed without it.
	mac := sha256.Sum256([]byte("lookup:" + key))

	return &FieldCipher{aead: aead, macKey: mac[:]}, nil
}

// Encrypt seals plaintext and returns base64(nonce || ciphertext). The empty
// string maps to the empty string so absent fields stay absent.
func (c *FieldCipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("crypto: nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Malformed or tampered ciphertext is an error, not
// a recoverable condition.
func (c *FieldCipher) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("crypto: decode ciphertext: %w", err)
	}
	if len(raw) < c.aead.NonceSize() {
		return "", fmt.Errorf("crypto: ciphertext shorter than nonce")
	}

	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("crypto: decrypt: %w", err)
	}
	return string(plain), nil
}

// Digest returns a deterministic HMAC-SHA256 digest of value, used as the
// exact-match lookup key for encrypted columns. It leaks equality only.
func (c *FieldCipher) Digest(value string) string {
	mac := hmac.New(sha256.New, c.macKey)
	mac.Write([]byte(value))
	return hex.EncodeToString(mac.Sum(nil))
}
