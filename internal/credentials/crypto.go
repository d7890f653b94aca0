package credentials

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/nacl/secretbox"
)

var (
	ErrNoEncryptionKey = errors.New("CREDENTIALS_ENCRYPTION_KEY is not set")
	ErrBadKeyLength    = errors.New("encryption key must decode to 32 bytes")
	ErrDecryptFailed   = errors.New("credential blob failed to decrypt")
)

// LoadKey decodes the base64 encryption key from the environment.
func LoadKey() (*[32]byte, error) {
	raw := os.Getenv("CREDENTIALS_ENCRYPTION_KEY")
	if raw == "" {
		return nil, ErrNoEncryptionKey
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding encryption key: %w", err)
	}
	if len(decoded) != 32 {
		return nil, ErrBadKeyLength
	}
	var key [32]byte
	copy(key[:], decoded)
	return &key, nil
}

// Encrypt seals plaintext with a random nonce and returns base64 of
// nonce||ciphertext.
func Encrypt(key *[32]byte, plaintext string) (string, error) {
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a blob produced by Encrypt. Values stored before encryption
// was introduced are plain JSON; those come back unchanged so old rows keep
// working until next rotation.
func Decrypt(key *[32]byte, blob string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(blob)
	if err != nil || len(decoded) < 25 {
		return blob, nil
	}
	var nonce [24]byte
	copy(nonce[:], decoded[:24])
	plaintext, ok := secretbox.Open(nil, decoded[24:], &nonce, key)
	if !ok {
		return "", ErrDecryptFailed
	}
	return string(plaintext), nil
}
