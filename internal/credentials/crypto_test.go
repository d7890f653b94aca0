package credentials

import (
	"encoding/base64"
	"errors"
	"testing"
)

func testKey(t *testing.T, seed byte) *[32]byte {
	t.Helper()
	var key [32]byte
	for i := range key {
		key[i] = seed + byte(i)
	}
	return &key
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	key := testKey(t, 1)
	plaintext := `{"token":"at-123","refresh_token":"rt-456"}`

	blob, err := Encrypt(key, plaintext)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if blob == plaintext {
		t.Fatal("ciphertext equals plaintext")
	}

	got, err := Decrypt(key, blob)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if got != plaintext {
		t.Errorf("round trip mismatch: %q", got)
	}
}

func TestEncrypt_UniqueNonces(t *testing.T) {
	key := testKey(t, 1)

	a, err := Encrypt(key, "same input")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Encrypt(key, "same input")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two encryptions of the same input produced identical blobs")
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	blob, err := Encrypt(testKey(t, 1), "secret stuff")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Decrypt(testKey(t, 2), blob); !errors.Is(err, ErrDecryptFailed) {
		t.Errorf("expected ErrDecryptFailed, got %v", err)
	}
}

// TestDecrypt_LegacyPlaintext verifies that rows stored before encryption was
// introduced come back unchanged.
func TestDecrypt_LegacyPlaintext(t *testing.T) {
	legacy := `{"token":"plain-old-token"}`
	got, err := Decrypt(testKey(t, 1), legacy)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if got != legacy {
		t.Errorf("expected passthrough, got %q", got)
	}
}

func TestLoadKey(t *testing.T) {
	t.Setenv("CREDENTIALS_ENCRYPTION_KEY", "")
	if _, err := LoadKey(); !errors.Is(err, ErrNoEncryptionKey) {
		t.Errorf("expected ErrNoEncryptionKey, got %v", err)
	}

	t.Setenv("CREDENTIALS_ENCRYPTION_KEY", "not base64!!!")
	if _, err := LoadKey(); err == nil {
		t.Error("expected error for invalid base64")
	}

	t.Setenv("CREDENTIALS_ENCRYPTION_KEY", base64.StdEncoding.EncodeToString([]byte("short")))
	if _, err := LoadKey(); !errors.Is(err, ErrBadKeyLength) {
		t.Errorf("expected ErrBadKeyLength, got %v", err)
	}

	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = byte(i)
	}
	t.Setenv("CREDENTIALS_ENCRYPTION_KEY", base64.StdEncoding.EncodeToString(raw))
	key, err := LoadKey()
	if err != nil {
		t.Fatalf("LoadKey failed: %v", err)
	}
	if key[5] != 5 {
		t.Error("key bytes not copied correctly")
	}
}
