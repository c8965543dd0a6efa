package store

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestGenerateAPIKey(t *testing.T) {
	fullKey, hash, prefix, err := GenerateAPIKey()
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(fullKey, "rsk_") {
		t.Errorf("key %q missing rsk_ prefix", fullKey)
	}
	if len(fullKey) != 68 {
		t.Errorf("key length = %d, want 68", len(fullKey))
	}
	if prefix != fullKey[:8] {
		t.Errorf("prefix = %q, want first 8 chars of key", prefix)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(fullKey)); err != nil {
		t.Errorf("hash does not verify against key: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("rsk_wrong")); err == nil {
		t.Error("hash verified against wrong key")
	}
}

func TestGenerateAPIKey_Unique(t *testing.T) {
	a, _, _, err := GenerateAPIKey()
	if err != nil {
		t.Fatal(err)
	}
	b, _, _, err := GenerateAPIKey()
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two generated keys are identical")
	}
}
