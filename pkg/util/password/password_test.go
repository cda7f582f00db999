package password

import (
	"errors"
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("admin123")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("hash not in PHC format: %q", hash)
	}

	t.Run("correct password verifies", func(t *testing.T) {
		if err := Verify(hash, "admin123"); err != nil {
			t.Errorf("Verify() error: %v", err)
		}
	})

	t.Run("wrong password mismatches", func(t *testing.T) {
		if err := Verify(hash, "wrong"); !errors.Is(err, ErrMismatch) {
			t.Errorf("expected ErrMismatch, got %v", err)
		}
	})

	t.Run("two hashes of one password differ", func(t *testing.T) {
		other, err := Hash("admin123")
		if err != nil {
			t.Fatalf("Hash() error: %v", err)
		}
		if other == hash {
			t.Error("expected distinct salts to produce distinct hashes")
		}
	})
}

func TestVerifyInvalidHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"wrong segment count", "$argon2id$v=19$m=65536"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
		{"garbage salt", "$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Verify(tt.hash, "whatever"); err == nil {
				t.Error("expected error for invalid hash")
			}
		})
	}
}

func TestMatch(t *testing.T) {
	hash, err := Hash("reception123")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	if !Match(hash, "reception123") {
		t.Error("Match() = false for correct password")
	}
	if Match(hash, "reception124") {
		t.Error("Match() = true for wrong password")
	}
}
