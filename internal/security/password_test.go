package security_test

import (
	"strings"
	"testing"

	"github.com/geocoder89/accounthub/internal/security"
)

func TestHashSecretRoundTrip(t *testing.T) {
	hash, err := security.HashSecret("secret1")

	if err != nil {
		t.Fatalf("HashSecret failed: %v", err)
	}

	if hash == "" {
		t.Fatal("expected a non-empty hash")
	}

	if strings.Contains(string(hash), "secret1") {
		t.Fatal("hash must not contain the plaintext")
	}

	if err := hash.Verify("secret1"); err != nil {
		t.Fatalf("Verify rejected the original secret: %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	hash, err := security.HashSecret("secret1")

	if err != nil {
		t.Fatalf("HashSecret failed: %v", err)
	}

	if err := hash.Verify("secret2"); err == nil {
		t.Fatal("expected mismatch error for a wrong secret")
	}
}

func TestHashSecretSalted(t *testing.T) {
	a, err := security.HashSecret("secret1")
	if err != nil {
		t.Fatalf("HashSecret failed: %v", err)
	}

	b, err := security.HashSecret("secret1")
	if err != nil {
		t.Fatalf("HashSecret failed: %v", err)
	}

	if a == b {
		t.Fatal("two hashes of the same secret should differ")
	}
}
