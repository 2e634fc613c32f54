package auth_test

import (
	"testing"
	"time"

	"github.com/geocoder89/accounthub/internal/auth"
)

const (
	testSecret = "test-secret-key"
	testIssuer = "accounthub-test"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	m := auth.NewManager(testSecret, testIssuer, time.Hour)

	token, err := m.GenerateToken(42, "a@x.com", "A")

	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	claims, err := m.VerifyToken(token)

	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}

	if claims.Email != "a@x.com" {
		t.Fatalf("got email %q, want %q", claims.Email, "a@x.com")
	}

	if claims.Name != "A" {
		t.Fatalf("got name %q, want %q", claims.Name, "A")
	}

	id, err := claims.UserID()

	if err != nil {
		t.Fatalf("UserID failed: %v", err)
	}

	if id != 42 {
		t.Fatalf("got id %d, want 42", id)
	}
}

func TestVerifyTokenRejections(t *testing.T) {
	m := auth.NewManager(testSecret, testIssuer, time.Hour)

	goodToken, err := m.GenerateToken(1, "a@x.com", "A")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	expired, err := auth.NewManager(testSecret, testIssuer, -time.Minute).GenerateToken(1, "a@x.com", "A")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	otherKey, err := auth.NewManager("another-secret", testIssuer, time.Hour).GenerateToken(1, "a@x.com", "A")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	otherIssuer, err := auth.NewManager(testSecret, "someone-else", time.Hour).GenerateToken(1, "a@x.com", "A")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{name: "valid", token: goodToken, wantErr: false},
		{name: "garbage", token: "not-a-token", wantErr: true},
		{name: "expired", token: expired, wantErr: true},
		{name: "wrong_key", token: otherKey, wantErr: true},
		{name: "wrong_issuer", token: otherIssuer, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			_, err := m.VerifyToken(tt.token)

			if tt.wantErr && err == nil {
				t.Fatal("expected verification to fail")
			}

			if !tt.wantErr && err != nil {
				t.Fatalf("expected verification to pass, got %v", err)
			}
		})
	}
}
