package utils

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("password stored in plaintext")
	}

	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Error("CheckPasswordHash() = false for correct password")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("CheckPasswordHash() = true for wrong password")
	}
}

func TestGenerateToken(t *testing.T) {
	t.Run("fails without secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		if _, err := GenerateToken("id", "admin", "admin"); err == nil {
			t.Error("GenerateToken() error = nil, want error when JWT_SECRET unset")
		}
	})

	t.Run("signs with secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		token, err := GenerateToken("id", "admin", "admin")
		if err != nil {
			t.Fatalf("GenerateToken() error = %v", err)
		}
		if token == "" {
			t.Error("GenerateToken() returned empty token")
		}
	})
}
