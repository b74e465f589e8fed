package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/St1cky1/taskmanager/internal/entity"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordManager(t *testing.T) {
	m := NewPasswordManagerWithCost(bcrypt.MinCost)

	hash, err := m.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !m.VerifyPassword(hash, "correct horse") {
		t.Error("Expected password to match its hash")
	}
	if m.VerifyPassword(hash, "wrong horse") {
		t.Error("Expected wrong password not to match")
	}

	tests := []struct {
		name     string
		password string
	}{
		{"too short", "short"},
		{"longer than bcrypt accepts", strings.Repeat("p", 80)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.HashPassword(tt.password)
			if !errors.Is(err, entity.ErrInvalidUserData) || !errors.Is(err, entity.ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidUserData, got %v", err)
			}
		})
	}

	if _, err := m.HashPassword(strings.Repeat("p", entity.MaxPasswordLength)); err != nil {
		t.Errorf("Expected %d-byte password to be accepted, got %v", entity.MaxPasswordLength, err)
	}
}

func TestJWTManagerTokenTypes(t *testing.T) {
	m := NewJWTManager("secret", time.Minute, time.Hour)

	access, err := m.GenerateAccessToken(7, "a@example.com")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	refresh, err := m.GenerateRefreshToken(7, "a@example.com")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	claims, err := m.ValidateAccessToken(access)
	if err != nil {
		t.Fatalf("Expected valid access token, got %v", err)
	}
	if claims.UserID != 7 || claims.Email != "a@example.com" {
		t.Errorf("Expected user 7 a@example.com, got %+v", claims)
	}

	if _, err := m.ValidateAccessToken(refresh); !errors.Is(err, entity.ErrInvalidToken) {
		t.Errorf("Expected refresh token to be rejected as access token, got %v", err)
	}
	if _, err := m.ValidateRefreshToken(access); !errors.Is(err, entity.ErrInvalidToken) {
		t.Errorf("Expected access token to be rejected as refresh token, got %v", err)
	}

	other := NewJWTManager("other-secret", time.Minute, time.Hour)
	if _, err := other.ValidateAccessToken(access); !errors.Is(err, entity.ErrUnauthorized) {
		t.Errorf("Expected signature mismatch to be unauthorized, got %v", err)
	}
}

func TestRefreshTokensAreUnique(t *testing.T) {
	m := NewJWTManager("secret", time.Minute, time.Hour)

	first, _ := m.GenerateRefreshToken(1, "a@example.com")
	second, _ := m.GenerateRefreshToken(1, "a@example.com")
	if first == second {
		t.Error("Expected two refresh tokens issued in the same second to differ")
	}
}

func TestExpiredAccessToken(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute, time.Hour)

	token, err := m.GenerateAccessToken(1, "a@example.com")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := m.ValidateAccessToken(token); !errors.Is(err, entity.ErrInvalidToken) {
		t.Errorf("Expected expired token to be invalid, got %v", err)
	}
}

func TestUserIDContext(t *testing.T) {
	if _, ok := UserIDFromContext(context.Background()); ok {
		t.Error("Expected no user in empty context")
	}

	ctx := WithUserID(context.Background(), 42)
	id, ok := UserIDFromContext(ctx)
	if !ok || id != 42 {
		t.Errorf("Expected user 42, got %d (%v)", id, ok)
	}
}
