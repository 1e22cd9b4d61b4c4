package auth

import (
	"errors"
	"testing"
	"time"

	"ganeshai/config"
	"ganeshai/internal/domain"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        "ganeshai",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()

	token, err := GenerateAccessToken(cfg, 42, "alice", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user id = %d, want 42", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("username = %s, want alice", claims.Username)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("role = %s, want %s", claims.Role, domain.RoleAdmin)
	}
	if claims.Issuer != "ganeshai" {
		t.Errorf("issuer = %s, want ganeshai", claims.Issuer)
	}
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateAccessToken(cfg, 1, "alice", domain.RoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	other := testJWTConfig()
	other.AccessSecret = "different-secret"
	if _, err := ParseAccessToken(other, token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestAccessTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessExpiry = -time.Minute

	token, err := GenerateAccessToken(cfg, 1, "alice", domain.RoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseAccessToken(cfg, token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()

	token, err := GenerateRefreshToken(cfg, 7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	userID, err := ParseRefreshToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != 7 {
		t.Errorf("user id = %d, want 7", userID)
	}
}

// Refresh and access tokens are signed with different secrets; one must never
// pass as the other.
func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	cfg := testJWTConfig()

	access, err := GenerateAccessToken(cfg, 1, "alice", domain.RoleUser)
	if err != nil {
		t.Fatalf("generate access: %v", err)
	}
	if _, err := ParseRefreshToken(cfg, access); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("access token accepted as refresh token")
	}

	refresh, err := GenerateRefreshToken(cfg, 1)
	if err != nil {
		t.Fatalf("generate refresh: %v", err)
	}
	if _, err := ParseAccessToken(cfg, refresh); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("refresh token accepted as access token")
	}
}
