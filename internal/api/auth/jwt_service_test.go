package auth

import (
	"testing"
	"time"

	"github.com/quarzen/tradebook/pkg/journal/models"
)

func testConfig() JWTConfig {
	return JWTConfig{
		Secret:               "test-secret-key-must-be-32-chars!",
		Issuer:               "test-issuer",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 7 * 24 * time.Hour,
	}
}

func TestNewJWTService_ValidConfig(t *testing.T) {
	service, err := NewJWTService(testConfig())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if service == nil {
		t.Fatal("Expected service to be non-nil")
	}
}

func TestNewJWTService_ShortSecret(t *testing.T) {
	_, err := NewJWTService(JWTConfig{Secret: "short"})
	if err != ErrInvalidSecretLength {
		t.Fatalf("Expected ErrInvalidSecretLength, got: %v", err)
	}
}

func TestGenerateTokenPair(t *testing.T) {
	service, _ := NewJWTService(testConfig())

	user := &models.User{ID: 42, Username: "testuser"}

	tokenPair, err := service.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if tokenPair.AccessToken == "" {
		t.Error("Expected non-empty access token")
	}
	if tokenPair.RefreshToken == "" {
		t.Error("Expected non-empty refresh token")
	}
	if tokenPair.TokenType != "Bearer" {
		t.Errorf("Expected TokenType 'Bearer', got '%s'", tokenPair.TokenType)
	}
	if tokenPair.ExpiresIn != int64(15*time.Minute/time.Second) {
		t.Errorf("Expected ExpiresIn %d, got %d", int64(15*time.Minute/time.Second), tokenPair.ExpiresIn)
	}
}

func TestValidateAccessToken(t *testing.T) {
	service, _ := NewJWTService(testConfig())

	user := &models.User{ID: 42, Username: "testuser"}
	tokenPair, _ := service.GenerateTokenPair(user)

	claims, err := service.ValidateAccessToken(tokenPair.AccessToken)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if claims.Username != "testuser" {
		t.Errorf("Expected username 'testuser', got '%s'", claims.Username)
	}
	if claims.UserID != 42 {
		t.Errorf("Expected UserID 42, got %d", claims.UserID)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Errorf("Expected token type 'access', got '%s'", claims.TokenType)
	}
}

func TestValidateAccessToken_InvalidToken(t *testing.T) {
	service, _ := NewJWTService(testConfig())

	if _, err := service.ValidateAccessToken("invalid-token"); err == nil {
		t.Fatal("Expected error for invalid token")
	}
}

func TestValidateAccessToken_WrongTokenType(t *testing.T) {
	service, _ := NewJWTService(testConfig())

	user := &models.User{ID: 42, Username: "testuser"}
	tokenPair, _ := service.GenerateTokenPair(user)

	// Try to validate refresh token as access token
	if _, err := service.ValidateAccessToken(tokenPair.RefreshToken); err != ErrInvalidTokenType {
		t.Errorf("Expected ErrInvalidTokenType, got: %v", err)
	}
}

func TestValidateRefreshToken(t *testing.T) {
	service, _ := NewJWTService(testConfig())

	user := &models.User{ID: 42, Username: "testuser"}
	tokenPair, _ := service.GenerateTokenPair(user)

	claims, err := service.ValidateRefreshToken(tokenPair.RefreshToken)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if claims.TokenType != TokenTypeRefresh {
		t.Errorf("Expected token type 'refresh', got '%s'", claims.TokenType)
	}

	// Access tokens are not accepted here.
	if _, err := service.ValidateRefreshToken(tokenPair.AccessToken); err != ErrInvalidTokenType {
		t.Errorf("Expected ErrInvalidTokenType, got: %v", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	service, _ := NewJWTService(testConfig())
	other, _ := NewJWTService(JWTConfig{Secret: "another-secret-key-with-32-chars!"})

	user := &models.User{ID: 42, Username: "testuser"}
	tokenPair, _ := service.GenerateTokenPair(user)

	if _, err := other.ValidateToken(tokenPair.AccessToken); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken, got: %v", err)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	config := testConfig()
	config.AccessTokenDuration = -time.Minute
	service, _ := NewJWTService(config)

	user := &models.User{ID: 42, Username: "testuser"}
	tokenPair, _ := service.GenerateTokenPair(user)

	if _, err := service.ValidateToken(tokenPair.AccessToken); err != ErrExpiredToken {
		t.Errorf("Expected ErrExpiredToken, got: %v", err)
	}
}
