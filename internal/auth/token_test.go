package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateServiceToken(t *testing.T) {
	token, err := GenerateServiceToken("credential-service", "test-secret", time.Minute)
	if err != nil {
		t.Fatalf("GenerateServiceToken() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateServiceToken() returned empty string")
	}
}

func TestValidateServiceTokenValid(t *testing.T) {
	token, err := GenerateServiceToken("credential-service", "test-secret", time.Minute)
	if err != nil {
		t.Fatalf("GenerateServiceToken() unexpected error: %v", err)
	}

	claims, err := ValidateServiceToken(token, "test-secret")
	if err != nil {
		t.Fatalf("ValidateServiceToken() unexpected error: %v", err)
	}
	if claims.Service != "credential-service" {
		t.Errorf("ValidateServiceToken() Service = %q, want %q", claims.Service, "credential-service")
	}
	if claims.Subject != "credential-service" {
		t.Errorf("ValidateServiceToken() Subject = %q, want %q", claims.Subject, "credential-service")
	}
}

func TestValidateServiceTokenInvalid(t *testing.T) {
	if _, err := ValidateServiceToken("not-a-valid-token", "test-secret"); err != ErrInvalidToken {
		t.Errorf("ValidateServiceToken() error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestValidateServiceTokenWrongSecret(t *testing.T) {
	token, err := GenerateServiceToken("credential-service", "correct-secret", time.Minute)
	if err != nil {
		t.Fatalf("GenerateServiceToken() unexpected error: %v", err)
	}

	if _, err := ValidateServiceToken(token, "wrong-secret"); err == nil {
		t.Error("ValidateServiceToken() expected error for wrong secret")
	}
}

func TestValidateServiceTokenExpired(t *testing.T) {
	token, err := GenerateServiceToken("credential-service", "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateServiceToken() unexpected error: %v", err)
	}

	if _, err := ValidateServiceToken(token, "test-secret"); err == nil {
		t.Error("ValidateServiceToken() expected error for expired token")
	}
}

func TestValidateServiceTokenWrongAudience(t *testing.T) {
	secret := "test-secret"

	claims := ServiceClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Audience:  jwt.ClaimStrings{"exhibition-service"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Service: "credential-service",
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	if _, err := ValidateServiceToken(tokenString, secret); err == nil {
		t.Error("ValidateServiceToken() expected error for wrong audience")
	}
}
