package jwt

import (
	"testing"
	"time"

	"health-records-api/config"

	"github.com/golang-jwt/jwt/v5"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret-key-for-unit-tests-only",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService()

	token, tokenID, err := svc.GenerateAccessToken(42, "alice_12345")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if tokenID == "" {
		t.Fatal("expected token id")
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user 42, got %d", claims.UserID)
	}
	if claims.TokenType != AccessToken {
		t.Errorf("expected access token, got %s", claims.TokenType)
	}
	if claims.TokenID != tokenID {
		t.Errorf("expected token id %s, got %s", tokenID, claims.TokenID)
	}

	refresh, _, err := svc.GenerateRefreshToken(42, "alice_12345")
	if err != nil {
		t.Fatalf("generate refresh: %v", err)
	}
	claims, err = svc.ValidateToken(refresh)
	if err != nil {
		t.Fatalf("validate refresh: %v", err)
	}
	if claims.TokenType != RefreshToken {
		t.Errorf("expected refresh token, got %s", claims.TokenType)
	}
}

func TestValidateToken_Rejects(t *testing.T) {
	svc := newTestService()

	sign := func(method jwt.SigningMethod, key interface{}, claims Claims) string {
		t.Helper()
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}

	valid := Claims{
		UserID:    1,
		TokenType: AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	expired := valid
	expired.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", sign(jwt.SigningMethodHS256, []byte("other-secret"), valid)},
		{"other hmac algorithm", sign(jwt.SigningMethodHS512, []byte("test-secret-key-for-unit-tests-only"), valid)},
		{"expired", sign(jwt.SigningMethodHS256, []byte("test-secret-key-for-unit-tests-only"), expired)},
		{"unsigned", sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, valid)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ValidateToken(tt.token); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
