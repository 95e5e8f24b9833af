package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"health-records-api/config"
	"health-records-api/internal/repository"
	"health-records-api/internal/testutil"
	"health-records-api/pkg/jwt"
)

func TestIdentityService_Resolve(t *testing.T) {
	db := testutil.NewTestDB(t)
	tokens := testutil.NewTokenStore()
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "identity-test-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	})
	svc := NewIdentityService(db, testutil.NewLogger(), repository.NewUserRepository(), tokens, jwtService)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice")
	inactive := testutil.CreateUser(t, db, "ivan")
	testutil.Mustf(t, db.Model(inactive).Update("is_active", false).Error, "deactivate user")

	issue := func(userID int64, allow bool) string {
		t.Helper()
		token, tokenID, err := jwtService.GenerateAccessToken(userID, "x")
		testutil.Mustf(t, err, "generate token")
		if allow {
			testutil.Mustf(t, tokens.Store(ctx, AccessTokenKey(userID, tokenID), time.Minute), "store token")
		}
		return token
	}

	valid := issue(alice.ID, true)

	identity, err := svc.Resolve(ctx, "Bearer "+valid)
	if err != nil {
		t.Fatalf("expected valid token to resolve: %v", err)
	}
	if identity.User.ID != alice.ID {
		t.Errorf("expected user %d, got %d", alice.ID, identity.User.ID)
	}
	if identity.TokenID == "" {
		t.Error("expected token id on identity")
	}

	refresh, refreshID, err := jwtService.GenerateRefreshToken(alice.ID, "alice")
	testutil.Mustf(t, err, "generate refresh token")
	testutil.Mustf(t, tokens.Store(ctx, AccessTokenKey(alice.ID, refreshID), time.Minute), "store refresh token")

	failures := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic " + valid},
		{"no token", "Bearer "},
		{"garbage", "Bearer not-a-token"},
		{"not allowlisted", "Bearer " + issue(alice.ID, false)},
		{"refresh token", "Bearer " + refresh},
		{"unknown user", "Bearer " + issue(9999, true)},
		{"inactive user", "Bearer " + issue(inactive.ID, true)},
	}

	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Resolve(ctx, tt.header)
			if !errors.Is(err, ErrAuthenticationFailed) {
				t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
			}
		})
	}
}

func TestIdentityService_Resolve_AllowlistUnavailable(t *testing.T) {
	db := testutil.NewTestDB(t)
	tokens := testutil.NewTokenStore()
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "identity-test-secret", AccessExpiry: time.Minute})
	svc := NewIdentityService(db, testutil.NewLogger(), repository.NewUserRepository(), tokens, jwtService)

	alice := testutil.CreateUser(t, db, "alice")
	token, tokenID, err := jwtService.GenerateAccessToken(alice.ID, alice.Username)
	testutil.Mustf(t, err, "generate token")
	testutil.Mustf(t, tokens.Store(context.Background(), AccessTokenKey(alice.ID, tokenID), time.Minute), "store token")

	tokens.Err = errors.New("redis down")
	if _, err := svc.Resolve(context.Background(), "Bearer "+token); !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}
}
