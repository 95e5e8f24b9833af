package usecase

import (
	"context"
	"regexp"
	"testing"

	"health-records-api/internal/delivery/dto"
	"health-records-api/internal/domain/entity"
	"health-records-api/internal/service"
	"health-records-api/internal/testutil"
)

var usernamePattern = regexp.MustCompile(`^[a-z]+_[1-9][0-9]{4}$`)

func TestRegisterUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.auth.RegisterUser(ctx, &dto.RegisterUserRequest{FirstName: "Alice", LastName: "Smith", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !usernamePattern.MatchString(user.Username) {
		t.Errorf("unexpected username %q", user.Username)
	}
	if user.FirstName != "Alice" || user.LastName != "Smith" || !user.IsActive {
		t.Errorf("unexpected user %+v", user)
	}

	var stored entity.User
	testutil.Mustf(t, env.db.First(&stored, user.ID).Error, "load user")
	if stored.Password == "s3cret-pass" {
		t.Error("password stored in clear text")
	}

	activity, err := env.activity.GetUserActivity(ctx, user.ID)
	testutil.Mustf(t, err, "activity")
	if activity.Total != 1 || activity.Logs[0].Action != entity.AuditActionUserRegister {
		t.Errorf("expected one register entry, got %+v", activity.Logs)
	}
}

func TestRegisterUser_DistinctUsernames(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		user, err := env.auth.RegisterUser(ctx, &dto.RegisterUserRequest{FirstName: "Sam", Password: "password"})
		if err != nil {
			t.Fatalf("register %d: %v", i, err)
		}
		if seen[user.Username] {
			t.Fatalf("duplicate username %s", user.Username)
		}
		seen[user.Username] = true
	}
}

func TestRegisterUser_BlankFirstName(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.RegisterUser(context.Background(), &dto.RegisterUserRequest{FirstName: "   ", Password: "password"})
	assertValidation(t, err)
}

func TestLoginRefreshLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.auth.RegisterUser(ctx, &dto.RegisterUserRequest{FirstName: "Bob", Password: "password"})
	testutil.Mustf(t, err, "register")

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Username: user.Username, Password: "wrong"})
	assertErr(t, err, ErrInvalidCredentials)
	_, err = env.auth.Login(ctx, &dto.LoginRequest{Username: "nobody_10000", Password: "password"})
	assertErr(t, err, ErrInvalidCredentials)

	tokens, err := env.auth.Login(ctx, &dto.LoginRequest{Username: user.Username, Password: "password"})
	testutil.Mustf(t, err, "login")
	if tokens.AccessToken == "" || tokens.RefreshToken == "" || tokens.ExpiresIn != 60 {
		t.Fatalf("unexpected tokens %+v", tokens)
	}
	if env.tokens.Len() != 2 {
		t.Fatalf("expected 2 allowlisted tokens, got %d", env.tokens.Len())
	}

	rotated, err := env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	testutil.Mustf(t, err, "refresh")

	// The spent refresh token cannot be used again.
	_, err = env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assertErr(t, err, ErrTokenRevoked)

	// An access token is not a refresh token.
	_, err = env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: rotated.AccessToken})
	assertErr(t, err, ErrInvalidToken)

	claims, err := env.jwt.ValidateToken(rotated.AccessToken)
	testutil.Mustf(t, err, "validate access token")

	testutil.Mustf(t, env.auth.Logout(ctx, user.ID, claims.TokenID, &dto.LogoutRequest{RefreshToken: rotated.RefreshToken}), "logout")

	if ok, _ := env.tokens.Exists(ctx, service.AccessTokenKey(user.ID, claims.TokenID)); ok {
		t.Error("access token still allowlisted after logout")
	}
	_, err = env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: rotated.RefreshToken})
	assertErr(t, err, ErrTokenRevoked)
}

func TestLogout_RejectsForeignRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, env.db, "alice")
	bob := testutil.CreateUser(t, env.db, "bob")

	bobRefresh, _, err := env.jwt.GenerateRefreshToken(bob.ID, bob.Username)
	testutil.Mustf(t, err, "generate")

	err = env.auth.Logout(ctx, alice.ID, "token-id", &dto.LogoutRequest{RefreshToken: bobRefresh})
	assertErr(t, err, ErrInvalidToken)
}

func TestGetUserDetails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice, patient := testutil.CreatePatientUser(t, env.db, "alice")
	bob := testutil.CreateUser(t, env.db, "bob")

	details, err := env.auth.GetUserDetails(ctx, alice.ID, "alice")
	testutil.Mustf(t, err, "details")
	if details.PatientID == nil || *details.PatientID != patient.ID {
		t.Errorf("expected patient id %d, got %v", patient.ID, details.PatientID)
	}
	if details.ClinicianID != nil {
		t.Errorf("expected no clinician id, got %d", *details.ClinicianID)
	}

	_, err = env.auth.GetUserDetails(ctx, bob.ID, "alice")
	assertErr(t, err, ErrForbidden)

	_, err = env.auth.GetUserDetails(ctx, bob.ID, "nobody")
	assertErr(t, err, ErrForbidden)
}
