package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"health-records-api/internal/converter"
	"health-records-api/internal/delivery/dto"
	"health-records-api/internal/domain/entity"
	"health-records-api/internal/domain/repository"
	"health-records-api/internal/service"
	"health-records-api/pkg/jwt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const maxUsernameAttempts = 10

type AuthUsecase interface {
	RegisterUser(ctx context.Context, req *dto.RegisterUserRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID int64, accessTokenID string, req *dto.LogoutRequest) error
	GetUserDetails(ctx context.Context, requesterID int64, username string) (*dto.UserDetailResponse, error)
}

type authUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	userRepo      repository.UserRepository
	patientRepo   repository.PatientRepository
	clinicianRepo repository.ClinicianRepository
	tokenRepo     repository.TokenRepository
	auditService  service.AuditService
	jwtService    *jwt.JWTService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	clinicianRepo repository.ClinicianRepository,
	tokenRepo repository.TokenRepository,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
) AuthUsecase {
	return &authUsecase{
		db:            db,
		log:           log,
		userRepo:      userRepo,
		patientRepo:   patientRepo,
		clinicianRepo: clinicianRepo,
		tokenRepo:     tokenRepo,
		auditService:  auditService,
		jwtService:    jwtService,
	}
}

func (u *authUsecase) RegisterUser(ctx context.Context, req *dto.RegisterUserRequest) (*dto.UserResponse, error) {
	firstName := strings.TrimSpace(req.FirstName)
	if firstName == "" {
		return nil, newValidationError("first_name is required")
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	username, err := u.generateUsername(ctx, firstName)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user := &entity.User{
		Username:  username,
		FirstName: firstName,
		LastName:  strings.TrimSpace(req.LastName),
		Password:  string(hashedPassword),
		IsActive:  true,
	}

	if err := u.userRepo.Create(ctx, tx, user); err != nil {
		if isDuplicateKeyError(err, "username") {
			return nil, ErrUsernameUnavailable
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID, converter.UserToResponse(user)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

// generateUsername picks lower(first name)_NNNNN with a five digit suffix not
// yet taken. The unique index still guards against a concurrent winner.
func (u *authUsecase) generateUsername(ctx context.Context, firstName string) (string, error) {
	base := strings.ToLower(strings.Join(strings.Fields(firstName), ""))

	for attempt := 0; attempt < maxUsernameAttempts; attempt++ {
		candidate := fmt.Sprintf("%s_%05d", base, 10000+rand.Intn(90000))

		existing, err := u.userRepo.FindByUsername(ctx, u.db, candidate)
		if err != nil {
			u.log.Warnf("Failed to find user by username: %+v", err)
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
	}

	u.log.Warnf("Failed to allocate username for %q after %d attempts", base, maxUsernameAttempts)
	return "", ErrUsernameUnavailable
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByUsername(ctx, u.db, req.Username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokens, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	u.recordEvent(ctx, user.ID, entity.AuditActionUserLogin)
	return tokens, nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	refreshKey := service.RefreshTokenKey(claims.UserID, claims.TokenID)
	exists, err := u.tokenRepo.Exists(ctx, refreshKey)
	if err != nil {
		u.log.Warnf("Failed to check refresh token: %+v", err)
		return nil, err
	}
	if !exists {
		return nil, ErrTokenRevoked
	}

	user, err := u.userRepo.FindByID(ctx, u.db, claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidToken
	}

	// Rotate: the presented refresh token is spent.
	if err := u.tokenRepo.Delete(ctx, refreshKey); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) Logout(ctx context.Context, userID int64, accessTokenID string, req *dto.LogoutRequest) error {
	keys := []string{service.AccessTokenKey(userID, accessTokenID)}

	if req != nil && req.RefreshToken != "" {
		claims, err := u.jwtService.ValidateToken(req.RefreshToken)
		if err != nil || claims.TokenType != jwt.RefreshToken || claims.UserID != userID {
			return ErrInvalidToken
		}
		keys = append(keys, service.RefreshTokenKey(userID, claims.TokenID))
	}

	if err := u.tokenRepo.Delete(ctx, keys...); err != nil {
		u.log.Warnf("Failed to revoke tokens: %+v", err)
		return err
	}

	u.recordEvent(ctx, userID, entity.AuditActionUserLogout)
	return nil
}

// GetUserDetails only answers for the requester's own account.
func (u *authUsecase) GetUserDetails(ctx context.Context, requesterID int64, username string) (*dto.UserDetailResponse, error) {
	user, err := u.userRepo.FindByUsername(ctx, u.db, username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if user == nil || user.ID != requesterID {
		return nil, ErrForbidden
	}

	patient, err := u.patientRepo.FindByUserID(ctx, u.db, user.ID)
	if err != nil {
		u.log.Warnf("Failed to find patient for user %d: %+v", user.ID, err)
		return nil, err
	}

	clinician, err := u.clinicianRepo.FindByUserID(ctx, u.db, user.ID)
	if err != nil {
		u.log.Warnf("Failed to find clinician for user %d: %+v", user.ID, err)
		return nil, err
	}

	return converter.UserToDetailResponse(user, patient, clinician), nil
}

func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.tokenRepo.Store(ctx, service.AccessTokenKey(user.ID, accessTokenID), u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store access token: %+v", err)
		return nil, err
	}

	if err := u.tokenRepo.Store(ctx, service.RefreshTokenKey(user.ID, refreshTokenID), u.jwtService.GetRefreshExpiry()); err != nil {
		u.log.Warnf("Failed to store refresh token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

// recordEvent writes a standalone audit entry. Failures are only logged.
func (u *authUsecase) recordEvent(ctx context.Context, userID int64, action string) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.auditService.LogEvent(ctx, tx, &userID, action, nil); err != nil {
		return
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
	}
}
