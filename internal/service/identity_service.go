package service

import (
	"context"
	"errors"
	"strings"

	"health-records-api/internal/domain/entity"
	"health-records-api/internal/domain/repository"
	"health-records-api/pkg/jwt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrAuthenticationFailed is returned for every credential problem so callers
// cannot tell which step rejected the request.
var ErrAuthenticationFailed = errors.New("authentication failed")

const bearerPrefix = "Bearer "

// Identity is a resolved caller.
type Identity struct {
	User    *entity.User
	TokenID string
}

type IdentityService interface {
	Resolve(ctx context.Context, authorizationHeader string) (*Identity, error)
}

type identityService struct {
	db         *gorm.DB
	log        *logrus.Logger
	userRepo   repository.UserRepository
	tokenRepo  repository.TokenRepository
	jwtService *jwt.JWTService
}

func NewIdentityService(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	jwtService *jwt.JWTService,
) IdentityService {
	return &identityService{
		db:         db,
		log:        log,
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
	}
}

func (s *identityService) Resolve(ctx context.Context, authorizationHeader string) (*Identity, error) {
	if !strings.HasPrefix(authorizationHeader, bearerPrefix) {
		return nil, ErrAuthenticationFailed
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(authorizationHeader, bearerPrefix))
	if tokenString == "" {
		return nil, ErrAuthenticationFailed
	}

	claims, err := s.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	if claims.TokenType != jwt.AccessToken || claims.UserID == 0 || claims.TokenID == "" {
		return nil, ErrAuthenticationFailed
	}

	allowed, err := s.tokenRepo.Exists(ctx, AccessTokenKey(claims.UserID, claims.TokenID))
	if err != nil {
		s.log.Warnf("Failed to check token allowlist: %+v", err)
		return nil, ErrAuthenticationFailed
	}
	if !allowed {
		return nil, ErrAuthenticationFailed
	}

	user, err := s.userRepo.FindByID(ctx, s.db, claims.UserID)
	if err != nil {
		s.log.Warnf("Failed to find user %d: %+v", claims.UserID, err)
		return nil, ErrAuthenticationFailed
	}
	if user == nil || !user.IsActive {
		return nil, ErrAuthenticationFailed
	}

	return &Identity{User: user, TokenID: claims.TokenID}, nil
}
