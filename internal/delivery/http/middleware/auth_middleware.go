package middleware

import (
	"context"
	"net/http"

	"health-records-api/internal/domain/entity"
	"health-records-api/internal/service"
	"health-records-api/pkg/response"
)

type contextKey string

const (
	UserKey    contextKey = "user"
	TokenIDKey contextKey = "token_id"
)

type AuthMiddleware struct {
	identityService service.IdentityService
}

func NewAuthMiddleware(identityService service.IdentityService) *AuthMiddleware {
	return &AuthMiddleware{
		identityService: identityService,
	}
}

// Authenticate rejects the request with 401 unless the bearer token resolves
// to an active user. The reason is never disclosed.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.identityService.Resolve(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			response.Unauthorized(w, "Authentication credentials were not provided or are invalid")
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, identity.User)
		ctx = context.WithValue(ctx, TokenIDKey, identity.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserFromContext extracts the authenticated user from context
func GetUserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(UserKey).(*entity.User)
	return user, ok && user != nil
}

// GetUserIDFromContext extracts user ID from context
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	user, ok := GetUserFromContext(ctx)
	if !ok {
		return 0, false
	}
	return user.ID, true
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
