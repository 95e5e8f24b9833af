package middleware

import (
	"net/http"

	"health-records-api/internal/service"
	"health-records-api/pkg/response"

	"github.com/sirupsen/logrus"
)

// RequireClinician lets the request through only when the authenticated user
// holds a clinician record. Must run after Authenticate.
func RequireClinician(accessService service.AccessService, log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "")
				return
			}

			isClinician, err := accessService.IsClinician(r.Context(), userID)
			if err != nil {
				log.Warnf("Failed to check clinician role: %+v", err)
				response.InternalServerError(w, "")
				return
			}
			if !isClinician {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
