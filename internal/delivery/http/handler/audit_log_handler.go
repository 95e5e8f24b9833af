package handler

import (
	"net/http"

	"health-records-api/internal/delivery/http/middleware"
	"health-records-api/internal/usecase"
	"health-records-api/pkg/response"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

// GetMyActivity lists the audit trail of the caller
func (h *AuditLogHandler) GetMyActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	activity, err := h.auditLogUsecase.GetUserActivity(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get activity")
		return
	}

	response.Success(w, http.StatusOK, "Activity retrieved successfully", activity)
}
