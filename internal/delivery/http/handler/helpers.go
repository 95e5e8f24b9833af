package handler

import (
	"errors"
	"net/http"
	"strconv"

	"health-records-api/internal/usecase"
	"health-records-api/pkg/response"

	"github.com/gorilla/mux"
)

// writeUsecaseError maps usecase errors to responses. Anything unknown is a
// 500 carrying fallback.
func writeUsecaseError(w http.ResponseWriter, err error, fallback string) {
	var validationErr *usecase.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.BadRequest(w, validationErr.Message)
	case errors.Is(err, usecase.ErrForbidden):
		response.Forbidden(w, "You do not have permission to perform this action")
	case errors.Is(err, usecase.ErrUserNotFound):
		response.NotFound(w, "User not found")
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, "Patient not found")
	case errors.Is(err, usecase.ErrClinicianNotFound):
		response.NotFound(w, "Clinician not found")
	case errors.Is(err, usecase.ErrDocumentNotFound):
		response.NotFound(w, "Document not found")
	case errors.Is(err, usecase.ErrDocumentFileMissing):
		response.NotFound(w, "File not found")
	case errors.Is(err, usecase.ErrPatientAlreadyExists):
		response.Conflict(w, "User already has a patient record")
	case errors.Is(err, usecase.ErrClinicianAlreadyExists):
		response.Conflict(w, "User already has a clinician record")
	case errors.Is(err, usecase.ErrUsernameUnavailable):
		response.Conflict(w, "Could not allocate a username, please retry")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		response.Unauthorized(w, "Invalid username or password")
	case errors.Is(err, usecase.ErrInvalidToken), errors.Is(err, usecase.ErrTokenRevoked):
		response.Unauthorized(w, "Invalid or expired token")
	default:
		response.InternalServerError(w, fallback)
	}
}

// pathID reads a positive numeric path variable.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// baseURL is the scheme and host the client used to reach the API.
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}
