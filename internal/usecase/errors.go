package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const maxAge = 150

var (
	ErrForbidden = errors.New("access denied")

	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenRevoked        = errors.New("token has been revoked")
	ErrUsernameUnavailable = errors.New("could not allocate a unique username")

	ErrUserNotFound           = errors.New("user not found")
	ErrPatientNotFound        = errors.New("patient not found")
	ErrPatientAlreadyExists   = errors.New("user already has a patient record")
	ErrClinicianNotFound      = errors.New("clinician not found")
	ErrClinicianAlreadyExists = errors.New("user already has a clinician record")

	ErrDocumentNotFound    = errors.New("document not found")
	ErrDocumentFileMissing = errors.New("document file not found in storage")
)

// ValidationError is a rejected input. Message is safe to show to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
