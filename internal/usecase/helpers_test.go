package usecase

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"health-records-api/config"
	"health-records-api/internal/infrastructure/storage"
	"health-records-api/internal/repository"
	"health-records-api/internal/service"
	"health-records-api/internal/testutil"
	"health-records-api/pkg/jwt"

	"github.com/spf13/afero"
	"gorm.io/gorm"
)

const testMaxUploadSize = 1024

type testEnv struct {
	db      *gorm.DB
	tokens  *testutil.TokenStore
	storage *flakyStorage
	fs      afero.Fs
	jwt     *jwt.JWTService

	auth      AuthUsecase
	patients  PatientUsecase
	clinician ClinicianUsecase
	documents DocumentUsecase
	activity  AuditLogUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewTestDB(t)
	log := testutil.NewLogger()
	tokens := testutil.NewTokenStore()
	fs := afero.NewMemMapFs()
	files := &flakyStorage{FileStorage: storage.NewLocalStorageFs(fs)}
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "usecase-test-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	})

	userRepo := repository.NewUserRepository()
	patientRepo := repository.NewPatientRepository()
	clinicianRepo := repository.NewClinicianRepository()
	documentRepo := repository.NewDocumentRepository()
	auditRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(log, auditRepo)
	accessService := service.NewAccessService(db, log, patientRepo, clinicianRepo)

	return &testEnv{
		db:        db,
		tokens:    tokens,
		storage:   files,
		fs:        fs,
		jwt:       jwtService,
		auth:      NewAuthUsecase(db, log, userRepo, patientRepo, clinicianRepo, tokens, auditService, jwtService),
		patients:  NewPatientUsecase(db, log, userRepo, patientRepo, accessService, auditService),
		clinician: NewClinicianUsecase(db, log, userRepo, clinicianRepo, accessService, auditService),
		documents: NewDocumentUsecase(db, log, documentRepo, patientRepo, accessService, auditService, files, testMaxUploadSize),
		activity:  NewAuditLogUsecase(db, log, auditRepo),
	}
}

// flakyStorage fails deletes on demand.
type flakyStorage struct {
	storage.FileStorage
	failDelete bool
}

func (s *flakyStorage) Delete(ctx context.Context, filePath string) error {
	if s.failDelete {
		return errors.New("storage unavailable")
	}
	return s.FileStorage.Delete(ctx, filePath)
}

// storedFiles counts the regular files held by the test filesystem.
func (e *testEnv) storedFiles(t *testing.T) int {
	t.Helper()
	n := 0
	err := afero.Walk(e.fs, "patients", func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			n++
		}
		return nil
	})
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("walk storage: %v", err)
	}
	return n
}

func intPtr(v int) *int {
	return &v
}

func assertErr(t *testing.T, err, want error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func assertValidation(t *testing.T, err error) *ValidationError {
	t.Helper()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Message == "" {
		t.Fatal("expected validation message")
	}
	return vErr
}
