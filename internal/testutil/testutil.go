// Package testutil holds fixtures shared by the store-backed tests.
package testutil

import (
	"fmt"
	"io"
	"testing"

	"health-records-api/internal/domain/entity"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens an in-memory SQLite database with the schema migrated.
// The pool is pinned to one connection so every query sees the same database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Patient{},
		&entity.Clinician{},
		&entity.Document{},
		&entity.AuditLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

// NewLogger returns a logger that discards everything.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func CreateUser(t *testing.T, db *gorm.DB, username string) *entity.User {
	t.Helper()
	user := &entity.User{
		Username:  username,
		FirstName: username,
		LastName:  "Test",
		Password:  "not-a-real-hash",
		IsActive:  true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func CreatePatient(t *testing.T, db *gorm.DB, userID int64) *entity.Patient {
	t.Helper()
	patient := &entity.Patient{
		UserID:            userID,
		Age:               30,
		Sex:               entity.SexFemale,
		HealthDescription: "routine",
	}
	if err := db.Omit("User").Create(patient).Error; err != nil {
		t.Fatalf("create patient for user %d: %v", userID, err)
	}
	return patient
}

func CreateClinician(t *testing.T, db *gorm.DB, userID int64) *entity.Clinician {
	t.Helper()
	clinician := &entity.Clinician{
		UserID:     userID,
		Age:        45,
		Gender:     entity.GenderNotDisclosed,
		Speciality: "Cardiology",
	}
	if err := db.Omit("User").Create(clinician).Error; err != nil {
		t.Fatalf("create clinician for user %d: %v", userID, err)
	}
	return clinician
}

// CreatePatientUser creates a user together with its patient record.
func CreatePatientUser(t *testing.T, db *gorm.DB, username string) (*entity.User, *entity.Patient) {
	t.Helper()
	user := CreateUser(t, db, username)
	return user, CreatePatient(t, db, user.ID)
}

// CreateClinicianUser creates a user together with its clinician record.
func CreateClinicianUser(t *testing.T, db *gorm.DB, username string) (*entity.User, *entity.Clinician) {
	t.Helper()
	user := CreateUser(t, db, username)
	return user, CreateClinician(t, db, user.ID)
}

func Int64Ptr(v int64) *int64 {
	return &v
}

// Mustf fails the test when err is not nil.
func Mustf(t *testing.T, err error, format string, args ...interface{}) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %v", fmt.Sprintf(format, args...), err)
	}
}
