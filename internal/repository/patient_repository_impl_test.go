package repository

import (
	"context"
	"testing"

	"health-records-api/internal/testutil"
)

func TestPatientRepository_Lookups(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPatientRepository()
	ctx := context.Background()

	user, patient := testutil.CreatePatientUser(t, db, "alice")

	found, err := repo.FindByIDWithUser(ctx, db, patient.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found == nil {
		t.Fatal("expected patient")
	}
	if found.User.Username != "alice" {
		t.Errorf("expected preloaded user alice, got %q", found.User.Username)
	}

	byUser, err := repo.FindByUserID(ctx, db, user.ID)
	if err != nil || byUser == nil || byUser.ID != patient.ID {
		t.Fatalf("expected patient %d by user, got %+v (%v)", patient.ID, byUser, err)
	}

	missing, err := repo.FindByID(ctx, db, patient.ID+1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing patient, got %+v", missing)
	}
}

func TestPatientRepository_FindAllWithUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPatientRepository()
	ctx := context.Background()

	testutil.CreatePatientUser(t, db, "alice")
	testutil.CreatePatientUser(t, db, "bob")

	patients, err := repo.FindAllWithUser(ctx, db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(patients) != 2 {
		t.Fatalf("expected 2 patients, got %d", len(patients))
	}
	if patients[0].User.Username != "alice" || patients[1].User.Username != "bob" {
		t.Errorf("unexpected users %q, %q", patients[0].User.Username, patients[1].User.Username)
	}
}
