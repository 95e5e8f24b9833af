package repository

import (
	"context"
	"testing"

	"health-records-api/internal/testutil"
)

func TestClinicianRepository_ExistsByUserID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewClinicianRepository()
	ctx := context.Background()

	doctor, clinician := testutil.CreateClinicianUser(t, db, "carol")
	plain := testutil.CreateUser(t, db, "dave")

	ok, err := repo.ExistsByUserID(ctx, db, doctor.ID)
	if err != nil || !ok {
		t.Fatalf("expected clinician for %d, got %v (%v)", doctor.ID, ok, err)
	}
	ok, err = repo.ExistsByUserID(ctx, db, plain.ID)
	if err != nil || ok {
		t.Fatalf("expected no clinician for %d, got %v (%v)", plain.ID, ok, err)
	}

	found, err := repo.FindByIDWithUser(ctx, db, clinician.ID)
	if err != nil || found == nil {
		t.Fatalf("expected clinician, got %+v (%v)", found, err)
	}
	if found.User.Username != "carol" {
		t.Errorf("expected preloaded user carol, got %q", found.User.Username)
	}
}

func TestUserRepository_FindByUsername(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository()
	ctx := context.Background()

	created := testutil.CreateUser(t, db, "erin")

	found, err := repo.FindByUsername(ctx, db, "erin")
	if err != nil || found == nil || found.ID != created.ID {
		t.Fatalf("expected user %d, got %+v (%v)", created.ID, found, err)
	}
	if !found.IsActive {
		t.Error("expected new user to be active")
	}

	missing, err := repo.FindByUsername(ctx, db, "nobody")
	if err != nil || missing != nil {
		t.Fatalf("expected clean miss, got %+v (%v)", missing, err)
	}
}
