package service

import (
	"context"
	"testing"

	"health-records-api/internal/domain/entity"
	"health-records-api/internal/repository"
	"health-records-api/internal/testutil"
)

func TestAccessService_CanAccessPatient(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewAccessService(db, testutil.NewLogger(), repository.NewPatientRepository(), repository.NewClinicianRepository())
	ctx := context.Background()

	alice, alicePatient := testutil.CreatePatientUser(t, db, "alice")
	bob, bobPatient := testutil.CreatePatientUser(t, db, "bob")
	carol, _ := testutil.CreateClinicianUser(t, db, "carol")
	dave := testutil.CreateUser(t, db, "dave")

	tests := []struct {
		name      string
		userID    int64
		patientID int64
		want      bool
	}{
		{"owner", alice.ID, alicePatient.ID, true},
		{"other patient", bob.ID, alicePatient.ID, false},
		{"clinician on alice", carol.ID, alicePatient.ID, true},
		{"clinician on bob", carol.ID, bobPatient.ID, true},
		{"plain user", dave.ID, alicePatient.ID, false},
		{"missing patient as clinician", carol.ID, 9999, false},
		{"missing patient as user", alice.ID, 9999, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.CanAccessPatient(ctx, tt.userID, tt.patientID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("CanAccessPatient(%d, %d) = %v, want %v", tt.userID, tt.patientID, got, tt.want)
			}
		})
	}
}

func TestAccessService_CanAccessClinician(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewAccessService(db, testutil.NewLogger(), repository.NewPatientRepository(), repository.NewClinicianRepository())
	ctx := context.Background()

	carol, carolClinician := testutil.CreateClinicianUser(t, db, "carol")
	erin, erinClinician := testutil.CreateClinicianUser(t, db, "erin")
	alice, _ := testutil.CreatePatientUser(t, db, "alice")

	tests := []struct {
		name        string
		userID      int64
		clinicianID int64
		want        bool
	}{
		{"owner", carol.ID, carolClinician.ID, true},
		{"other clinician", erin.ID, carolClinician.ID, false},
		{"other owner", erin.ID, erinClinician.ID, true},
		{"patient", alice.ID, carolClinician.ID, false},
		{"missing clinician", carol.ID, 9999, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.CanAccessClinician(ctx, tt.userID, tt.clinicianID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("CanAccessClinician(%d, %d) = %v, want %v", tt.userID, tt.clinicianID, got, tt.want)
			}
		})
	}
}

func TestAccessService_CanDeleteDocument(t *testing.T) {
	svc := NewAccessService(nil, testutil.NewLogger(), nil, nil)
	uploader := int64(5)
	doc := &entity.Document{PatientID: 1, UploadedByID: &uploader}

	if !svc.CanDeleteDocument(5, doc) {
		t.Error("uploader should be allowed to delete")
	}
	// Owning the patient record is not enough.
	if svc.CanDeleteDocument(1, doc) {
		t.Error("non-uploader should not be allowed to delete")
	}
	if svc.CanDeleteDocument(5, nil) {
		t.Error("nil document should be denied")
	}
	if svc.CanDeleteDocument(5, &entity.Document{PatientID: 1}) {
		t.Error("document without uploader should be denied")
	}
}

func TestAccessService_IsClinician(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewAccessService(db, testutil.NewLogger(), repository.NewPatientRepository(), repository.NewClinicianRepository())

	carol, _ := testutil.CreateClinicianUser(t, db, "carol")
	alice, _ := testutil.CreatePatientUser(t, db, "alice")

	if ok, err := svc.IsClinician(context.Background(), carol.ID); err != nil || !ok {
		t.Errorf("expected carol to be a clinician, ok=%v err=%v", ok, err)
	}
	if ok, err := svc.IsClinician(context.Background(), alice.ID); err != nil || ok {
		t.Errorf("expected alice not to be a clinician, ok=%v err=%v", ok, err)
	}
}
