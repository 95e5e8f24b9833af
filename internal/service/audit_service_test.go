package service

import (
	"context"
	"testing"

	"health-records-api/internal/domain/entity"
	"health-records-api/internal/repository"
	"health-records-api/internal/testutil"
)

func TestAuditService_LogCreateInTransaction(t *testing.T) {
	db := testutil.NewTestDB(t)
	auditRepo := repository.NewAuditLogRepository()
	svc := NewAuditService(testutil.NewLogger(), auditRepo)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice")

	tx := db.Begin()
	testutil.Mustf(t, svc.LogCreate(ctx, tx, &alice.ID, entity.AuditActionDocumentUpload, "document", 12, map[string]interface{}{"file_path": "patients/1/a.pdf"}), "log create")
	testutil.Mustf(t, tx.Commit().Error, "commit")

	logs, err := auditRepo.FindByUserID(ctx, db, alice.ID)
	testutil.Mustf(t, err, "find logs")
	if len(logs) != 1 {
		t.Fatalf("expected 1 audit log, got %d", len(logs))
	}
	if logs[0].Action != entity.AuditActionDocumentUpload {
		t.Errorf("unexpected action %s", logs[0].Action)
	}
	if logs[0].Metadata["entity"] != "document" {
		t.Errorf("unexpected metadata %v", logs[0].Metadata)
	}
}

func TestAuditService_RolledBackWithTransaction(t *testing.T) {
	db := testutil.NewTestDB(t)
	auditRepo := repository.NewAuditLogRepository()
	svc := NewAuditService(testutil.NewLogger(), auditRepo)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice")

	tx := db.Begin()
	testutil.Mustf(t, svc.LogDelete(ctx, tx, &alice.ID, entity.AuditActionDocumentDelete, "document", 3, nil), "log delete")
	tx.Rollback()

	logs, err := auditRepo.FindByUserID(ctx, db, alice.ID)
	testutil.Mustf(t, err, "find logs")
	if len(logs) != 0 {
		t.Fatalf("expected no audit logs after rollback, got %d", len(logs))
	}
}
