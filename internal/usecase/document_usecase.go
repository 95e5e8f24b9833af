package usecase

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"

	"health-records-api/internal/delivery/dto"
	"health-records-api/internal/domain/entity"
	"health-records-api/internal/domain/repository"
	"health-records-api/internal/infrastructure/storage"
	"health-records-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var pdfSignature = []byte("%PDF")

type DocumentUsecase interface {
	Upload(ctx context.Context, uploaderID int64, req *dto.UploadDocumentRequest) (*entity.Document, error)
	Get(ctx context.Context, requesterID, patientID, documentID int64) (*entity.Document, error)
	// List returns the patient's documents, most recent first.
	List(ctx context.Context, requesterID, patientID int64) ([]entity.Document, error)
	Delete(ctx context.Context, requesterID, patientID, documentID int64) error
	Download(ctx context.Context, requesterID, patientID, documentID int64) (*dto.DocumentDownload, error)
}

type documentUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	documentRepo  repository.DocumentRepository
	patientRepo   repository.PatientRepository
	accessService service.AccessService
	auditService  service.AuditService
	storage       storage.FileStorage
	maxUploadSize int64
}

// NewDocumentUsecase builds the document lifecycle. A maxUploadSize of zero
// accepts files of any size.
func NewDocumentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	documentRepo repository.DocumentRepository,
	patientRepo repository.PatientRepository,
	accessService service.AccessService,
	auditService service.AuditService,
	fileStorage storage.FileStorage,
	maxUploadSize int64,
) DocumentUsecase {
	return &documentUsecase{
		db:            db,
		log:           log,
		documentRepo:  documentRepo,
		patientRepo:   patientRepo,
		accessService: accessService,
		auditService:  auditService,
		storage:       fileStorage,
		maxUploadSize: maxUploadSize,
	}
}

func (u *documentUsecase) Upload(ctx context.Context, uploaderID int64, req *dto.UploadDocumentRequest) (*entity.Document, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if err := u.authorize(ctx, uploaderID, patient.ID); err != nil {
		return nil, err
	}

	if u.maxUploadSize > 0 && req.Size > u.maxUploadSize {
		return nil, newValidationError("file exceeds the maximum size of %d bytes", u.maxUploadSize)
	}

	// Peek leaves the signature in the buffer for the storage write.
	content := bufio.NewReader(req.Content)
	signature, err := content.Peek(len(pdfSignature))
	if err != nil && !errors.Is(err, io.EOF) {
		u.log.Warnf("Failed to read upload: %+v", err)
		return nil, err
	}
	if !bytes.Equal(signature, pdfSignature) {
		return nil, newValidationError("file is not a PDF document")
	}

	filePath := entity.DocumentStoragePath(patient.ID, uuid.NewString())
	if err := u.storage.Write(ctx, filePath, content); err != nil {
		u.log.Warnf("Failed to store document %s: %+v", filePath, err)
		return nil, err
	}

	document := &entity.Document{
		PatientID:    patient.ID,
		UploadedByID: &uploaderID,
		FilePath:     filePath,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.documentRepo.Create(ctx, tx, document); err != nil {
		u.log.Warnf("Failed to create document: %+v", err)
		u.removeFile(ctx, filePath)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &uploaderID, entity.AuditActionDocumentUpload, "document", document.ID, document); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		u.removeFile(ctx, filePath)
		return nil, err
	}

	return document, nil
}

func (u *documentUsecase) Get(ctx context.Context, requesterID, patientID, documentID int64) (*entity.Document, error) {
	if err := u.authorize(ctx, requesterID, patientID); err != nil {
		return nil, err
	}
	return u.find(ctx, patientID, documentID)
}

func (u *documentUsecase) List(ctx context.Context, requesterID, patientID int64) ([]entity.Document, error) {
	if err := u.authorize(ctx, requesterID, patientID); err != nil {
		return nil, err
	}

	documents, err := u.documentRepo.FindByPatientID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find documents: %+v", err)
		return nil, err
	}
	return documents, nil
}

// Delete removes the record first and the stored bytes after. A failure to
// remove the bytes is logged and the delete still succeeds.
func (u *documentUsecase) Delete(ctx context.Context, requesterID, patientID, documentID int64) error {
	if err := u.authorize(ctx, requesterID, patientID); err != nil {
		return err
	}

	document, err := u.find(ctx, patientID, documentID)
	if err != nil {
		return err
	}

	if !u.accessService.CanDeleteDocument(requesterID, document) {
		return ErrForbidden
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.documentRepo.Delete(ctx, tx, document.ID, patientID)
	if err != nil {
		u.log.Warnf("Failed to delete document: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrDocumentNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &requesterID, entity.AuditActionDocumentDelete, "document", document.ID, document); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.removeFile(ctx, document.FilePath)
	return nil
}

// Download treats storage as the authority on whether the file exists.
func (u *documentUsecase) Download(ctx context.Context, requesterID, patientID, documentID int64) (*dto.DocumentDownload, error) {
	if err := u.authorize(ctx, requesterID, patientID); err != nil {
		return nil, err
	}

	document, err := u.find(ctx, patientID, documentID)
	if err != nil {
		return nil, err
	}

	content, err := u.storage.Read(ctx, document.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return nil, ErrDocumentFileMissing
		}
		u.log.Warnf("Failed to read document %s: %+v", document.FilePath, err)
		return nil, err
	}

	return &dto.DocumentDownload{
		FileName: document.FileName(),
		Content:  content,
	}, nil
}

func (u *documentUsecase) authorize(ctx context.Context, userID, patientID int64) error {
	allowed, err := u.accessService.CanAccessPatient(ctx, userID, patientID)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrForbidden
	}
	return nil
}

func (u *documentUsecase) find(ctx context.Context, patientID, documentID int64) (*entity.Document, error) {
	document, err := u.documentRepo.FindByIDAndPatient(ctx, u.db, documentID, patientID)
	if err != nil {
		u.log.Warnf("Failed to find document: %+v", err)
		return nil, err
	}
	if document == nil {
		return nil, ErrDocumentNotFound
	}
	return document, nil
}

// removeFile is best-effort cleanup of stored bytes.
func (u *documentUsecase) removeFile(ctx context.Context, filePath string) {
	if err := u.storage.Delete(ctx, filePath); err != nil {
		u.log.WithField("file_path", filePath).Warnf("Failed to remove stored file: %+v", err)
	}
}
