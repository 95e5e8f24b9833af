package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"health-records-api/internal/converter"
	"health-records-api/internal/delivery/dto"
	"health-records-api/internal/delivery/http/middleware"
	"health-records-api/internal/usecase"
	"health-records-api/pkg/response"

	"github.com/sirupsen/logrus"
)

const (
	uploadFormField = "file"
	// multipartOverhead covers boundaries and part headers on top of the file.
	multipartOverhead = 1 << 20
	multipartMemory   = 8 << 20
)

type DocumentHandler struct {
	documentUsecase usecase.DocumentUsecase
	log             *logrus.Logger
	maxUploadSize   int64
}

func NewDocumentHandler(documentUsecase usecase.DocumentUsecase, log *logrus.Logger, maxUploadSize int64) *DocumentHandler {
	return &DocumentHandler{
		documentUsecase: documentUsecase,
		log:             log,
		maxUploadSize:   maxUploadSize,
	}
}

// Upload stores a PDF for a patient
// @Summary Upload document
// @Tags Documents
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param patient_id path int true "Patient ID"
// @Param file formData file true "PDF document"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{patient_id}/documents/upload [post]
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	patientID, ok := pathID(r, "patient_id")
	if !ok {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.BadRequest(w, fmt.Sprintf("file exceeds the maximum size of %d bytes", h.maxUploadSize))
			return
		}
		response.BadRequest(w, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		response.BadRequest(w, "file is required")
		return
	}
	defer file.Close()

	document, err := h.documentUsecase.Upload(r.Context(), userID, &dto.UploadDocumentRequest{
		PatientID: patientID,
		FileName:  header.Filename,
		Size:      header.Size,
		Content:   file,
	})
	if err != nil {
		writeUsecaseError(w, err, "Failed to upload document")
		return
	}

	response.Success(w, http.StatusCreated, "Document uploaded successfully", converter.DocumentToResponse(document, baseURL(r)))
}

// List
// @Summary List patient documents, newest first
// @Tags Documents
// @Security BearerAuth
// @Produce json
// @Param patient_id path int true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /patients/{patient_id}/documents [get]
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	patientID, ok := pathID(r, "patient_id")
	if !ok {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	documents, err := h.documentUsecase.List(r.Context(), userID, patientID)
	if err != nil {
		writeUsecaseError(w, err, "Failed to list documents")
		return
	}

	response.Success(w, http.StatusOK, "Documents retrieved successfully", converter.DocumentsToResponse(documents, baseURL(r)))
}

// Get
// @Summary Get document metadata
// @Tags Documents
// @Security BearerAuth
// @Produce json
// @Param patient_id path int true "Patient ID"
// @Param document_id path int true "Document ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{patient_id}/documents/{document_id} [get]
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, patientID, documentID, ok := documentParams(w, r)
	if !ok {
		return
	}

	document, err := h.documentUsecase.Get(r.Context(), userID, patientID, documentID)
	if err != nil {
		writeUsecaseError(w, err, "Failed to get document")
		return
	}

	response.Success(w, http.StatusOK, "Document retrieved successfully", converter.DocumentToResponse(document, baseURL(r)))
}

// Delete
// @Summary Delete a document (uploader only)
// @Tags Documents
// @Security BearerAuth
// @Param patient_id path int true "Patient ID"
// @Param document_id path int true "Document ID"
// @Success 204
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{patient_id}/documents/{document_id} [delete]
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, patientID, documentID, ok := documentParams(w, r)
	if !ok {
		return
	}

	if err := h.documentUsecase.Delete(r.Context(), userID, patientID, documentID); err != nil {
		writeUsecaseError(w, err, "Failed to delete document")
		return
	}

	response.NoContent(w)
}

// Download streams the stored PDF
// @Summary Download document
// @Tags Documents
// @Security BearerAuth
// @Produce application/pdf
// @Param patient_id path int true "Patient ID"
// @Param document_id path int true "Document ID"
// @Success 200 {file} file
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{patient_id}/documents/{document_id}/download [get]
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	userID, patientID, documentID, ok := documentParams(w, r)
	if !ok {
		return
	}

	download, err := h.documentUsecase.Download(r.Context(), userID, patientID, documentID)
	if err != nil {
		writeUsecaseError(w, err, "Failed to download document")
		return
	}
	defer download.Content.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.FileName))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, download.Content); err != nil {
		h.log.Warnf("Failed to stream document %d: %+v", documentID, err)
	}
}

func documentParams(w http.ResponseWriter, r *http.Request) (userID, patientID, documentID int64, ok bool) {
	userID, ok = middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return 0, 0, 0, false
	}

	patientID, ok = pathID(r, "patient_id")
	if !ok {
		response.BadRequest(w, "Invalid patient ID")
		return 0, 0, 0, false
	}

	documentID, ok = pathID(r, "document_id")
	if !ok {
		response.BadRequest(w, "Invalid document ID")
		return 0, 0, 0, false
	}

	return userID, patientID, documentID, true
}
