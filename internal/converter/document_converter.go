package converter

import (
	"fmt"
	"strings"

	"health-records-api/internal/delivery/dto"
	"health-records-api/internal/domain/entity"
)

// DocumentDownloadPath is the API path serving the bytes of a document.
func DocumentDownloadPath(patientID, documentID int64) string {
	return fmt.Sprintf("/api/patients/%d/documents/%d/download", patientID, documentID)
}

// DocumentToResponse builds the response for a document. baseURL is the
// scheme and host the client used, e.g. https://records.example.com.
func DocumentToResponse(document *entity.Document, baseURL string) *dto.DocumentResponse {
	if document == nil {
		return nil
	}

	return &dto.DocumentResponse{
		DocumentID:   document.ID,
		UploadedTime: document.UploadedAt,
		Patient:      document.PatientID,
		UploadedBy:   document.UploadedByID,
		FilePath:     document.FilePath,
		DownloadURL:  strings.TrimSuffix(baseURL, "/") + DocumentDownloadPath(document.PatientID, document.ID),
	}
}

func DocumentsToResponse(documents []entity.Document, baseURL string) []dto.DocumentResponse {
	responses := make([]dto.DocumentResponse, 0, len(documents))
	for i := range documents {
		responses = append(responses, *DocumentToResponse(&documents[i], baseURL))
	}
	return responses
}
