package handler

import (
	"encoding/json"
	"net/http"

	"health-records-api/internal/delivery/dto"
	"health-records-api/internal/delivery/http/middleware"
	"health-records-api/internal/usecase"
	"health-records-api/pkg/response"
	"health-records-api/pkg/validator"
)

type ClinicianHandler struct {
	clinicianUsecase usecase.ClinicianUsecase
	validator        *validator.CustomValidator
}

func NewClinicianHandler(clinicianUsecase usecase.ClinicianUsecase, validator *validator.CustomValidator) *ClinicianHandler {
	return &ClinicianHandler{
		clinicianUsecase: clinicianUsecase,
		validator:        validator,
	}
}

// RegisterClinician creates the clinician record of a user
// @Summary Register clinician
// @Tags Clinicians
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.RegisterClinicianRequest true "Clinician"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /register-clinician [post]
func (h *ClinicianHandler) RegisterClinician(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.RegisterClinicianRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	clinician, err := h.clinicianUsecase.RegisterClinician(r.Context(), userID, &req)
	if err != nil {
		writeUsecaseError(w, err, "Failed to register clinician")
		return
	}

	response.Success(w, http.StatusCreated, "Clinician registered successfully", clinician)
}

// GetClinician
// @Summary Get own clinician details
// @Tags Clinicians
// @Security BearerAuth
// @Produce json
// @Param clinician_id path int true "Clinician ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clinicians/{clinician_id} [get]
func (h *ClinicianHandler) GetClinician(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	clinicianID, ok := pathID(r, "clinician_id")
	if !ok {
		response.BadRequest(w, "Invalid clinician ID")
		return
	}

	clinician, err := h.clinicianUsecase.GetClinician(r.Context(), userID, clinicianID)
	if err != nil {
		writeUsecaseError(w, err, "Failed to get clinician")
		return
	}

	response.Success(w, http.StatusOK, "Clinician retrieved successfully", clinician)
}
