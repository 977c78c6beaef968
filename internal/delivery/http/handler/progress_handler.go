package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"sagra/internal/delivery/dto"
	"sagra/internal/usecase"
	"sagra/pkg/response"
	"sagra/pkg/validator"

	"github.com/gorilla/mux"
)

type ProgressHandler struct {
	progressUsecase usecase.ProgressUsecase
	validator       *validator.CustomValidator
}

func NewProgressHandler(progressUsecase usecase.ProgressUsecase, validator *validator.CustomValidator) *ProgressHandler {
	return &ProgressHandler{
		progressUsecase: progressUsecase,
		validator:       validator,
	}
}

func progressError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrProgressNotFound:
		response.NotFound(w, "Progress record not found")
	case usecase.ErrPhaseNotFound:
		response.Error(w, http.StatusBadRequest, "Phase not found", nil)
	case usecase.ErrInvalidStatus, usecase.ErrInvalidDateFormat, usecase.ErrEndBeforeStart:
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		response.InternalServerError(w, fallback)
	}
}

// RecordProgress stores a manual progress entry for a patient
// @Summary Record progress
// @Tags Progress
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Patient ID"
// @Param request body dto.RecordProgressRequest true "Record Progress Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{id}/progress [post]
func (h *ProgressHandler) RecordProgress(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	var req dto.RecordProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	progress, err := h.progressUsecase.RecordProgress(r.Context(), patientID, &req)
	if err != nil {
		progressError(w, err, "Failed to record progress")
		return
	}

	response.Success(w, http.StatusCreated, "Progress recorded successfully", progress)
}

// UpdateProgress changes status, end date and observations of a record
// @Summary Update progress
// @Tags Progress
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Progress ID"
// @Param request body dto.UpdateProgressRequest true "Update Progress Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /progress/{id} [put]
func (h *ProgressHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	progressID, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid progress ID", nil)
		return
	}

	var req dto.UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	progress, err := h.progressUsecase.UpdateProgress(r.Context(), progressID, &req)
	if err != nil {
		progressError(w, err, "Failed to update progress")
		return
	}

	response.Success(w, http.StatusOK, "Progress updated successfully", progress)
}

func (h *ProgressHandler) GetPatientProgress(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	progress, err := h.progressUsecase.GetPatientProgress(r.Context(), patientID)
	if err != nil {
		progressError(w, err, "Failed to get progress")
		return
	}

	response.Success(w, http.StatusOK, "Progress retrieved successfully", progress)
}
