package handler

import (
	"net/http"
	"strconv"

	"sagra/internal/usecase"
	"sagra/pkg/response"

	"github.com/gorilla/mux"
)

type AnalyticsHandler struct {
	analyticsUsecase usecase.AnalyticsUsecase
}

func NewAnalyticsHandler(analyticsUsecase usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsUsecase: analyticsUsecase,
	}
}

func (h *AnalyticsHandler) GetPhaseDurations(w http.ResponseWriter, r *http.Request) {
	durations, err := h.analyticsUsecase.GetPhaseDurations(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to compute phase durations")
		return
	}

	response.Success(w, http.StatusOK, "Phase durations computed successfully", durations)
}

func (h *AnalyticsHandler) GetSuccessRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.analyticsUsecase.GetSuccessRates(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to compute success rates")
		return
	}

	response.Success(w, http.StatusOK, "Success rates computed successfully", rates)
}

func (h *AnalyticsHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.analyticsUsecase.GetDashboard(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to build dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}

// GetPatientReport returns the patient with the full progress history
// @Summary Patient report
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Param id path int true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{id}/report [get]
func (h *AnalyticsHandler) GetPatientReport(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	report, err := h.analyticsUsecase.GetPatientReport(r.Context(), patientID)
	if err != nil {
		if err == usecase.ErrPatientNotFound {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to build patient report")
		return
	}

	response.Success(w, http.StatusOK, "Patient report retrieved successfully", report)
}
