package handler

import (
	"errors"
	"net/http"
	"strconv"

	"sagra/internal/service"
	"sagra/internal/usecase"
	"sagra/pkg/response"

	"github.com/gorilla/mux"
)

type ScheduleHandler struct {
	scheduleUsecase usecase.ScheduleUsecase
}

func NewScheduleHandler(scheduleUsecase usecase.ScheduleUsecase) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleUsecase: scheduleUsecase,
	}
}

// catalogError reports a phase catalog that cannot be parsed.
func catalogError(w http.ResponseWriter, err error) bool {
	var malformed *service.MalformedPeriodError
	var technique *service.TechniqueFormatError
	if errors.As(err, &malformed) || errors.As(err, &technique) {
		response.Error(w, http.StatusUnprocessableEntity, "Phase catalog is malformed", err.Error())
		return true
	}
	return false
}

func (h *ScheduleHandler) GetAllPhases(w http.ResponseWriter, r *http.Request) {
	phases, err := h.scheduleUsecase.GetAllPhases(r.Context())
	if err != nil {
		if catalogError(w, err) {
			return
		}
		response.InternalServerError(w, "Failed to get phases")
		return
	}

	response.Success(w, http.StatusOK, "Phases retrieved successfully", phases)
}

// PreviewSchedule computes the phase calendar for a surgery date
// @Summary Preview schedule
// @Tags Schedule
// @Security BearerAuth
// @Produce json
// @Param surgery_date query string true "Surgery date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /schedule [get]
func (h *ScheduleHandler) PreviewSchedule(w http.ResponseWriter, r *http.Request) {
	surgeryDate := r.URL.Query().Get("surgery_date")
	if surgeryDate == "" {
		response.BadRequest(w, "surgery_date is required", nil)
		return
	}

	schedule, err := h.scheduleUsecase.PreviewSchedule(r.Context(), surgeryDate)
	if err != nil {
		if err == usecase.ErrInvalidDateFormat {
			response.BadRequest(w, err.Error(), nil)
			return
		}
		if catalogError(w, err) {
			return
		}
		response.InternalServerError(w, "Failed to compute schedule")
		return
	}

	response.Success(w, http.StatusOK, "Schedule computed successfully", schedule)
}

// GetPatientSchedule returns the patient schedule and records the current phase
// @Summary Get patient schedule
// @Tags Schedule
// @Security BearerAuth
// @Produce json
// @Param id path int true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{id}/schedule [get]
func (h *ScheduleHandler) GetPatientSchedule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	schedule, err := h.scheduleUsecase.GetPatientSchedule(r.Context(), patientID)
	if err != nil {
		if err == usecase.ErrPatientNotFound {
			response.NotFound(w, "Patient not found")
			return
		}
		if catalogError(w, err) {
			return
		}
		response.InternalServerError(w, "Failed to get patient schedule")
		return
	}

	response.Success(w, http.StatusOK, "Patient schedule retrieved successfully", schedule)
}
