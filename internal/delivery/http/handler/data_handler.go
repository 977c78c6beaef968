package handler

import (
	"encoding/json"
	"net/http"

	"sagra/internal/delivery/dto"
	"sagra/internal/usecase"
	"sagra/pkg/response"
	"sagra/pkg/validator"
)

type DataHandler struct {
	dataUsecase usecase.DataUsecase
	validator   *validator.CustomValidator
}

func NewDataHandler(dataUsecase usecase.DataUsecase, validator *validator.CustomValidator) *DataHandler {
	return &DataHandler{
		dataUsecase: dataUsecase,
		validator:   validator,
	}
}

// Export writes patients and progress to the export directory
// @Summary Export data
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ExportRequest true "Export Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/export [post]
func (h *DataHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req dto.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.dataUsecase.Export(r.Context(), &req)
	if err != nil {
		if err == usecase.ErrUnsupportedFormat {
			response.BadRequest(w, err.Error(), nil)
			return
		}
		response.InternalServerError(w, "Failed to export data")
		return
	}

	response.Success(w, http.StatusCreated, "Data exported successfully", result)
}

// Backup copies the database into a new SQLite file
// @Summary Backup database
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/backup [post]
func (h *DataHandler) Backup(w http.ResponseWriter, r *http.Request) {
	result, err := h.dataUsecase.Backup(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to back up database")
		return
	}

	response.Success(w, http.StatusCreated, "Backup created successfully", result)
}
