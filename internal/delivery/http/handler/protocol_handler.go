package handler

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"sagra/internal/service"
	"sagra/internal/usecase"
	"sagra/pkg/response"

	"github.com/gorilla/mux"
	"github.com/spf13/cast"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeXLS  = "application/vnd.ms-excel"
)

type ProtocolHandler struct {
	protocolUsecase usecase.ProtocolUsecase
}

func NewProtocolHandler(protocolUsecase usecase.ProtocolUsecase) *ProtocolHandler {
	return &ProtocolHandler{
		protocolUsecase: protocolUsecase,
	}
}

func (h *ProtocolHandler) GetAllProtocols(w http.ResponseWriter, r *http.Request) {
	protocols, err := h.protocolUsecase.GetAllProtocols(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load protocols")
		return
	}

	response.Success(w, http.StatusOK, "Protocols retrieved successfully", protocols)
}

// GetSeries returns a protocol curve placed on the calendar
// @Summary Protocol series
// @Tags Protocols
// @Security BearerAuth
// @Produce json
// @Param name path string true "Protocol name"
// @Param start_date query string false "Reference date (YYYY-MM-DD)"
// @Param patient_id query int false "Use the surgery date of this patient"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /protocols/{name}/series [get]
func (h *ProtocolHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	query := r.URL.Query()

	patientID := 0
	if raw := query.Get("patient_id"); raw != "" {
		id, err := cast.ToIntE(raw)
		if err != nil || id <= 0 {
			response.BadRequest(w, "Invalid patient ID", nil)
			return
		}
		patientID = id
	}

	series, err := h.protocolUsecase.GetSeries(r.Context(), name, query.Get("start_date"), patientID)
	if err != nil {
		var insufficient *service.InsufficientDataError
		switch {
		case errors.Is(err, usecase.ErrProtocolNotFound):
			response.NotFound(w, "Protocol not found")
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrInvalidDateFormat):
			response.BadRequest(w, err.Error(), nil)
		case errors.As(err, &insufficient):
			response.BadRequest(w, "Protocol has insufficient data", err.Error())
		default:
			response.InternalServerError(w, "Failed to build protocol series")
		}
		return
	}

	response.Success(w, http.StatusOK, "Protocol series built successfully", series)
}

// DownloadProtocol streams the original spreadsheet of a protocol
func (h *ProtocolHandler) DownloadProtocol(w http.ResponseWriter, r *http.Request) {
	path, err := h.protocolUsecase.GetProtocolFile(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		if err == usecase.ErrProtocolNotFound {
			response.NotFound(w, "Protocol not found")
			return
		}
		response.InternalServerError(w, "Failed to get protocol file")
		return
	}

	f, err := os.Open(path)
	if err != nil {
		response.InternalServerError(w, "Failed to open protocol file")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		response.InternalServerError(w, "Failed to open protocol file")
		return
	}

	contentType := contentTypeXLSX
	if strings.EqualFold(filepath.Ext(path), ".xls") {
		contentType = contentTypeXLS
	}
	_ = response.Attachment(w, filepath.Base(path), contentType, info.Size(), f)
}
