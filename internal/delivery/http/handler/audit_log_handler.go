package handler

import (
	"net/http"
	"strconv"

	"sagra/internal/delivery/dto"
	"sagra/internal/usecase"
	"sagra/pkg/response"
	"sagra/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/spf13/cast"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
	validator       *validator.CustomValidator
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase, validator *validator.CustomValidator) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
		validator:       validator,
	}
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	auditLogID, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), int64(auditLogID))
	if err != nil {
		if err == usecase.ErrAuditLogNotFound {
			response.NotFound(w, "Audit log not found")
			return
		}
		response.InternalServerError(w, "Failed to get audit log")
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}

func (h *AuditLogHandler) GetAllAuditLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := dto.AuditLogQuery{
		Username: q.Get("username"),
		Action:   q.Get("action"),
	}

	var err error
	if raw := q.Get("limit"); raw != "" {
		if query.Limit, err = cast.ToIntE(raw); err != nil {
			response.BadRequest(w, "Invalid limit", nil)
			return
		}
	}
	if raw := q.Get("offset"); raw != "" {
		if query.Offset, err = cast.ToIntE(raw); err != nil {
			response.BadRequest(w, "Invalid offset", nil)
			return
		}
	}

	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	auditLogs, err := h.auditLogUsecase.GetAllAuditLogs(r.Context(), &query)
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Audit logs retrieved successfully", auditLogs.Logs, &response.Meta{
		Limit:  auditLogs.Limit,
		Offset: auditLogs.Offset,
		Total:  auditLogs.Total,
	})
}
