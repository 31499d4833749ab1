package handler

import (
	"encoding/json"
	"net/http"

	"notesapi/internal/export/model"
	"notesapi/internal/export/service"
	"notesapi/middleware"
	"notesapi/pkg/apperror"
	"notesapi/pkg/response"
	"notesapi/pkg/validate"
)

type ExportHandler struct {
	Service *service.ExportService
}

func NewExportHandler(service *service.ExportService) *ExportHandler {
	return &ExportHandler{Service: service}
}

func (h *ExportHandler) ExportNotes(w http.ResponseWriter, r *http.Request) {
	var req model.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apperror.Validation("invalid request body"))
		return
	}
	if err := validate.Struct(req); err != nil {
		response.Error(w, err)
		return
	}

	if err := h.Service.ExportNotes(r.Context(), middleware.UserIDFrom(r.Context()), req.TargetEmail); err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "your request is being queued", nil)
}
