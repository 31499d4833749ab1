package handler

import (
	"encoding/json"
	"net/http"

	"notesapi/internal/note/model"
	"notesapi/internal/note/service"
	"notesapi/middleware"
	"notesapi/pkg/apperror"
	"notesapi/pkg/response"
	"notesapi/pkg/validate"

	"github.com/gorilla/mux"
)

// DataSourceHeader marks listings served from the cache.
const DataSourceHeader = "X-Data-Source"

type NoteHandler struct {
	Service *service.NoteService
}

func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{Service: service}
}

func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeNote(w, r)
	if !ok {
		return
	}

	noteID, err := h.Service.Create(r.Context(), middleware.UserIDFrom(r.Context()), req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "note added", model.CreateNoteResponse{NoteID: noteID})
}

func (h *NoteHandler) GetNotes(w http.ResponseWriter, r *http.Request) {
	notes, fromCache, err := h.Service.ListVisible(r.Context(), middleware.UserIDFrom(r.Context()))
	if err != nil {
		response.Error(w, err)
		return
	}
	if fromCache {
		w.Header().Set(DataSourceHeader, "cache")
	}
	response.Success(w, http.StatusOK, "", map[string]any{"notes": notes})
}

func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	noteID := mux.Vars(r)["id"]

	if err := h.Service.VerifyAccess(ctx, noteID, middleware.UserIDFrom(ctx)); err != nil {
		response.Error(w, err)
		return
	}
	note, err := h.Service.GetByID(ctx, noteID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "", map[string]any{"note": note})
}

func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	noteID := mux.Vars(r)["id"]

	req, ok := decodeNote(w, r)
	if !ok {
		return
	}
	if err := h.Service.VerifyAccess(ctx, noteID, middleware.UserIDFrom(ctx)); err != nil {
		response.Error(w, err)
		return
	}
	if err := h.Service.Edit(ctx, noteID, req); err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "note updated", nil)
}

func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	noteID := mux.Vars(r)["id"]

	if err := h.Service.VerifyOwner(ctx, noteID, middleware.UserIDFrom(ctx)); err != nil {
		response.Error(w, err)
		return
	}
	if err := h.Service.Delete(ctx, noteID); err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "note deleted", nil)
}

func decodeNote(w http.ResponseWriter, r *http.Request) (model.NoteRequest, bool) {
	var req model.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apperror.Validation("invalid request body"))
		return req, false
	}
	if err := validate.Struct(req); err != nil {
		response.Error(w, err)
		return req, false
	}
	return req, true
}
