package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"notesapi/internal/collaboration/model"
	"notesapi/internal/collaboration/service"
	usermodel "notesapi/internal/user/model"
	"notesapi/middleware"
	"notesapi/pkg/apperror"
	"notesapi/pkg/response"
	"notesapi/pkg/validate"
)

type OwnerVerifier interface {
	VerifyOwner(ctx context.Context, noteID, userID string) error
}

type UserLookup interface {
	Lookup(ctx context.Context, userID string) (*usermodel.User, error)
}

type CollaborationHandler struct {
	Service *service.CollaborationService
	Notes   OwnerVerifier
	Users   UserLookup
}

func NewCollaborationHandler(service *service.CollaborationService, notes OwnerVerifier, users UserLookup) *CollaborationHandler {
	return &CollaborationHandler{Service: service, Notes: notes, Users: users}
}

func (h *CollaborationHandler) AddCollaborator(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := decode(w, r)
	if !ok {
		return
	}

	if err := h.Notes.VerifyOwner(ctx, req.NoteID, middleware.UserIDFrom(ctx)); err != nil {
		response.Error(w, err)
		return
	}
	if _, err := h.Users.Lookup(ctx, req.UserID); err != nil {
		response.Error(w, err)
		return
	}

	id, err := h.Service.Grant(ctx, req.NoteID, req.UserID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "collaboration added", model.CollaborationResponse{CollaborationID: id})
}

func (h *CollaborationHandler) RemoveCollaborator(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := decode(w, r)
	if !ok {
		return
	}

	if err := h.Notes.VerifyOwner(ctx, req.NoteID, middleware.UserIDFrom(ctx)); err != nil {
		response.Error(w, err)
		return
	}
	if err := h.Service.Revoke(ctx, req.NoteID, req.UserID); err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "collaboration removed", nil)
}

func decode(w http.ResponseWriter, r *http.Request) (model.CollaborationRequest, bool) {
	var req model.CollaborationRequest
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
