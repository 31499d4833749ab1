package handler

import (
	"encoding/json"
	"net/http"

	"notesapi/internal/auth/model"
	"notesapi/internal/auth/service"
	"notesapi/pkg/apperror"
	"notesapi/pkg/response"
	"notesapi/pkg/validate"
)

type AuthHandler struct {
	Service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{Service: service}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	pair, err := h.Service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "authentication added", pair)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req model.RefreshRequest
	if !decode(w, r, &req) {
		return
	}
	access, err := h.Service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "access token refreshed", model.TokenPair{AccessToken: access})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req model.RefreshRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.Logout(r.Context(), req.RefreshToken); err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "refresh token removed", nil)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.Error(w, apperror.Validation("invalid request body"))
		return false
	}
	if err := validate.Struct(dst); err != nil {
		response.Error(w, err)
		return false
	}
	return true
}
