package handler

import (
	"encoding/json"
	"net/http"

	"notesapi/internal/user/model"
	"notesapi/internal/user/service"
	"notesapi/pkg/apperror"
	"notesapi/pkg/response"
	"notesapi/pkg/validate"

	"github.com/gorilla/mux"
)

type UserHandler struct {
	Service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apperror.Validation("invalid request body"))
		return
	}
	if err := validate.Struct(req); err != nil {
		response.Error(w, err)
		return
	}

	userID, err := h.Service.Register(r.Context(), req.Username, req.Password, req.Fullname)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "user added", model.RegisterResponse{UserID: userID})
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.Lookup(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "", map[string]any{"user": user})
}

func (h *UserHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.Search(r.Context(), r.URL.Query().Get("username"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "", map[string]any{"users": users})
}
