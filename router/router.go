package router

import (
	"net/http"
	"time"

	authHandler "notesapi/internal/auth"
	collabHandler "notesapi/internal/collaboration"
	exportHandler "notesapi/internal/export"
	noteHandler "notesapi/internal/note"
	uploadHandler "notesapi/internal/upload"
	userHandler "notesapi/internal/user"
	"notesapi/middleware"
	"notesapi/socket"

	"github.com/gorilla/mux"
)

type Handlers struct {
	Auth           *authHandler.AuthHandler
	Users          *userHandler.UserHandler
	Notes          *noteHandler.NoteHandler
	Collaborations *collabHandler.CollaborationHandler
	Exports        *exportHandler.ExportHandler
	Uploads        *uploadHandler.UploadHandler
	UploadDir      string
}

func Setup(h Handlers, tokens middleware.TokenVerifier, hub *socket.Hub, timeout time.Duration) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger, middleware.Timeout(timeout))
	auth := middleware.Auth(tokens)

	// WebSocket
	r.Handle("/ws", auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		socket.ServeWs(hub, w, r, middleware.UserIDFrom(r.Context()))
	})))

	// Public
	r.HandleFunc("/users", h.Users.Register).Methods(http.MethodPost)
	r.HandleFunc("/users", h.Users.SearchUsers).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", h.Users.GetUser).Methods(http.MethodGet)

	r.HandleFunc("/authentications", h.Auth.Login).Methods(http.MethodPost)
	r.HandleFunc("/authentications", h.Auth.Refresh).Methods(http.MethodPut)
	r.HandleFunc("/authentications", h.Auth.Logout).Methods(http.MethodDelete)

	r.PathPrefix("/upload/images/").Handler(
		http.StripPrefix("/upload/images/", uploadHandler.Static(h.UploadDir)),
	).Methods(http.MethodGet)

	// Authenticated
	api := r.NewRoute().Subrouter()
	api.Use(auth)

	api.HandleFunc("/notes", h.Notes.CreateNote).Methods(http.MethodPost)
	api.HandleFunc("/notes", h.Notes.GetNotes).Methods(http.MethodGet)
	api.HandleFunc("/notes/{id}", h.Notes.GetNote).Methods(http.MethodGet)
	api.HandleFunc("/notes/{id}", h.Notes.UpdateNote).Methods(http.MethodPut)
	api.HandleFunc("/notes/{id}", h.Notes.DeleteNote).Methods(http.MethodDelete)

	api.HandleFunc("/collaborations", h.Collaborations.AddCollaborator).Methods(http.MethodPost)
	api.HandleFunc("/collaborations", h.Collaborations.RemoveCollaborator).Methods(http.MethodDelete)

	api.HandleFunc("/exports/notes", h.Exports.ExportNotes).Methods(http.MethodPost)
	api.HandleFunc("/upload/images", h.Uploads.UploadImage).Methods(http.MethodPost)

	return middleware.CORSMiddleware(r)
}
