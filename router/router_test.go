package router

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authHandler "notesapi/internal/auth"
	collabHandler "notesapi/internal/collaboration"
	exportHandler "notesapi/internal/export"
	noteHandler "notesapi/internal/note"
	uploadHandler "notesapi/internal/upload"
	userHandler "notesapi/internal/user"
	"notesapi/socket"

	"github.com/stretchr/testify/assert"
)

type rejectAll struct{}

func (rejectAll) VerifyAccessToken(string) (string, error) { return "", errors.New("no") }

func newRouter() http.Handler {
	h := Handlers{
		Auth:           &authHandler.AuthHandler{},
		Users:          &userHandler.UserHandler{},
		Notes:          &noteHandler.NoteHandler{},
		Collaborations: &collabHandler.CollaborationHandler{},
		Exports:        &exportHandler.ExportHandler{},
		Uploads:        &uploadHandler.UploadHandler{},
		UploadDir:      ".",
	}
	return Setup(h, rejectAll{}, socket.NewHub(), time.Second)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newRouter()

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/notes"},
		{http.MethodPost, "/notes"},
		{http.MethodGet, "/notes/note-1"},
		{http.MethodPut, "/notes/note-1"},
		{http.MethodDelete, "/notes/note-1"},
		{http.MethodPost, "/collaborations"},
		{http.MethodDelete, "/collaborations"},
		{http.MethodPost, "/exports/notes"},
		{http.MethodPost, "/upload/images"},
		{http.MethodGet, "/ws"},
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(route.method, route.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestPublicRoutesSkipAuth(t *testing.T) {
	r := newRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/authentications", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/notes", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
