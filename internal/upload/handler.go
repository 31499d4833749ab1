package handler

import (
	"errors"
	"net/http"

	"notesapi/internal/upload/model"
	"notesapi/internal/upload/service"
	"notesapi/pkg/apperror"
	"notesapi/pkg/response"
)

const formField = "data"

type UploadHandler struct {
	Service  *service.UploadService
	MaxBytes int64
}

func NewUploadHandler(service *service.UploadService, maxBytes int64) *UploadHandler {
	return &UploadHandler{Service: service, MaxBytes: maxBytes}
}

func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.MaxBytes {
		tooLarge(w)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			tooLarge(w)
			return
		}
		response.Error(w, apperror.Validation("invalid multipart payload"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(formField)
	if err != nil {
		response.Error(w, apperror.Validation(`missing "data" file`))
		return
	}
	defer file.Close()

	location, err := h.Service.SaveImage(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "image uploaded", model.UploadResponse{FileLocation: location})
}

func tooLarge(w http.ResponseWriter) {
	response.JSON(w, http.StatusRequestEntityTooLarge, response.Envelope{Status: "fail", Message: "payload too large"})
}

// Static serves files written by the local storage driver.
func Static(dir string) http.Handler {
	return http.FileServer(http.Dir(dir))
}
