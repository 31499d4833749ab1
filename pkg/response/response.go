package response

import (
	"encoding/json"
	"net/http"

	"notesapi/pkg/apperror"
	"notesapi/pkg/logger"
)

type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func JSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Sugar.Errorf("Failed to encode response: %v", err)
	}
}

func Success(w http.ResponseWriter, code int, message string, data any) {
	JSON(w, code, Envelope{Status: "success", Message: message, Data: data})
}

// Error writes a "fail" envelope for client errors. Anything that is not an
// apperror kind is logged and hidden behind a generic 500.
func Error(w http.ResponseWriter, err error) {
	code := apperror.HTTPStatus(err)
	if code == http.StatusInternalServerError {
		logger.Sugar.Errorf("Unhandled error: %v", err)
		JSON(w, code, Envelope{Status: "error", Message: "internal server error"})
		return
	}
	JSON(w, code, Envelope{Status: "fail", Message: err.Error()})
}
