package http

import (
	"encoding/json"
	"net/http"

	apperrors "tripdey/pkg/errors"
)

// Envelope is the uniform response shape for every endpoint, success and
// failure alike.
type Envelope struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Caller logs; nothing can be rewritten after WriteHeader.
		return err
	}
	return nil
}

func WriteEnvelope(w http.ResponseWriter, statusCode int, message string, data any) error {
	return WriteJSON(w, statusCode, Envelope{
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	})
}

func WriteSuccess(w http.ResponseWriter, message string, data any) error {
	return WriteEnvelope(w, http.StatusOK, message, data)
}

func WriteCreated(w http.ResponseWriter, message string, data any) error {
	return WriteEnvelope(w, http.StatusCreated, message, data)
}

// WriteError is the one place application errors become transport responses.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)

	var data any
	if len(appErr.Details) > 0 {
		data = appErr.Details
	}
	return WriteEnvelope(w, appErr.StatusCode(), appErr.Message, data)
}
