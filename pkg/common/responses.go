package common

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "photostack-backend/pkg/errors"
)

// MessageResponse is the body shape for all message-only responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// RespondJSON sends a JSON response with the given payload
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondMessage sends a message-only JSON response
func RespondMessage(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, MessageResponse{Message: message})
}

// DecodeJSONBody decodes the request body into v. A missing body and a
// malformed body are distinct validation failures with the same status class.
func DecodeJSONBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return apperrors.NewValidationError("Request body is missing.")
	}

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.NewValidationError("Request body is missing.")
		}
		return apperrors.NewValidationError("Request body is not valid JSON.").WithCause(err)
	}

	return nil
}
