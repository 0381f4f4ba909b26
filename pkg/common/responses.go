package common

import (
	"encoding/json"
	"net/http"

	pkgerrors "promptflow-backend/pkg/errors"
)

// MessageResponse is the body shape used for CRUD-level errors and
// informational replies: {"message": "..."}.
type MessageResponse struct {
	Message string `json:"message"`
}

// RespondJSON sends a JSON response with the payload written as-is.
// The REST surface is a fixed contract consumed by an existing client,
// so payloads are not wrapped in an envelope.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// RespondMessage sends a {"message": ...} body
func RespondMessage(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, MessageResponse{Message: message})
}

// RespondAppError maps an application error onto its HTTP status with a
// {"message": ...} body; non-AppError values become a 500.
func RespondAppError(w http.ResponseWriter, err error) {
	if appErr := pkgerrors.GetAppError(err); appErr != nil {
		RespondMessage(w, appErr.HTTPStatus, appErr.Message)
		return
	}
	RespondMessage(w, http.StatusInternalServerError, "internal server error")
}

// ParseJSONBody parses JSON request body with size limit
func ParseJSONBody(r *http.Request, v interface{}, maxBytes int64) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)

	decoder := json.NewDecoder(r.Body)

	if err := decoder.Decode(v); err != nil {
		return err
	}

	return nil
}
