package httpx

import (
	"encoding/json"
	"net/http"
)

// Client-facing texts for server-side failures. The wrapped cause stays in the
// logs.
const (
	MsgValidationFailed   = "Validation failed"
	MsgStorageUnavailable = "Storage unavailable, the change was not saved"
)

// ValidationErrorResponse is the body of every 422 caused by request fields.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// JSON writes v as JSON with the given status code. Encoding errors are
// dropped: the header is already written.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes {"error": message}.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// ValidationError writes a 422 listing a message per offending field.
func ValidationError(w http.ResponseWriter, fields map[string]string) {
	JSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{Error: MsgValidationFailed, Fields: fields})
}

// NoContent writes a bare 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// ErrorMessage returns the text a client sees for err answered with status.
// 4xx errors carry the domain message; 5xx never expose the cause.
func ErrorMessage(err error, status int) string {
	switch {
	case status == http.StatusServiceUnavailable:
		return MsgStorageUnavailable
	case status >= http.StatusInternalServerError:
		return http.StatusText(status)
	}
	return err.Error()
}
