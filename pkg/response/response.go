// Package response writes the JSON bodies the produtos API returns.
//
// The service speaks three shapes: a bare payload (product, listing),
// {"message": "..."} and {"error": "..."}.
package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Success sends a 200 with v as the body.
func Success(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusOK, v)
}

// Message sends {"message": msg}.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// Error sends {"error": msg}.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// BadRequest sends a 400 {"error": msg}.
func BadRequest(w http.ResponseWriter, msg string) {
	Error(w, http.StatusBadRequest, msg)
}

// ValidationError sends a 400 with the first message as "error" and the
// field-level map as "errors".
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	first := "Validation failed"
	for _, msg := range errs {
		first = msg
		break
	}
	JSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  first,
		"errors": errs,
	})
}

// NotFound sends a 404 {"error": "Not found"}.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}
