package server

import (
	"encoding/json"
	"net/http"

	svcErr "github.com/ydvSajal/Vibe-beats/internal/errors"
)

// WriteJSON encodes v as the JSON response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps err onto an HTTP status and writes the standard
// {"error": ...} body.
func WriteError(w http.ResponseWriter, err error) {
	mapped := svcErr.Map(err)
	WriteJSON(w, mapped.Status, map[string]string{"error": mapped.Message})
}
