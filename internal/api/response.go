// internal/api/response.go
package api

import (
	"encoding/json"
	"net/http"
)

// respondWithJSON writes v as a JSON response with the given status code.
func respondWithJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// respondWithError writes a JSON error payload with the given status code.
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
