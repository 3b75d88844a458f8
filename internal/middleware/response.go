package middleware

import (
	"encoding/json"
	"net/http"
)

// WriteError пишет тело {"error": msg} с указанным статусом.
func WriteError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
