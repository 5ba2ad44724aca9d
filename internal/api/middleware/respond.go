package middleware

import (
	"encoding/json"
	"log"
	"net/http"
)

// respondError writes the API's standard error body. Mirrors the handler
// package's helper so middleware rejections look the same on the wire.
func respondError(w http.ResponseWriter, status int, message, detail string) {
	body := map[string]string{"error": message}
	if detail != "" {
		body["detail"] = detail
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode JSON: %v", err)
	}
}
