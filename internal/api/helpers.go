package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"user-backend/internal/biz"
	"user-backend/internal/keycloak"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps service errors to transport responses. Broker errors map
// 1:1 to their carried status code and message.
func writeError(w http.ResponseWriter, err error) {
	var kerr *keycloak.Error
	if errors.As(err, &kerr) {
		http.Error(w, kerr.Message, kerr.StatusCode)
		return
	}
	if errors.Is(err, biz.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if errors.Is(err, biz.ErrIllegalAttribute) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func badRequest(w http.ResponseWriter, message string) {
	http.Error(w, message, http.StatusBadRequest)
}
