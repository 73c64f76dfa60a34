package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	svc AuthService
	log *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(svc AuthService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

// RegisterRoutes registers auth routes.
func (h *AuthHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/login", h.login).Methods(http.MethodPost)
	r.HandleFunc("/refresh", h.refresh).Methods(http.MethodPost)
	r.HandleFunc("/register", h.register).Methods(http.MethodPost)
	r.HandleFunc("/{userId}/logout", h.logout).Methods(http.MethodPost)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Username == "" {
		badRequest(w, "username cannot be blank.")
		return
	}
	if req.Password == "" {
		badRequest(w, "password cannot be blank.")
		return
	}

	resp, err := h.svc.Login(r.Context(), &req)
	if err != nil {
		h.log.Error("login failed", "username", req.Username, "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken := r.URL.Query().Get("refreshToken")
	if refreshToken == "" {
		badRequest(w, "refreshToken cannot be blank.")
		return
	}

	resp, err := h.svc.Refresh(r.Context(), refreshToken)
	if err != nil {
		h.log.Error("token refresh failed", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	isExpert := false
	if v := r.URL.Query().Get("isExpert"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			badRequest(w, "isExpert must be a boolean.")
			return
		}
		isExpert = parsed
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	userID, err := h.svc.Register(r.Context(), isExpert, &req)
	if err != nil {
		h.log.Error("registration failed", "username", req.Username, "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, RegisterResponse{ID: userID})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	success, err := h.svc.Logout(r.Context(), userID)
	if err != nil {
		h.log.Error("logout failed", "user_id", userID, "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LogoutResponse{Success: success})
}
