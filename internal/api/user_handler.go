package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// UserHandler handles user profile endpoints.
type UserHandler struct {
	svc UserService
	log *slog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc UserService, log *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// RegisterRoutes registers user routes. The {userId} wildcard also matches
// literal path segments, so these must be registered after the more specific
// domain routes.
func (h *UserHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.getByEmail).Queries("email", "{email}").Methods(http.MethodGet)
	r.HandleFunc("/domain/{domainId}/experts", h.expertsByDomain).Methods(http.MethodGet)
	r.HandleFunc("/{userId}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/{userId}", h.update).Methods(http.MethodPatch)
	r.HandleFunc("/{userId}", h.delete).Methods(http.MethodDelete)
	r.HandleFunc("/{userId}/domain", h.updateDomains).Methods(http.MethodPatch)
}

func (h *UserHandler) get(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	resp, err := h.svc.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) getByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	resp, err := h.svc.GetUserByEmail(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) update(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var req UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if err := h.svc.UpdateUser(r.Context(), userID, &req); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) updateDomains(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var req UserDomainsUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Operator == "" {
		badRequest(w, "operator cannot be null.")
		return
	}
	if req.DomainIDs == nil {
		badRequest(w, "domainIds cannot be null.")
		return
	}

	if err := h.svc.UpdateUserDomains(r.Context(), userID, &req); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) delete(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	if err := h.svc.DeleteUser(r.Context(), userID); err != nil {
		h.log.Error("user deletion failed", "user_id", userID, "error", err)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) expertsByDomain(w http.ResponseWriter, r *http.Request) {
	domainID := mux.Vars(r)["domainId"]

	resp, err := h.svc.ExpertsByDomain(r.Context(), domainID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
