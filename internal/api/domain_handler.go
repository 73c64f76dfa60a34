package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

const (
	defaultPageNumber = 0
	defaultPageSize   = 6
)

// DomainHandler handles domain endpoints.
type DomainHandler struct {
	svc DomainService
	log *slog.Logger
}

// NewDomainHandler creates a new domain handler.
func NewDomainHandler(svc DomainService, log *slog.Logger) *DomainHandler {
	return &DomainHandler{svc: svc, log: log}
}

// RegisterRoutes registers domain routes.
func (h *DomainHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/domain", h.list).Methods(http.MethodGet)
	r.HandleFunc("/domain", h.create).Methods(http.MethodPost)
	r.HandleFunc("/domain/{domainId}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/domain/{domainId}", h.update).Methods(http.MethodPatch)
	r.HandleFunc("/domain/{domainId}", h.delete).Methods(http.MethodDelete)
}

func (h *DomainHandler) list(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	pageNumber := queryInt(r, "pageNumber", defaultPageNumber)
	pageSize := queryInt(r, "pageSize", defaultPageSize)

	resp, err := h.svc.ListDomains(r.Context(), name, pageNumber, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *DomainHandler) get(w http.ResponseWriter, r *http.Request) {
	domainID := mux.Vars(r)["domainId"]

	resp, err := h.svc.GetDomain(r.Context(), domainID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *DomainHandler) create(w http.ResponseWriter, r *http.Request) {
	var req DomainCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	domainID, err := h.svc.CreateDomain(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, DomainResponse{ID: domainID, Name: req.Name, Description: req.Description})
}

func (h *DomainHandler) update(w http.ResponseWriter, r *http.Request) {
	domainID := mux.Vars(r)["domainId"]

	var req DomainUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if err := h.svc.UpdateDomain(r.Context(), domainID, &req); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DomainHandler) delete(w http.ResponseWriter, r *http.Request) {
	domainID := mux.Vars(r)["domainId"]

	if err := h.svc.DeleteDomain(r.Context(), domainID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
