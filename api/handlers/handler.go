package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/jusunglee/mta-departures/internal/models"
	"github.com/jusunglee/mta-departures/internal/static"
	"github.com/jusunglee/mta-departures/pkg/mta"
)

// Client is the slice of the departures client the HTTP layer needs
type Client interface {
	Departures(ctx context.Context, complexID int) (*models.ComplexResponse, error)
	DeparturesAll(ctx context.Context, complexIDs []int) ([]models.ComplexResponse, error)
	Complexes() []static.Complex
}

// Handler handles HTTP requests
type Handler struct {
	client Client
}

// NewHandler creates a new HTTP handler
func NewHandler(client Client) *Handler {
	return &Handler{client: client}
}

// RegisterRoutes registers all routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.handleIndex).Methods("GET")
	r.HandleFunc("/complexes", h.handleComplexes).Methods("GET")
	r.HandleFunc("/departures/{ids}", h.handleDepartures).Methods("GET")
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"title":  "mta-departures",
		"readme": "Visit https://github.com/jusunglee/mta-departures for more info",
	}
	h.writeJSON(w, response)
}

func (h *Handler) handleComplexes(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.client.Complexes())
}

// handleDepartures serves one or many complexes. A single id yields a single
// response object; a comma-separated list yields an array in request order.
func (h *Handler) handleDepartures(w http.ResponseWriter, r *http.Request) {
	idsStr := mux.Vars(r)["ids"]

	parts := strings.Split(idsStr, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			h.writeError(w, "invalid complex id: "+p, http.StatusBadRequest)
			return
		}
		ids = append(ids, id)
	}

	if len(ids) == 1 {
		resp, err := h.client.Departures(r.Context(), ids[0])
		if err != nil {
			h.writeError(w, err.Error(), statusFor(err))
			return
		}
		h.writeJSON(w, resp)
		return
	}

	resps, err := h.client.DeparturesAll(r.Context(), ids)
	if err != nil {
		h.writeError(w, err.Error(), statusFor(err))
		return
	}
	h.writeJSON(w, resps)
}

// statusFor maps client errors onto HTTP statuses: unknown ids are the
// caller's fault, everything else is an upstream feed problem.
func statusFor(err error) int {
	if errors.Is(err, mta.ErrUnknownComplex) {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.writeError(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
