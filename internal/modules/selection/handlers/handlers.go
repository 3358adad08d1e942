// Package handlers provides HTTP handlers for selection operations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/quartermaster/internal/domain"
	"github.com/aristath/quartermaster/internal/modules/catalog"
	"github.com/aristath/quartermaster/internal/modules/selection"
)

// Handler handles selection HTTP requests
type Handler struct {
	service *selection.Service
	log     zerolog.Logger
}

// NewHandler creates a new selection handler
func NewHandler(service *selection.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "selection").Logger(),
	}
}

type selectRequest struct {
	Hull        string              `json:"hull"`
	Activity    string              `json:"activity"`
	Pilot       domain.PilotProfile `json:"pilot"`
	WithMission bool                `json:"with_mission"`
}

type checkRequest struct {
	FitID string              `json:"fit_id"`
	Pilot domain.PilotProfile `json:"pilot"`
}

// HandleSelect handles POST /api/selection/select
func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if req.Hull == "" || req.Activity == "" {
		h.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "hull and activity are required")
		return
	}

	report, err := h.service.SelectFit(req.Hull, req.Activity, &req.Pilot, req.WithMission)
	if err != nil {
		h.writeSelectionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": report,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleCheck handles POST /api/selection/check
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if req.FitID == "" {
		h.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "fit_id is required")
		return
	}

	result, err := h.service.CheckFit(req.FitID, &req.Pilot)
	if err != nil {
		h.writeSelectionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": result,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// writeSelectionError maps pipeline errors onto HTTP statuses. A fully
// filtered-out candidate set is a structured 422 carrying the per-fit
// rejection reasons.
func (h *Handler) writeSelectionError(w http.ResponseWriter, err error) {
	var noFits *domain.NoEligibleFitsError
	switch {
	case errors.As(err, &noFits):
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error": map[string]interface{}{
				"message":  noFits.Error(),
				"code":     "NO_ELIGIBLE_FITS",
				"rejected": noFits.Rejected,
			},
		})
	case errors.Is(err, catalog.ErrNotLoaded):
		h.writeError(w, http.StatusServiceUnavailable, "CATALOG_NOT_LOADED", err.Error())
	case errors.Is(err, domain.ErrArchetypeNotFound):
		h.writeError(w, http.StatusNotFound, "ARCHETYPE_NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrMissionNotFound):
		h.writeError(w, http.StatusNotFound, "MISSION_NOT_FOUND", err.Error())
	default:
		h.log.Error().Err(err).Msg("Selection failed")
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes a JSON error response
func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string) {
	h.writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": message,
			"code":    code,
		},
	})
}
