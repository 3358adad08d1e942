// Package handlers provides HTTP handlers for catalog operations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/quartermaster/internal/domain"
	"github.com/aristath/quartermaster/internal/modules/catalog"
)

// Handler handles catalog HTTP requests
type Handler struct {
	service *catalog.Service
	repo    *catalog.Repository
	log     zerolog.Logger
}

// NewHandler creates a new catalog handler
func NewHandler(
	service *catalog.Service,
	repo *catalog.Repository,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		service: service,
		repo:    repo,
		log:     log.With().Str("handler", "catalog").Logger(),
	}
}

// HandleGetArchetypes handles GET /api/catalog/archetypes
func (h *Handler) HandleGetArchetypes(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.repo.Current()
	if err != nil {
		h.writeError(w, http.StatusServiceUnavailable, "CATALOG_NOT_LOADED", err.Error())
		return
	}

	archetypes := snapshot.Archetypes()
	list := make([]map[string]interface{}, 0, len(archetypes))
	for _, archetype := range archetypes {
		list = append(list, map[string]interface{}{
			"hull":     archetype.Hull,
			"activity": archetype.Activity,
			"fits":     len(archetype.Fits),
		})
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"archetypes": list,
			"count":      len(list),
		},
		"metadata": map[string]interface{}{
			"version":   snapshot.Version(),
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleGetFits handles GET /api/catalog/archetypes/{hull}/{activity}/fits
func (h *Handler) HandleGetFits(w http.ResponseWriter, r *http.Request) {
	hull := chi.URLParam(r, "hull")
	activity := chi.URLParam(r, "activity")

	fits, err := h.repo.FitsFor(hull, activity)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotLoaded):
			h.writeError(w, http.StatusServiceUnavailable, "CATALOG_NOT_LOADED", err.Error())
		case errors.Is(err, domain.ErrArchetypeNotFound):
			h.writeError(w, http.StatusNotFound, "ARCHETYPE_NOT_FOUND", err.Error())
		default:
			h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		}
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"fits":  fits,
			"count": len(fits),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleGetSummary handles GET /api/catalog/summary
func (h *Handler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary()
	if err != nil {
		h.writeError(w, http.StatusServiceUnavailable, "CATALOG_NOT_LOADED", err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": summary,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleReload handles POST /api/catalog/reload
func (h *Handler) HandleReload(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reload(r.Context()); err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, "CATALOG_LOAD_FAILED", err.Error())
		return
	}

	summary, err := h.service.Summary()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": summary,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
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
