package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all catalog routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/catalog", func(r chi.Router) {
		r.Get("/archetypes", h.HandleGetArchetypes)
		r.Get("/archetypes/{hull}/{activity}/fits", h.HandleGetFits)
		r.Get("/summary", h.HandleGetSummary)
		r.Post("/reload", h.HandleReload)
	})
}
