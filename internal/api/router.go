package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/peaklog/internal/climbservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *climbservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Catalog.
	r.Get("/peaks", h.ListPeaks)
	r.Get("/peaks/names", h.ListPeakNames)

	// Peak log.
	r.Get("/climbs", h.ListClimbs)
	r.Post("/climbs", h.LogClimb)
	r.Delete("/climbs", h.RemoveClimb)

	// Derived views.
	r.Get("/progress", h.Progress)
	r.Get("/map", h.MapMarkers)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
