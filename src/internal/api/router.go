package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maksimkurb/configurator/src/internal/config"
)

// NewRouter creates a new HTTP router with all API endpoints.
func NewRouter(engine *config.Engine) http.Handler {
	r := chi.NewRouter()

	// Apply middleware
	r.Use(Recovery)
	r.Use(Logger)
	r.Use(PrivateSubnetOnly)
	r.Use(JSONContentType)

	h := NewHandler(engine)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/schema", h.GetSchema)

		r.Get("/config", h.GetConfig)
		r.Get("/config/{section}", h.GetSection)
		r.Put("/config/{section}", h.UpdateSection)
	})

	return r
}
