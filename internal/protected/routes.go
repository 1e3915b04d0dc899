package protected

import (
	"net/http"

	"github.com/EcoAtlasZA/offsets-backend/internal/auth"
	"github.com/EcoAtlasZA/offsets-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	r.Get("/areas", AreaListHandler)
	r.Get("/areas/{id}", AreaHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Post("/areas", AreaCreateHandler)
		r.Put("/areas/{id}", AreaUpdateHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Use(middleware.AdminMiddleware(sessionFetcher))
		r.Delete("/areas/{id}", AreaDeleteHandler)
	})

	return r
}
