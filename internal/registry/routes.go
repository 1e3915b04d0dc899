package registry

import (
	"net/http"

	"github.com/EcoAtlasZA/offsets-backend/internal/auth"
	"github.com/EcoAtlasZA/offsets-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	r.Get("/developments", DevelopmentListHandler)
	r.Get("/developments/{id}", DevelopmentHandler)
	r.Post("/developments/batch", DevelopmentBatchHandler)
	r.Get("/developments/{id}/offsets", DevelopmentOffsetsHandler)
	r.Get("/offsets", OffsetListHandler)
	r.Get("/offsets/{id}", OffsetHandler)
	r.Get("/permit-names", PermitNameListHandler)
	r.Get("/implementation-times", ImplementationTimeListHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Post("/developments", DevelopmentCreateHandler)
		r.Put("/developments/{id}", DevelopmentUpdateHandler)
		r.Post("/offsets", OffsetCreateHandler)
		r.Put("/offsets/{id}", OffsetUpdateHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Use(middleware.AdminMiddleware(sessionFetcher))
		r.Delete("/developments/{id}", DevelopmentDeleteHandler)
		r.Delete("/offsets/{id}", OffsetDeleteHandler)
	})

	return r
}
