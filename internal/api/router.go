package api

import (
	"net/http"
	"time"

	// Registers the generated Swagger spec.
	_ "docuchat/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates the chi router with all of the application's routes.
func NewRouter(chatHandler *ChatHandler, documentHandler *DocumentHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// JSON routes get a request timeout.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Get("/documents", documentHandler.HandleListDocuments)
			r.Get("/documents/{documentID}", documentHandler.HandleGetDocument)
			r.Delete("/documents/{documentID}", documentHandler.HandleDeleteDocument)

			r.Post("/search", documentHandler.HandleSearch)
			r.Get("/stats", documentHandler.HandleStats)
		})

		// Streaming and long-running indexing routes must not time out.
		r.Group(func(r chi.Router) {
			r.Post("/documents", documentHandler.HandleUpload)
			r.Post("/documents/{documentID}/reindex", documentHandler.HandleReindexDocument)
			r.Post("/chat", chatHandler.HandleAsk)
		})
	})

	return r
}
