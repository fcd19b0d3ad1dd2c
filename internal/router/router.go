package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fedipost-dev/fedipost/internal/handler"
	"github.com/fedipost-dev/fedipost/internal/metrics"
)

func SetupRouter(h *handler.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.CreateSession)
			r.Route("/{session}", func(r chi.Router) {
				r.Get("/", h.GetSession)
				r.Patch("/", h.UpdateSession)
				r.Delete("/", h.CloseSession)

				r.Post("/attachments", h.AddAttachments)
				r.Delete("/attachments/{index}", h.RemoveAttachment)
				r.Put("/attachments/{index}/description", h.UpdateAttachmentDescription)

				r.Post("/poll", h.CreatePoll)
				r.Put("/poll", h.UpdatePoll)
				r.Delete("/poll", h.RemovePoll)

				r.Post("/autocomplete", h.Autocomplete)
				r.Post("/suggestion", h.AcceptSuggestion)

				r.Post("/submit", h.Submit)
				r.Post("/handoff", h.HandoffSession)
				r.Post("/save", h.SaveDraft)
			})
		})
		r.Route("/drafts", func(r chi.Router) {
			r.Get("/", h.ListDrafts)
			r.Delete("/{draft}", h.DeleteDraft)
		})
	})

	return r
}
