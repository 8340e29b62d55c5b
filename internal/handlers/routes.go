package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes builds the full router.
func (h *Handler) Routes(allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", h.Health)
	r.Get("/readyz", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/games", func(r chi.Router) {
			r.Post("/", h.CreateGame)
			r.Post("/import", h.ImportGame)
			r.Get("/{id}", h.GetGame)
			r.Post("/{id}/throws", h.SubmitThrow)
			r.Post("/{id}/undo", h.UndoThrow)
			r.Delete("/{id}/players/{pid}", h.RemovePlayer)
			r.Get("/{id}/export", h.ExportGame)
		})

		r.Route("/tournaments", func(r chi.Router) {
			r.Post("/", h.CreateTournament)
			r.Get("/{id}", h.GetTournament)
			r.Get("/{id}/next", h.NextMatch)
			r.Post("/{id}/matches/{uid}/result", h.RecordResult)
		})

		r.Get("/checkout", h.CheckoutSuggestion)
		r.Get("/players/{id}/stats", h.PlayerStats)
		r.Get("/leaderboard", h.Leaderboard)
	})

	return r
}
