package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(s.metricsMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Handle("/metrics", s.Metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Post("/reset", s.handleReset)

		r.Get("/puzzles/next", s.handleNextPuzzle)
		r.Get("/puzzles/current", s.handleCurrentPuzzle)
		r.Post("/puzzles/{id}/answer", s.handleAnswerPuzzle)
		r.Get("/puzzles/{id}/analytics", s.handlePuzzleAnalytics)

		r.Get("/coverage/next", s.handleNextCoverage)
		r.Post("/coverage/answer", s.handleAnswerCoverage)

		r.Get("/stats", s.handleStats)
		r.Get("/attempts", s.handleAttempts)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errNotFoundRoute(r))
	})
	return r
}
