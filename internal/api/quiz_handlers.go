package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/xo101/internal/logger"
	"github.com/vytor/xo101/internal/quiz"
)

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.QuizService.GetSummary(r.Context()))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.QuizService.Reset(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.QuizService.GetSummary(r.Context()))
}

func (s *Server) handleNextPuzzle(w http.ResponseWriter, r *http.Request) {
	p, err := s.QuizService.NextPuzzle(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

func (s *Server) handleCurrentPuzzle(w http.ResponseWriter, r *http.Request) {
	p, err := s.QuizService.CurrentPuzzle(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

func (s *Server) handleAnswerPuzzle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger.FromContext(r.Context()).Debug("answering puzzle %s", id)

	result, err := s.QuizService.SubmitAnswer(r.Context(), id, r.FormValue("answer"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handlePuzzleAnalytics(w http.ResponseWriter, r *http.Request) {
	summary, err := s.QuizService.GetAnalytics(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}

func (s *Server) handleNextCoverage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"coverage": s.QuizService.NextCoverage(r.Context()),
		"choices":  quiz.Coverages,
	})
}

func (s *Server) handleAnswerCoverage(w http.ResponseWriter, r *http.Request) {
	result, err := s.QuizService.SubmitCoverage(r.Context(), r.FormValue("answer"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}
