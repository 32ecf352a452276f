package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"quizdeck/internal/db"
	"quizdeck/internal/services"
)

type Server struct {
	DB          *db.DB
	QuizService services.QuizService
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", s.handleCategories)

		r.Get("/session", s.handleGetSession)
		r.Post("/session/start", s.handleStartSession)
		r.Post("/session/answer", s.handleSelectAnswer)
		r.Post("/session/advance", s.handleAdvance)
		r.Post("/session/finish", s.handleFinishSession)
		r.Post("/session/reset", s.handleResetSession)

		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handleUpdateSettings)

		r.Get("/results", s.handleResults)
		r.Get("/results/recent", s.handleRecentResults)
		r.Get("/results/stats", s.handleResultStats)
		r.Delete("/results/{id}", s.handleDeleteResult)
		r.Delete("/results", s.handleClearResults)
	})

	return r
}
