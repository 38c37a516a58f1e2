package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/Maazpendari01/InterviewQi/internal/handlers"
	"github.com/Maazpendari01/InterviewQi/internal/middleware"
	"github.com/Maazpendari01/InterviewQi/internal/models"
)

func InterviewRoutes(router *chi.Mux, interviewHandler *handlers.InterviewHandler, jwtSecret string) {
	router.Route("/api/v1/interview", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(jwtSecret))
		r.With(middleware.ValidateRequest[*models.StartInterviewRequest]()).Post("/start", interviewHandler.StartHandler)
		r.With(middleware.ValidateRequest[*models.SubmitAnswerRequest]()).Post("/answer", interviewHandler.AnswerHandler)
		r.Get("/{session_id}/transcript", interviewHandler.TranscriptHandler)
	})
}
