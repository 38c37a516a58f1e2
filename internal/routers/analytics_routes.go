package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/Maazpendari01/InterviewQi/internal/handlers"
)

func AnalyticsRoutes(router *chi.Mux, analyticsHandler *handlers.AnalyticsHandler) {
	router.Route("/api/v1/analytics", func(r chi.Router) {
		r.Get("/stats", analyticsHandler.StatsHandler)
		r.Get("/weak-areas", analyticsHandler.WeakAreasHandler)
		r.Get("/progress/{user_id}", analyticsHandler.ProgressHandler)
		r.Get("/sessions/recent", analyticsHandler.RecentSessionsHandler)
		r.Get("/leaderboard", analyticsHandler.LeaderboardHandler)
	})
}
