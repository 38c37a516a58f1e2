package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Maazpendari01/InterviewQi/internal/models"
	"github.com/Maazpendari01/InterviewQi/internal/utils"
)

const (
	defaultWeakAreaThreshold = 60
	defaultProgressLimit     = 20
	defaultRecentLimit       = 10
	defaultLeaderboardLimit  = 10
	maxListLimit             = 100
)

// AnalyticsStore is implemented by repositories.SessionRepository
type AnalyticsStore interface {
	Stats(ctx context.Context) (*models.AnalyticsStats, error)
	WeakAreas(ctx context.Context, userID string, threshold int) (map[string]*models.WeakArea, error)
	UserProgress(ctx context.Context, userID string, limit int) (*models.UserProgress, error)
	RecentSessions(ctx context.Context, limit int, category string) ([]models.InterviewSession, error)
	Leaderboard(ctx context.Context, category string, limit int) ([]models.LeaderboardEntry, error)
}

type AnalyticsHandler struct {
	store  AnalyticsStore
	logger *zap.Logger
}

func NewAnalyticsHandler(store AnalyticsStore, logger *zap.Logger) *AnalyticsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsHandler{store: store, logger: logger}
}

func (h *AnalyticsHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		h.fail(w, "stats", err)
		return
	}
	utils.JSON(w, http.StatusOK, models.Resp{OK: true, Info: stats})
}

func (h *AnalyticsHandler) WeakAreasHandler(w http.ResponseWriter, r *http.Request) {
	threshold, ok := intParam(w, r, "threshold", defaultWeakAreaThreshold, 0, 100)
	if !ok {
		return
	}

	areas, err := h.store.WeakAreas(r.Context(), r.URL.Query().Get("user_id"), threshold)
	if err != nil {
		h.fail(w, "weak_areas", err)
		return
	}
	utils.JSON(w, http.StatusOK, models.Resp{OK: true, Info: areas})
}

func (h *AnalyticsHandler) ProgressHandler(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(chi.URLParam(r, "user_id"))
	if userID == "" {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{Code: "missing_user_id", Message: "user_id is required"})
		return
	}
	limit, ok := intParam(w, r, "limit", defaultProgressLimit, 1, maxListLimit)
	if !ok {
		return
	}

	progress, err := h.store.UserProgress(r.Context(), userID, limit)
	if err != nil {
		h.fail(w, "progress", err)
		return
	}
	utils.JSON(w, http.StatusOK, models.Resp{OK: true, Info: progress})
}

func (h *AnalyticsHandler) RecentSessionsHandler(w http.ResponseWriter, r *http.Request) {
	limit, ok := intParam(w, r, "limit", defaultRecentLimit, 1, maxListLimit)
	if !ok {
		return
	}
	category, ok := categoryParam(w, r)
	if !ok {
		return
	}

	sessions, err := h.store.RecentSessions(r.Context(), limit, category)
	if err != nil {
		h.fail(w, "recent_sessions", err)
		return
	}
	utils.JSON(w, http.StatusOK, models.Resp{OK: true, Info: sessions})
}

func (h *AnalyticsHandler) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	limit, ok := intParam(w, r, "limit", defaultLeaderboardLimit, 1, maxListLimit)
	if !ok {
		return
	}
	category, ok := categoryParam(w, r)
	if !ok {
		return
	}

	entries, err := h.store.Leaderboard(r.Context(), category, limit)
	if err != nil {
		h.fail(w, "leaderboard", err)
		return
	}
	utils.JSON(w, http.StatusOK, models.Resp{OK: true, Info: entries})
}

func (h *AnalyticsHandler) fail(w http.ResponseWriter, query string, err error) {
	h.logger.Error("Analytics query failed", zap.String("query", query), zap.Error(err))
	utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
		Code:    "analytics_error",
		Message: "Failed to load analytics",
	})
}

// intParam reads an optional integer query parameter within [lo, hi]
func intParam(w http.ResponseWriter, r *http.Request, name string, def, lo, hi int) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_" + name,
			Message: name + " must be an integer between " + strconv.Itoa(lo) + " and " + strconv.Itoa(hi),
			Details: []models.ValidationErrorDetail{{Field: name, Reason: "out_of_range"}},
		})
		return 0, false
	}
	return v, true
}

func categoryParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	category := utils.NormalizeCategory(r.URL.Query().Get("category"))
	if category == "" || models.SupportedCategories[category] {
		return category, true
	}
	utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
		Code:    "unsupported_category",
		Message: "Category not supported. Supported categories: " + strings.Join(models.SupportedCategoriesList(), ", "),
	})
	return "", false
}
