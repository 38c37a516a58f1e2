package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/Maazpendari01/InterviewQi/internal/models"
)

var ErrSessionNotFound = errors.New("archived session not found")

// SessionRepository archives interview sessions and answers and serves analytics
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Migrate creates or updates the archive tables
func (r *SessionRepository) Migrate() error {
	return r.db.AutoMigrate(&models.InterviewSession{}, &models.QuestionResponse{})
}

func (r *SessionRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *SessionRepository) CreateSession(ctx context.Context, session *models.InterviewSession) error {
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session %s: %w", session.SessionID, err)
	}
	return nil
}

func (r *SessionRepository) GetSession(ctx context.Context, sessionID string) (*models.InterviewSession, error) {
	var session models.InterviewSession
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session %s: %w", sessionID, err)
	}
	return &session, nil
}

// SaveResponse stores one evaluated answer under the session with the given public id
func (r *SessionRepository) SaveResponse(ctx context.Context, sessionID string, resp *models.QuestionResponse) error {
	session, err := r.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	resp.SessionID = session.ID
	if resp.AnsweredAt.IsZero() {
		resp.AnsweredAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(resp).Error; err != nil {
		return fmt.Errorf("failed to save response for %s: %w", sessionID, err)
	}
	return nil
}

// GetSessionResponses returns a session's answers in question order
func (r *SessionRepository) GetSessionResponses(ctx context.Context, sessionID string) ([]models.QuestionResponse, error) {
	session, err := r.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	var responses []models.QuestionResponse
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", session.ID).
		Order("question_number ASC, id ASC").
		Find(&responses).Error; err != nil {
		return nil, fmt.Errorf("failed to get responses for %s: %w", sessionID, err)
	}
	return responses, nil
}

// CompleteSession stores the final transcript and summary
func (r *SessionRepository) CompleteSession(ctx context.Context, sessionID string, transcript []models.Message, totalQuestions int, averageScore *float64, completedAt time.Time) error {
	session, err := r.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}

	if averageScore != nil {
		rounded := round1(*averageScore)
		averageScore = &rounded
	}
	session.Transcript = transcript
	session.TotalQuestions = totalQuestions
	session.AverageScore = averageScore
	session.CompletedAt = &completedAt
	session.IsCompleted = true

	if err := r.db.WithContext(ctx).Save(session).Error; err != nil {
		return fmt.Errorf("failed to complete session %s: %w", sessionID, err)
	}
	return nil
}

// Stats returns platform-wide counts and averages
func (r *SessionRepository) Stats(ctx context.Context) (*models.AnalyticsStats, error) {
	db := r.db.WithContext(ctx).Model(&models.InterviewSession{})
	stats := &models.AnalyticsStats{ByCategory: make(map[string]int64)}

	if err := db.Count(&stats.TotalSessions).Error; err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&models.InterviewSession{}).
		Where("is_completed = ?", true).
		Count(&stats.CompletedSessions).Error; err != nil {
		return nil, fmt.Errorf("failed to count completed sessions: %w", err)
	}

	var avg sql.NullFloat64
	if err := r.db.WithContext(ctx).Model(&models.InterviewSession{}).
		Select("AVG(average_score)").
		Where("average_score IS NOT NULL").
		Scan(&avg).Error; err != nil {
		return nil, fmt.Errorf("failed to average scores: %w", err)
	}
	if avg.Valid {
		stats.AverageScore = round1(avg.Float64)
	}

	var rows []struct {
		Category string
		Count    int64
	}
	if err := r.db.WithContext(ctx).Model(&models.InterviewSession{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to group sessions: %w", err)
	}
	for _, row := range rows {
		stats.ByCategory[row.Category] = row.Count
	}

	if stats.TotalSessions > 0 {
		stats.CompletionRate = round1(float64(stats.CompletedSessions) / float64(stats.TotalSessions) * 100)
	}
	return stats, nil
}

// WeakAreas groups answers scoring below threshold by category. userID filters
// to one user when set.
func (r *SessionRepository) WeakAreas(ctx context.Context, userID string, threshold int) (map[string]*models.WeakArea, error) {
	query := r.db.WithContext(ctx).Model(&models.QuestionResponse{}).
		Where("question_responses.score < ?", threshold)
	if userID != "" {
		query = query.
			Joins("JOIN interview_sessions ON interview_sessions.id = question_responses.session_id").
			Where("interview_sessions.user_id = ?", userID)
	}

	var responses []models.QuestionResponse
	if err := query.Order("question_responses.id ASC").Find(&responses).Error; err != nil {
		return nil, fmt.Errorf("failed to find weak answers: %w", err)
	}

	areas := make(map[string]*models.WeakArea)
	totals := make(map[string]int)
	for _, resp := range responses {
		area, ok := areas[resp.Category]
		if !ok {
			area = &models.WeakArea{Questions: []string{}}
			areas[resp.Category] = area
		}
		area.Count++
		area.Questions = append(area.Questions, resp.QuestionID)
		totals[resp.Category] += resp.Score
	}
	for category, area := range areas {
		area.AvgScore = round1(float64(totals[category]) / float64(area.Count))
	}
	return areas, nil
}

// UserProgress returns up to limit completed sessions, oldest first, and the
// difference between the newest five and oldest five session averages
func (r *SessionRepository) UserProgress(ctx context.Context, userID string, limit int) (*models.UserProgress, error) {
	var sessions []models.InterviewSession
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Order("started_at DESC").
		Limit(limit).
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to load progress for %s: %w", userID, err)
	}

	progress := &models.UserProgress{TotalSessions: len(sessions), Progress: []models.ProgressPoint{}}
	for i := len(sessions) - 1; i >= 0; i-- {
		s := sessions[i]
		point := models.ProgressPoint{Date: s.StartedAt, Category: s.Category, Questions: s.TotalQuestions}
		if s.AverageScore != nil {
			point.Score = *s.AverageScore
		}
		progress.Progress = append(progress.Progress, point)
	}

	if n := len(progress.Progress); n > 1 {
		window := min(5, n)
		var recent, older float64
		for _, p := range progress.Progress[n-window:] {
			recent += p.Score
		}
		for _, p := range progress.Progress[:window] {
			older += p.Score
		}
		progress.Improvement = round1((recent - older) / float64(window))
	}
	return progress, nil
}

// RecentSessions lists the newest sessions, optionally for one category
func (r *SessionRepository) RecentSessions(ctx context.Context, limit int, category string) ([]models.InterviewSession, error) {
	query := r.db.WithContext(ctx).Omit("transcript").Order("started_at DESC").Limit(limit)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var sessions []models.InterviewSession
	if err := query.Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent sessions: %w", err)
	}
	return sessions, nil
}

// Leaderboard ranks completed sessions by average score
func (r *SessionRepository) Leaderboard(ctx context.Context, category string, limit int) ([]models.LeaderboardEntry, error) {
	query := r.db.WithContext(ctx).
		Where("is_completed = ? AND average_score IS NOT NULL", true).
		Order("average_score DESC, completed_at ASC").
		Limit(limit)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var sessions []models.InterviewSession
	if err := query.Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to build leaderboard: %w", err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(sessions))
	for i, s := range sessions {
		entries = append(entries, models.LeaderboardEntry{
			Rank:        i + 1,
			SessionID:   s.SessionID,
			Category:    s.Category,
			Score:       *s.AverageScore,
			Questions:   s.TotalQuestions,
			CompletedAt: s.CompletedAt,
		})
	}
	return entries, nil
}

// GetUnexportedSessions returns completed sessions not yet exported, oldest first
func (r *SessionRepository) GetUnexportedSessions(ctx context.Context, limit int) ([]models.InterviewSession, error) {
	query := r.db.WithContext(ctx).
		Where("is_completed = ? AND exported = ?", true, false).
		Order("completed_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var sessions []models.InterviewSession
	if err := query.Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to get unexported sessions: %w", err)
	}
	return sessions, nil
}

// ResponsesForSessions returns the answers of the given session rows
func (r *SessionRepository) ResponsesForSessions(ctx context.Context, ids []uint) ([]models.QuestionResponse, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var responses []models.QuestionResponse
	if err := r.db.WithContext(ctx).
		Where("session_id IN ?", ids).
		Order("session_id ASC, question_number ASC").
		Find(&responses).Error; err != nil {
		return nil, fmt.Errorf("failed to get responses: %w", err)
	}
	return responses, nil
}

// MarkExported flags session rows as exported
func (r *SessionRepository) MarkExported(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Model(&models.InterviewSession{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"exported":    true,
			"exported_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark sessions as exported: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
