package models

import "time"

type StartInterviewResponse struct {
	SessionID      string `json:"session_id"`
	Question       string `json:"question"`
	QuestionID     string `json:"question_id"`
	QuestionNumber int    `json:"question_number"`
	Category       string `json:"category"`
	Difficulty     string `json:"difficulty"`
}

type SubmitAnswerResponse struct {
	Evaluation     string `json:"evaluation"`
	Score          int    `json:"score"`
	QuestionNumber int    `json:"question_number"`
	Continue       bool   `json:"continue"`
	RepeatCount    int    `json:"repeat_count"`
	NextQuestion   string `json:"next_question,omitempty"`
	NextQuestionID string `json:"next_question_id,omitempty"`
}

type TranscriptResponse struct {
	SessionID      string    `json:"session_id"`
	Category       string    `json:"category"`
	Status         string    `json:"status"`
	Messages       []Message `json:"messages"`
	TotalQuestions int       `json:"total_questions"`
	FinalScore     int       `json:"final_score"`
	AverageScore   float64   `json:"average_score"`
}

// platform-wide analytics
type AnalyticsStats struct {
	TotalSessions     int64            `json:"total_sessions"`
	CompletedSessions int64            `json:"completed_sessions"`
	CompletionRate    float64          `json:"completion_rate"`
	AverageScore      float64          `json:"average_score"`
	ByCategory        map[string]int64 `json:"by_category"`
}

type WeakArea struct {
	Count     int      `json:"count"`
	AvgScore  float64  `json:"avg_score"`
	Questions []string `json:"questions"`
}

type ProgressPoint struct {
	Date      time.Time `json:"date"`
	Category  string    `json:"category"`
	Score     float64   `json:"score"`
	Questions int       `json:"questions"`
}

type UserProgress struct {
	TotalSessions int             `json:"total_sessions"`
	Progress      []ProgressPoint `json:"progress"`
	Improvement   float64         `json:"improvement"`
}

// uniform error responses
type ErrorResponse struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Details []ValidationErrorDetail `json:"details,omitempty"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// single field validation error
type ValidationErrorDetail struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// generic envelope used by the analytics endpoints
type Resp struct {
	OK   bool        `json:"ok"`
	Info interface{} `json:"info"`
}

type LeaderboardEntry struct {
	Rank        int        `json:"rank"`
	SessionID   string     `json:"session_id"`
	Category    string     `json:"category"`
	Score       float64    `json:"score"`
	Questions   int        `json:"questions"`
	CompletedAt *time.Time `json:"date"`
}
