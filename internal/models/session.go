package models

import (
	"time"

	"gorm.io/gorm"
)

// InterviewSession stores interview session metadata and, once completed,
// the archived transcript
type InterviewSession struct {
	gorm.Model
	SessionID      string     `gorm:"uniqueIndex;not null" json:"session_id"`
	UserID         string     `gorm:"index" json:"user_id,omitempty"` // empty for anonymous sessions
	Category       string     `gorm:"not null;index" json:"category"`
	Difficulty     string     `gorm:"not null;default:medium" json:"difficulty"`
	StartedAt      time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at"`
	TotalQuestions int        `gorm:"not null;default:0" json:"total_questions"`
	AverageScore   *float64   `json:"average_score"`
	Transcript     []Message  `gorm:"serializer:json;type:text" json:"transcript,omitempty"`
	IsCompleted    bool       `gorm:"not null;default:false;index" json:"is_completed"`
	Exported       bool       `gorm:"not null;default:false;index" json:"exported"`
	ExportedAt     *time.Time `json:"exported_at"`
}

// QuestionResponse stores one evaluated answer
type QuestionResponse struct {
	gorm.Model
	SessionID      uint      `gorm:"not null;index" json:"session_id"` // FK to interview_sessions.id
	QuestionID     string    `gorm:"not null" json:"question_id"`
	QuestionText   string    `gorm:"type:text" json:"question_text"`
	QuestionNumber int       `gorm:"not null" json:"question_number"`
	UserAnswer     string    `gorm:"type:text" json:"user_answer"`
	Evaluation     string    `gorm:"type:text" json:"evaluation"`
	Score          int       `gorm:"not null" json:"score"`
	Repeated       bool      `gorm:"not null;default:false" json:"repeated"`
	Category       string    `gorm:"index" json:"category"`
	AnsweredAt     time.Time `gorm:"not null" json:"answered_at"`
}

// TrainingDataPoint represents a single training example in JSONL format for Gemini fine-tuning
type TrainingDataPoint struct {
	Contents []TrainingContent `json:"contents"`
}

type TrainingContent struct {
	Role  string         `json:"role"` // "user" or "model"
	Parts []TrainingPart `json:"parts"`
}

type TrainingPart struct {
	Text string `json:"text"`
}
