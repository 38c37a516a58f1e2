package interview

import (
	"time"

	"github.com/Maazpendari01/InterviewQi/internal/models"
)

type Status string

const (
	StatusAwaitingAnswer Status = "awaiting_answer"
	StatusTerminated     Status = "terminated"
)

// State is the aggregate for one interview. It is owned by a single session
// and must not be shared between concurrent turns.
type State struct {
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id,omitempty"`
	Category   string    `json:"category"`
	Difficulty string    `json:"difficulty"`
	StartedAt  time.Time `json:"started_at"`

	Messages          []models.Message `json:"messages"`
	QuestionCount     int              `json:"question_count"`
	CurrentQuestion   string           `json:"current_question"`
	CurrentQuestionID string           `json:"current_question_id"`
	UserAnswer        string           `json:"user_answer"`
	Evaluation        string           `json:"evaluation"`
	Score             int              `json:"score"`
	RepeatCount       int              `json:"repeat_count"`

	Status           Status   `json:"status"`
	LastTurnRepeated bool     `json:"last_turn_repeated"`
	SeenQuestionIDs  []string `json:"seen_question_ids"`
	Scores           []int    `json:"scores"`
}

// Clone returns a deep copy
func (s *State) Clone() *State {
	cp := *s
	cp.Messages = append([]models.Message(nil), s.Messages...)
	cp.SeenQuestionIDs = append([]string(nil), s.SeenQuestionIDs...)
	cp.Scores = append([]int(nil), s.Scores...)
	return &cp
}

func (s *State) Terminated() bool {
	return s.Status == StatusTerminated
}

// AverageScore over every evaluated answer, repetition penalties included.
// ok is false before the first evaluation.
func (s *State) AverageScore() (avg float64, ok bool) {
	if len(s.Scores) == 0 {
		return 0, false
	}
	total := 0
	for _, sc := range s.Scores {
		total += sc
	}
	return float64(total) / float64(len(s.Scores)), true
}

// pastAnswers returns normalized candidate answers, excluding the most recent one
func (s *State) pastAnswers() []string {
	var answers []string
	for _, m := range s.Messages {
		if m.Role == models.RoleCandidate {
			answers = append(answers, Normalize(m.Content))
		}
	}
	if len(answers) == 0 {
		return nil
	}
	return answers[:len(answers)-1]
}

func (s *State) seen(id string) bool {
	if id == s.CurrentQuestionID {
		return true
	}
	for _, seenID := range s.SeenQuestionIDs {
		if seenID == id {
			return true
		}
	}
	return false
}

func (s *State) askQuestion(question, id string) {
	s.CurrentQuestion = question
	s.CurrentQuestionID = id
	s.QuestionCount++
	s.SeenQuestionIDs = append(s.SeenQuestionIDs, id)
	s.Messages = append(s.Messages, models.Message{Role: models.RoleInterviewer, Content: question})
}
