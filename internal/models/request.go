package models

import (
	"strings"
	"unicode/utf8"
)

type StartInterviewRequest struct {
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
}

// implements the Validator interface
func (r *StartInterviewRequest) Validate() error {
	r.Category = strings.ToLower(strings.TrimSpace(r.Category))
	r.Difficulty = strings.ToLower(strings.TrimSpace(r.Difficulty))

	if r.Category == "" {
		r.Category = DefaultCategory
	}
	if !SupportedCategories[r.Category] {
		return &ErrorResponse{
			Code:    "unsupported_category",
			Message: "Category not supported. Supported categories: " + strings.Join(SupportedCategoriesList(), ", "),
		}
	}

	if r.Difficulty == "" {
		r.Difficulty = DefaultDifficulty
	}
	if !ValidDifficulties[r.Difficulty] {
		return &ErrorResponse{
			Code:    "invalid_difficulty",
			Message: "Difficulty must be one of: " + strings.Join(ValidDifficultiesList(), ", "),
		}
	}

	return nil
}

type SubmitAnswerRequest struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
}

func (r *SubmitAnswerRequest) Validate() error {
	r.SessionID = strings.TrimSpace(r.SessionID)
	if r.SessionID == "" {
		return &ErrorResponse{Code: "missing_session_id", Message: "session_id is required"}
	}

	trimmed := strings.TrimSpace(r.Answer)
	if trimmed == "" {
		return &ErrorResponse{Code: "missing_answer", Message: "answer is required"}
	}
	if utf8.RuneCountInString(trimmed) < MinAnswerLength {
		return &ErrorResponse{
			Code:    "answer_too_short",
			Message: "answer must be at least 10 characters",
			Details: []ValidationErrorDetail{{Field: "answer", Reason: "min_length"}},
		}
	}

	return nil
}
