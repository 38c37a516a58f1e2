package interview

import (
	"context"
	"fmt"
	"strings"

	"github.com/Maazpendari01/InterviewQi/internal/models"
	"github.com/Maazpendari01/InterviewQi/internal/prompts"
)

// Band selects the style of the next question
type Band string

const (
	BandRepetition   Band = "repetition"
	BandFoundational Band = "foundational"
	BandClarifying   Band = "clarifying"
	BandOptimization Band = "optimization"
	BandSystemDesign Band = "system_design"
)

const followUpSearchK = 5

// RepetitionRecoveryQuestion follows a verbatim repeated answer
const RepetitionRecoveryQuestion = "Please explain your previous answer in your own words."

var fallbackQuestions = map[Band]string{
	BandFoundational: "Can you walk through the core concept behind the previous question step by step?",
	BandClarifying:   "Which part of your previous answer are you least sure about, and how would you make it precise?",
	BandOptimization: "How would you improve the time or space complexity of your previous solution?",
	BandSystemDesign: "How would you turn your previous solution into a service that handles millions of users?",
}

// BandForScore maps a score to a follow-up band
func BandForScore(score int) Band {
	switch {
	case score < 60:
		return BandFoundational
	case score < 80:
		return BandClarifying
	case score < 90:
		return BandOptimization
	default:
		return BandSystemDesign
	}
}

// search target for a band: which category to look in and which difficulty to prefer
func (b Band) target(category string) (string, string) {
	switch b {
	case BandFoundational:
		return category, "easy"
	case BandClarifying:
		return category, "medium"
	case BandOptimization:
		return category, "hard"
	case BandSystemDesign:
		return models.CategorySystemDesign, "hard"
	}
	return category, ""
}

// FollowUpPromptData is rendered into the followup prompt
type FollowUpPromptData struct {
	Category string
	Question string
	Answer   string
	Score    int
	Band     Band
}

type followUpUpdate struct {
	question   string
	questionID string
	band       Band
	generated  bool
}

func (u followUpUpdate) apply(s *State) {
	s.askQuestion(u.question, u.questionID)
}

// followUp produces exactly one next question. A repeated answer gets the
// fixed recovery question; otherwise the score band picks an unseen exemplar
// or, failing that, a generated question.
func (c *Controller) followUp(ctx context.Context, s *State) (followUpUpdate, error) {
	if s.LastTurnRepeated {
		return followUpUpdate{
			question:   RepetitionRecoveryQuestion,
			questionID: s.CurrentQuestionID + "_f",
			band:       BandRepetition,
		}, nil
	}

	band := BandForScore(s.Score)
	category, difficulty := band.target(s.Category)
	exemplars, err := c.retriever.Search(ctx, s.CurrentQuestion, category, followUpSearchK)
	if err != nil {
		return followUpUpdate{}, fmt.Errorf("%w: %w", ErrRetrievalUnavailable, err)
	}
	if ex, ok := pickUnseen(s, exemplars, difficulty); ok {
		return followUpUpdate{question: ex.Metadata.Question, questionID: ex.Metadata.ID, band: band}, nil
	}

	prompt, err := c.prompts.BuildPrompt(prompts.ModeFollowUp, string(band), FollowUpPromptData{
		Category: s.Category,
		Question: s.CurrentQuestion,
		Answer:   s.UserAnswer,
		Score:    s.Score,
		Band:     band,
	})
	if err != nil {
		return followUpUpdate{}, fmt.Errorf("build follow-up prompt: %w", err)
	}

	text, err := c.complete(ctx, prompt)
	if err != nil {
		return followUpUpdate{}, err
	}

	question := firstNewQuestion(s.CurrentQuestion, CleanQuestion(text), fallbackQuestion(band), GenericQuestion)
	return followUpUpdate{
		question:   question,
		questionID: s.CurrentQuestionID + "_f",
		band:       band,
		generated:  true,
	}, nil
}

// pickUnseen prefers the first unseen exemplar with the wanted difficulty,
// then any unseen exemplar
func pickUnseen(s *State, exemplars []models.Exemplar, difficulty string) (models.Exemplar, bool) {
	var first *models.Exemplar
	for i := range exemplars {
		ex := &exemplars[i]
		if ex.Metadata.Question == "" || ex.Metadata.Question == s.CurrentQuestion || s.seen(ex.Metadata.ID) {
			continue
		}
		if difficulty == "" || ex.Metadata.Difficulty == difficulty {
			return *ex, true
		}
		if first == nil {
			first = ex
		}
	}
	if first != nil {
		return *first, true
	}
	return models.Exemplar{}, false
}

// CleanQuestion returns the first non-empty line of generated text with
// surrounding quotes removed
func CleanQuestion(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.Trim(line, "\"'`“”‘’")
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}

// firstNewQuestion returns the first non-empty candidate that differs from
// current. The last two candidates are distinct canned questions, so one of
// them always qualifies.
func firstNewQuestion(current string, candidates ...string) string {
	for _, q := range candidates {
		if q != "" && q != current {
			return q
		}
	}
	return ""
}

func fallbackQuestion(b Band) string {
	if q, ok := fallbackQuestions[b]; ok {
		return q
	}
	return fallbackQuestions[BandClarifying]
}
