package interview

import (
	"context"
	"fmt"
	"strings"

	"github.com/Maazpendari01/InterviewQi/internal/models"
	"github.com/Maazpendari01/InterviewQi/internal/prompts"
)

const groundingK = 2

// RepeatPenaltyEvaluation is the canned evaluation for a repeated answer
const RepeatPenaltyEvaluation = "Score: 30/100\n\n" +
	"Weaknesses:\n- This answer repeats an earlier answer word for word.\n\n" +
	"Improvement:\nAnswer the current question directly and in your own words."

// EvaluationPromptData is rendered into the evaluate prompt
type EvaluationPromptData struct {
	Category      string
	Question      string
	ExpertContext string
	PastAnswers   []string
	Answer        string
}

type evaluationUpdate struct {
	evaluation    string
	score         int
	repeatCount   int
	repeated      bool
	scoreFallback bool
	message       models.Message
}

func (u evaluationUpdate) apply(s *State) {
	s.Evaluation = u.evaluation
	s.Score = u.score
	s.RepeatCount = u.repeatCount
	s.LastTurnRepeated = u.repeated
	s.Scores = append(s.Scores, u.score)
	s.Messages = append(s.Messages, u.message)
}

// evaluate scores state.UserAnswer against the current question. A repeated
// answer is penalised without calling the collaborators.
func (c *Controller) evaluate(ctx context.Context, s *State) (evaluationUpdate, error) {
	past := s.pastAnswers()
	if IsRepeat(Normalize(s.UserAnswer), past) {
		return evaluationUpdate{
			evaluation:  RepeatPenaltyEvaluation,
			score:       RepeatPenaltyScore,
			repeatCount: s.RepeatCount + 1,
			repeated:    true,
			message:     models.Message{Role: models.RoleEvaluator, Content: RepeatPenaltyEvaluation},
		}, nil
	}

	exemplars, err := c.retriever.Search(ctx, s.CurrentQuestion, s.Category, groundingK)
	if err != nil {
		return evaluationUpdate{}, fmt.Errorf("%w: %w", ErrRetrievalUnavailable, err)
	}
	contents := make([]string, 0, len(exemplars))
	for _, ex := range exemplars {
		contents = append(contents, ex.Content)
	}

	prompt, err := c.prompts.BuildPrompt(prompts.ModeEvaluate, s.Category, EvaluationPromptData{
		Category:      s.Category,
		Question:      s.CurrentQuestion,
		ExpertContext: strings.Join(contents, "\n\n"),
		PastAnswers:   past,
		Answer:        s.UserAnswer,
	})
	if err != nil {
		return evaluationUpdate{}, fmt.Errorf("build evaluation prompt: %w", err)
	}

	evaluation, err := c.complete(ctx, prompt)
	if err != nil {
		return evaluationUpdate{}, err
	}

	score, ok := ExtractScore(evaluation)
	return evaluationUpdate{
		evaluation:    evaluation,
		score:         score,
		repeatCount:   s.RepeatCount,
		scoreFallback: !ok,
		message:       models.Message{Role: models.RoleEvaluator, Content: evaluation},
	}, nil
}
