package interview

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Maazpendari01/InterviewQi/internal/metrics"
	"github.com/Maazpendari01/InterviewQi/internal/models"
	"github.com/Maazpendari01/InterviewQi/internal/utils"
)

// GenericQuestion is asked when the bank has nothing for a category
const GenericQuestion = "Describe your problem-solving approach."

// TurnResult is returned for every submitted answer
type TurnResult struct {
	Evaluation     string
	Score          int
	QuestionNumber int // number of the question that was answered
	RepeatCount    int
	Repeated       bool
	ScoreFallback  bool
	Continue       bool
	NextQuestion   string
	NextQuestionID string
	FollowUpBand   Band
}

// Controller runs the interview state machine. It holds no per-session
// data and is safe for concurrent use across sessions.
type Controller struct {
	retriever Retriever
	completer Completer
	prompts   PromptBuilder
	logger    *zap.Logger
	now       func() time.Time
}

func NewController(retriever Retriever, completer Completer, prompts PromptBuilder, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		retriever: retriever,
		completer: completer,
		prompts:   prompts,
		logger:    logger,
		now:       time.Now,
	}
}

// Start creates the state for a new interview and asks the first question
func (c *Controller) Start(ctx context.Context, category string) (string, string, *State, error) {
	results, err := c.retriever.Search(ctx, category+" interview question", category, 1)
	if err != nil {
		metrics.CollaboratorFailure("retrieval")
		return "", "", nil, fmt.Errorf("%w: %w", ErrRetrievalUnavailable, err)
	}

	question, questionID := GenericQuestion, category+"_q0"
	if len(results) > 0 && results[0].Metadata.Question != "" {
		question, questionID = results[0].Metadata.Question, results[0].Metadata.ID
	}

	state := &State{
		Category:   category,
		Difficulty: models.DefaultDifficulty,
		StartedAt:  c.now().UTC(),
		Status:     StatusAwaitingAnswer,
	}
	state.askQuestion(question, questionID)

	metrics.SessionStarted(category)
	c.logger.Info("Interview started",
		zap.String("category", category),
		zap.String("question_id", questionID))

	return question, questionID, state, nil
}

// SubmitAnswer runs one turn. state is only modified when the whole turn
// succeeds; on error it is left exactly as it was.
func (c *Controller) SubmitAnswer(ctx context.Context, state *State, answer string) (*TurnResult, error) {
	if state == nil {
		return nil, ErrSessionNotFound
	}
	if state.Terminated() {
		return nil, ErrInvalidTransition
	}

	work := state.Clone()
	work.Messages = append(work.Messages, models.Message{Role: models.RoleCandidate, Content: answer})
	work.UserAnswer = answer

	eval, err := c.evaluate(ctx, work)
	if err != nil {
		c.turnFailed(work, err)
		return nil, err
	}
	eval.apply(work)

	logger := c.logger.With(
		zap.String("session_id", work.SessionID),
		zap.String("category", work.Category),
		zap.String("question_id", work.CurrentQuestionID))

	if eval.repeated {
		metrics.Repetition(work.Category)
		logger.Info("Verbatim repeated answer", zap.Int("repeat_count", work.RepeatCount))
	}
	if eval.scoreFallback {
		metrics.ScoreFallback()
		logger.Warn("Could not parse score from evaluation, using default",
			zap.Int("score", DefaultScore),
			zap.String("evaluation", utils.TruncateForLog(eval.evaluation, 200)))
	}
	metrics.ObserveScore(work.Category, work.Score)

	result := &TurnResult{
		Evaluation:     work.Evaluation,
		Score:          work.Score,
		QuestionNumber: work.QuestionCount,
		RepeatCount:    work.RepeatCount,
		Repeated:       eval.repeated,
		ScoreFallback:  eval.scoreFallback,
	}

	switch Decide(work.QuestionCount, work.RepeatCount) {
	case Continue:
		next, err := c.followUp(ctx, work)
		if err != nil {
			c.turnFailed(work, err)
			return nil, err
		}
		next.apply(work)
		result.Continue = true
		result.NextQuestion = next.question
		result.NextQuestionID = next.questionID
		result.FollowUpBand = next.band
		metrics.TurnCompleted(work.Category, metrics.OutcomeContinue)
		logger.Info("Turn evaluated",
			zap.Int("score", work.Score),
			zap.Int("repeat_count", work.RepeatCount),
			zap.String("band", string(next.band)),
			zap.Bool("generated", next.generated),
			zap.String("next_question_id", next.questionID))
	case End:
		work.Status = StatusTerminated
		metrics.TurnCompleted(work.Category, metrics.OutcomeEnd)
		logger.Info("Interview ended",
			zap.Int("score", work.Score),
			zap.Int("repeat_count", work.RepeatCount),
			zap.Int("question_count", work.QuestionCount))
	}

	*state = *work
	return result, nil
}

func (c *Controller) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.completer.GenerateContent(ctx, prompt, uuid.NewString())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCompletionUnavailable, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: empty response", ErrCompletionUnavailable)
	}
	return resp.Content, nil
}

func (c *Controller) turnFailed(s *State, err error) {
	switch {
	case errors.Is(err, ErrRetrievalUnavailable):
		metrics.CollaboratorFailure("retrieval")
	case errors.Is(err, ErrCompletionUnavailable):
		metrics.CollaboratorFailure("completion")
	}
	metrics.TurnCompleted(s.Category, metrics.OutcomeError)
	c.logger.Error("Turn failed",
		zap.String("session_id", s.SessionID),
		zap.String("question_id", s.CurrentQuestionID),
		zap.Error(err))
}
