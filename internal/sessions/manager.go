package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Maazpendari01/InterviewQi/internal/interview"
	"github.com/Maazpendari01/InterviewQi/internal/models"
)

// Archive persists sessions and their answers. repositories.SessionRepository implements it.
type Archive interface {
	CreateSession(ctx context.Context, session *models.InterviewSession) error
	SaveResponse(ctx context.Context, sessionID string, resp *models.QuestionResponse) error
	CompleteSession(ctx context.Context, sessionID string, transcript []models.Message, totalQuestions int, averageScore *float64, completedAt time.Time) error
	GetSession(ctx context.Context, sessionID string) (*models.InterviewSession, error)
}

// Manager ties live sessions to the interview controller. Turns on one session
// run one at a time; different sessions proceed in parallel.
type Manager struct {
	controller *interview.Controller
	store      Store
	archive    Archive
	locks      *keyedMutex
	logger     *zap.Logger
	newID      func() string
	now        func() time.Time
}

// NewManager creates a manager. archive may be nil, in which case nothing is persisted.
func NewManager(controller *interview.Controller, store Store, archive Archive, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		controller: controller,
		store:      store,
		archive:    archive,
		locks:      newKeyedMutex(),
		logger:     logger,
		newID:      uuid.NewString,
		now:        time.Now,
	}
}

// Start opens a new interview for userID (empty for anonymous users)
func (m *Manager) Start(ctx context.Context, category, difficulty, userID string) (*models.StartInterviewResponse, error) {
	question, questionID, state, err := m.controller.Start(ctx, category)
	if err != nil {
		return nil, err
	}

	state.SessionID = m.newID()
	state.UserID = userID
	if difficulty != "" {
		state.Difficulty = difficulty
	}

	if err := m.store.Save(ctx, state); err != nil {
		return nil, err
	}

	if m.archive != nil {
		if err := m.archive.CreateSession(ctx, &models.InterviewSession{
			SessionID:  state.SessionID,
			UserID:     userID,
			Category:   state.Category,
			Difficulty: state.Difficulty,
			StartedAt:  state.StartedAt,
		}); err != nil {
			m.logger.Error("Failed to archive session start", zap.String("session_id", state.SessionID), zap.Error(err))
		}
	}

	return &models.StartInterviewResponse{
		SessionID:      state.SessionID,
		Question:       question,
		QuestionID:     questionID,
		QuestionNumber: state.QuestionCount,
		Category:       state.Category,
		Difficulty:     state.Difficulty,
	}, nil
}

// Submit runs one turn for sessionID
func (m *Manager) Submit(ctx context.Context, sessionID, answer, userID string) (*models.SubmitAnswerResponse, error) {
	unlock := m.locks.Lock(sessionID)
	defer unlock()

	state, err := m.load(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	question, questionID := state.CurrentQuestion, state.CurrentQuestionID
	result, err := m.controller.SubmitAnswer(ctx, state, answer)
	if err != nil {
		return nil, err
	}

	if err := m.store.Save(ctx, state); err != nil {
		return nil, err
	}

	m.archiveTurn(ctx, state, question, questionID, answer, result)

	return &models.SubmitAnswerResponse{
		Evaluation:     result.Evaluation,
		Score:          result.Score,
		QuestionNumber: result.QuestionNumber,
		Continue:       result.Continue,
		RepeatCount:    result.RepeatCount,
		NextQuestion:   result.NextQuestion,
		NextQuestionID: result.NextQuestionID,
	}, nil
}

// Transcript returns the live transcript, or the archived one once the live
// session has expired
func (m *Manager) Transcript(ctx context.Context, sessionID, userID string) (*models.TranscriptResponse, error) {
	state, err := m.load(ctx, sessionID, userID)
	if err == nil {
		avg, _ := state.AverageScore()
		return &models.TranscriptResponse{
			SessionID:      state.SessionID,
			Category:       state.Category,
			Status:         string(state.Status),
			Messages:       state.Messages,
			TotalQuestions: state.QuestionCount,
			FinalScore:     state.Score,
			AverageScore:   avg,
		}, nil
	}
	if !errors.Is(err, interview.ErrSessionNotFound) || m.archive == nil {
		return nil, err
	}

	archived, aerr := m.archive.GetSession(ctx, sessionID)
	if aerr != nil || archived == nil || (archived.UserID != "" && archived.UserID != userID) {
		return nil, interview.ErrSessionNotFound
	}
	resp := &models.TranscriptResponse{
		SessionID:      archived.SessionID,
		Category:       archived.Category,
		Status:         string(interview.StatusAwaitingAnswer),
		Messages:       archived.Transcript,
		TotalQuestions: archived.TotalQuestions,
	}
	if archived.IsCompleted {
		resp.Status = string(interview.StatusTerminated)
	}
	if archived.AverageScore != nil {
		resp.AverageScore = *archived.AverageScore
	}
	return resp, nil
}

func (m *Manager) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}

// load hides sessions owned by another user
func (m *Manager) load(ctx context.Context, sessionID, userID string) (*interview.State, error) {
	state, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.UserID != "" && state.UserID != userID {
		return nil, interview.ErrSessionNotFound
	}
	return state, nil
}

// archiveTurn records the answered question and closes the session when it
// has ended. Failures are logged; the live session stays authoritative.
func (m *Manager) archiveTurn(ctx context.Context, state *interview.State, question, questionID, answer string, result *interview.TurnResult) {
	if m.archive == nil {
		return
	}
	logger := m.logger.With(zap.String("session_id", state.SessionID))

	if err := m.archive.SaveResponse(ctx, state.SessionID, &models.QuestionResponse{
		QuestionID:     questionID,
		QuestionText:   question,
		QuestionNumber: result.QuestionNumber,
		UserAnswer:     answer,
		Evaluation:     result.Evaluation,
		Score:          result.Score,
		Repeated:       result.Repeated,
		Category:       state.Category,
		AnsweredAt:     m.now().UTC(),
	}); err != nil {
		logger.Error("Failed to archive answer", zap.Error(err))
	}

	if !state.Terminated() {
		return
	}
	var avg *float64
	if a, ok := state.AverageScore(); ok {
		avg = &a
	}
	if err := m.archive.CompleteSession(ctx, state.SessionID, state.Messages, state.QuestionCount, avg, m.now().UTC()); err != nil {
		logger.Error("Failed to archive completed session", zap.Error(err))
	}
}
