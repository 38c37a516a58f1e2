package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Maazpendari01/InterviewQi/internal/interview"
	"github.com/Maazpendari01/InterviewQi/internal/llm"
	"github.com/Maazpendari01/InterviewQi/internal/middleware"
	"github.com/Maazpendari01/InterviewQi/internal/models"
	"github.com/Maazpendari01/InterviewQi/internal/utils"
)

// InterviewService is implemented by sessions.Manager
type InterviewService interface {
	Start(ctx context.Context, category, difficulty, userID string) (*models.StartInterviewResponse, error)
	Submit(ctx context.Context, sessionID, answer, userID string) (*models.SubmitAnswerResponse, error)
	Transcript(ctx context.Context, sessionID, userID string) (*models.TranscriptResponse, error)
}

type InterviewHandler struct {
	service InterviewService
	logger  *zap.Logger
}

func NewInterviewHandler(service InterviewService, logger *zap.Logger) *InterviewHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InterviewHandler{
		service: service,
		logger:  logger,
	}
}

func (h *InterviewHandler) StartHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.StartInterviewRequest](r)
	userID := middleware.UserIDFromContext(r.Context())

	resp, err := h.service.Start(r.Context(), req.Category, req.Difficulty, userID)
	if err != nil {
		h.logger.Error("Failed to start interview",
			zap.String("category", req.Category),
			zap.Error(err))
		h.writeError(w, err)
		return
	}

	h.logger.Info("Interview started",
		zap.String("session_id", resp.SessionID),
		zap.String("category", resp.Category),
		zap.String("question_id", resp.QuestionID))

	utils.JSON(w, http.StatusOK, resp)
}

func (h *InterviewHandler) AnswerHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.SubmitAnswerRequest](r)
	userID := middleware.UserIDFromContext(r.Context())

	resp, err := h.service.Submit(r.Context(), req.SessionID, req.Answer, userID)
	if err != nil {
		h.logger.Error("Failed to process answer",
			zap.String("session_id", req.SessionID),
			zap.Error(err))
		h.writeError(w, err)
		return
	}

	h.logger.Info("Answer evaluated",
		zap.String("session_id", req.SessionID),
		zap.Int("score", resp.Score),
		zap.Int("repeat_count", resp.RepeatCount),
		zap.Bool("continue", resp.Continue))

	utils.JSON(w, http.StatusOK, resp)
}

func (h *InterviewHandler) TranscriptHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(chi.URLParam(r, "session_id"))
	if sessionID == "" {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "missing_session_id",
			Message: "session_id is required",
		})
		return
	}

	resp, err := h.service.Transcript(r.Context(), sessionID, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// writeError maps interview errors onto HTTP responses
func (h *InterviewHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, interview.ErrSessionNotFound):
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "session_not_found",
			Message: "Interview session not found or expired",
		})
	case errors.Is(err, interview.ErrInvalidTransition):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "interview_ended",
			Message: "This interview has already ended",
		})
	case errors.Is(err, interview.ErrRetrievalUnavailable), errors.Is(err, interview.ErrCompletionUnavailable):
		if llm.ErrorCode(err) == llm.ErrCodeRateLimit {
			utils.JSON(w, http.StatusTooManyRequests, models.ErrorResponse{
				Code:    llm.ErrCodeRateLimit,
				Message: "AI provider rate limit reached, please retry shortly",
			})
			return
		}
		utils.JSON(w, http.StatusServiceUnavailable, models.ErrorResponse{
			Code:    "ai_unavailable",
			Message: "The interviewer is temporarily unavailable, please retry",
		})
	default:
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to process interview request",
		})
	}
}
