package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mockmate/mockmate-api/internal/domain"
	"github.com/mockmate/mockmate-api/internal/platform/logger"
	"github.com/mockmate/mockmate-api/internal/store"
)

// RecordAttemptParams carries the caller-supplied aggregates of one completed
// practice session. The optional signals stay nil when the client did not
// send them; zero values for the required numeric fields are legitimate data,
// presence is enforced at the API boundary.
type RecordAttemptParams struct {
	Topic                 string
	Score                 float64
	TotalQuestions        int
	CorrectAnswers        int
	DurationMinutes       *float64
	ConfidenceScore       *float64
	FacialExpressionScore *float64
}

// AttemptService provides operations on the append-only attempt ledger.
type AttemptService interface {
	// Record validates and appends one completed attempt for the user.
	// Returns ErrInvalidAttempt (wrapping the field-specific domain error)
	// when validation fails; nothing is stored in that case.
	Record(ctx context.Context, userID uuid.UUID, params RecordAttemptParams) (*domain.InterviewAttempt, error)

	// List returns all attempts recorded for the user, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.InterviewAttempt, error)
}

// Verify interface compliance at compile time
var _ AttemptService = (*attemptServiceImpl)(nil)

// attemptServiceImpl implements the AttemptService interface.
type attemptServiceImpl struct {
	attemptStore store.AttemptStore
	logger       *slog.Logger
}

// NewAttemptService creates a new AttemptService backed by the given store.
func NewAttemptService(attemptStore store.AttemptStore, log *slog.Logger) AttemptService {
	if attemptStore == nil {
		panic("attemptStore cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &attemptServiceImpl{
		attemptStore: attemptStore,
		logger:       log.With(slog.String("component", "attempt_service")),
	}
}

// Record implements AttemptService.Record.
func (s *attemptServiceImpl) Record(
	ctx context.Context,
	userID uuid.UUID,
	params RecordAttemptParams,
) (*domain.InterviewAttempt, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	attempt, err := domain.NewInterviewAttempt(
		userID,
		params.Topic,
		params.Score,
		params.TotalQuestions,
		params.CorrectAnswers,
	)
	if err != nil {
		log.Warn("attempt rejected by validation",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("%w: %w", ErrInvalidAttempt, err)
	}

	attempt.DurationMinutes = params.DurationMinutes
	attempt.ConfidenceScore = params.ConfidenceScore
	attempt.FacialExpressionScore = params.FacialExpressionScore

	if err := s.attemptStore.Create(ctx, attempt); err != nil {
		log.Error("failed to record attempt",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("topic", params.Topic))
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	return attempt, nil
}

// List implements AttemptService.List.
func (s *attemptServiceImpl) List(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.InterviewAttempt, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	attempts, err := s.attemptStore.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list attempts",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	return attempts, nil
}
