package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mockmate/mockmate-api/internal/domain"
	"github.com/mockmate/mockmate-api/internal/platform/logger"
	"github.com/mockmate/mockmate-api/internal/store"
)

// PostgresAttemptStore implements the store.AttemptStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAttemptStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAttemptStore creates a new PostgreSQL implementation of the
// AttemptStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresAttemptStore(db store.DBTX, log *slog.Logger) *PostgresAttemptStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresAttemptStore{
		db:     db,
		logger: log.With(slog.String("component", "attempt_store")),
	}
}

// Ensure PostgresAttemptStore implements store.AttemptStore interface
var _ store.AttemptStore = (*PostgresAttemptStore)(nil)

// Create implements store.AttemptStore.Create
// It appends a completed attempt to the ledger, handling domain validation.
// Returns store.ErrInvalidEntity if the user ID doesn't exist (foreign key
// violation).
func (s *PostgresAttemptStore) Create(ctx context.Context, attempt *domain.InterviewAttempt) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := attempt.Validate(); err != nil {
		log.Warn("attempt validation failed during create",
			slog.String("error", err.Error()),
			slog.String("attempt_id", attempt.ID.String()))
		return err
	}

	query := `
		INSERT INTO interview_attempts (
			id, user_id, topic, score, total_questions, correct_answers,
			duration_minutes, confidence_score, facial_expression_score, attempt_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		attempt.ID,
		attempt.UserID,
		attempt.Topic,
		attempt.Score,
		attempt.TotalQuestions,
		attempt.CorrectAnswers,
		attempt.DurationMinutes,
		attempt.ConfidenceScore,
		attempt.FacialExpressionScore,
		attempt.AttemptDate,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during attempt creation",
				slog.String("error", err.Error()),
				slog.String("attempt_id", attempt.ID.String()),
				slog.String("user_id", attempt.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, attempt.UserID)
		}

		log.Error("failed to create attempt",
			slog.String("error", err.Error()),
			slog.String("attempt_id", attempt.ID.String()),
			slog.String("user_id", attempt.UserID.String()))
		return err
	}

	log.Info("attempt recorded",
		slog.String("attempt_id", attempt.ID.String()),
		slog.String("user_id", attempt.UserID.String()),
		slog.String("topic", attempt.Topic))
	return nil
}

// ListByUser implements store.AttemptStore.ListByUser
// Attempts are returned newest first. A user with no attempts yields an
// empty slice.
func (s *PostgresAttemptStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.InterviewAttempt, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, topic, score, total_questions, correct_answers,
		       duration_minutes, confidence_score, facial_expression_score, attempt_date
		FROM interview_attempts
		WHERE user_id = $1
		ORDER BY attempt_date DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list attempts",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	attempts := make([]*domain.InterviewAttempt, 0)
	for rows.Next() {
		var attempt domain.InterviewAttempt
		if err := rows.Scan(
			&attempt.ID,
			&attempt.UserID,
			&attempt.Topic,
			&attempt.Score,
			&attempt.TotalQuestions,
			&attempt.CorrectAnswers,
			&attempt.DurationMinutes,
			&attempt.ConfidenceScore,
			&attempt.FacialExpressionScore,
			&attempt.AttemptDate,
		); err != nil {
			log.Error("failed to scan attempt row",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, err
		}
		attempts = append(attempts, &attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return attempts, nil
}

// WithTx implements store.AttemptStore.WithTx
func (s *PostgresAttemptStore) WithTx(tx store.DBTX) store.AttemptStore {
	return &PostgresAttemptStore{
		db:     tx,
		logger: s.logger,
	}
}
