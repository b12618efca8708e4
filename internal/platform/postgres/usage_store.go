package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mockmate/mockmate-api/internal/platform/logger"
	"github.com/mockmate/mockmate-api/internal/store"
)

// PostgresUsageStore implements the store.UsageStore interface
// using a PostgreSQL database as the storage backend.
//
// Usage rows carry no payload beyond existence; the table's composite
// primary key (user_id, question_id) is what makes InsertUsage idempotent.
type PostgresUsageStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUsageStore creates a new PostgreSQL implementation of the
// UsageStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUsageStore(db store.DBTX, log *slog.Logger) *PostgresUsageStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresUsageStore{
		db:     db,
		logger: log.With(slog.String("component", "usage_store")),
	}
}

// Ensure PostgresUsageStore implements store.UsageStore interface
var _ store.UsageStore = (*PostgresUsageStore)(nil)

// CountDistinctUsed implements store.UsageStore.CountDistinctUsed
// The count is scoped to questions belonging to the given topic, so a user's
// progress in one topic never reflects draws made in another.
func (s *PostgresUsageStore) CountDistinctUsed(
	ctx context.Context,
	userID uuid.UUID,
	topic string,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(DISTINCT qu.question_id)
		FROM question_usage qu
		JOIN questions q ON q.id = qu.question_id
		WHERE qu.user_id = $1 AND q.topic = $2
	`
	var count int
	if err := s.db.QueryRowContext(ctx, query, userID, topic).Scan(&count); err != nil {
		log.Error("failed to count used questions",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("topic", topic))
		return 0, err
	}

	return count, nil
}

// ListUsedIDs implements store.UsageStore.ListUsedIDs
func (s *PostgresUsageStore) ListUsedIDs(
	ctx context.Context,
	userID uuid.UUID,
	topic string,
) ([]uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT qu.question_id
		FROM question_usage qu
		JOIN questions q ON q.id = qu.question_id
		WHERE qu.user_id = $1 AND q.topic = $2
	`
	rows, err := s.db.QueryContext(ctx, query, userID, topic)
	if err != nil {
		log.Error("failed to list used question IDs",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("topic", topic))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			log.Error("failed to scan usage row",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// InsertUsage implements store.UsageStore.InsertUsage
// ON CONFLICT DO NOTHING makes the insert idempotent for repeated
// (user, question) pairs.
func (s *PostgresUsageStore) InsertUsage(ctx context.Context, userID, questionID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO question_usage (user_id, question_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, question_id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query, userID, questionID)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during usage insert",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()),
				slog.String("question_id", questionID.String()))
			return fmt.Errorf("%w: unknown user or question", store.ErrInvalidEntity)
		}

		log.Error("failed to insert usage",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("question_id", questionID.String()))
		return err
	}

	return nil
}

// ResetUsage implements store.UsageStore.ResetUsage
// The delete is scoped by a topic subquery so usage rows for the user's other
// topics survive a reset.
func (s *PostgresUsageStore) ResetUsage(ctx context.Context, userID uuid.UUID, topic string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM question_usage
		WHERE user_id = $1
		  AND question_id IN (SELECT id FROM questions WHERE topic = $2)
	`
	result, err := s.db.ExecContext(ctx, query, userID, topic)
	if err != nil {
		log.Error("failed to reset usage",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("topic", topic))
		return err
	}

	if deleted, err := result.RowsAffected(); err == nil {
		log.Debug("usage reset",
			slog.String("user_id", userID.String()),
			slog.String("topic", topic),
			slog.Int64("rows_deleted", deleted))
	}

	return nil
}

// WithTx implements store.UsageStore.WithTx
func (s *PostgresUsageStore) WithTx(tx store.DBTX) store.UsageStore {
	return &PostgresUsageStore{
		db:     tx,
		logger: s.logger,
	}
}
