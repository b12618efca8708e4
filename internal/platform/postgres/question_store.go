// Package postgres contains the PostgreSQL implementations of the store
// interfaces.
package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mockmate/mockmate-api/internal/domain"
	"github.com/mockmate/mockmate-api/internal/platform/logger"
	"github.com/mockmate/mockmate-api/internal/store"
)

// PostgresQuestionStore implements the store.QuestionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresQuestionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresQuestionStore creates a new PostgreSQL implementation of the
// QuestionStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresQuestionStore(db store.DBTX, log *slog.Logger) *PostgresQuestionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresQuestionStore{
		db:     db,
		logger: log.With(slog.String("component", "question_store")),
	}
}

// Ensure PostgresQuestionStore implements store.QuestionStore interface
var _ store.QuestionStore = (*PostgresQuestionStore)(nil)

// Create implements store.QuestionStore.Create
// It saves a new question to the catalog, handling domain validation.
func (s *PostgresQuestionStore) Create(ctx context.Context, question *domain.Question) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := question.Validate(); err != nil {
		log.Warn("question validation failed during create",
			slog.String("error", err.Error()),
			slog.String("question_id", question.ID.String()))
		return err
	}

	query := `
		INSERT INTO questions (id, topic, text, difficulty, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		question.ID,
		question.Topic,
		question.Text,
		question.Difficulty,
		question.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create question",
			slog.String("error", err.Error()),
			slog.String("question_id", question.ID.String()),
			slog.String("topic", question.Topic))
		return err
	}

	log.Debug("question created",
		slog.String("question_id", question.ID.String()),
		slog.String("topic", question.Topic))
	return nil
}

// GetByID implements store.QuestionStore.GetByID
// Returns store.ErrQuestionNotFound if the question does not exist.
func (s *PostgresQuestionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, topic, text, difficulty, created_at
		FROM questions
		WHERE id = $1
	`
	var question domain.Question
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&question.ID,
		&question.Topic,
		&question.Text,
		&question.Difficulty,
		&question.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, store.ErrQuestionNotFound
		}
		log.Error("failed to get question by ID",
			slog.String("error", err.Error()),
			slog.String("question_id", id.String()))
		return nil, err
	}

	return &question, nil
}

// GetByTopic implements store.QuestionStore.GetByTopic
// An unknown topic yields an empty slice, not an error.
func (s *PostgresQuestionStore) GetByTopic(ctx context.Context, topic string) ([]*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, topic, text, difficulty, created_at
		FROM questions
		WHERE topic = $1
	`
	rows, err := s.db.QueryContext(ctx, query, topic)
	if err != nil {
		log.Error("failed to list questions by topic",
			slog.String("error", err.Error()),
			slog.String("topic", topic))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	questions := make([]*domain.Question, 0)
	for rows.Next() {
		var question domain.Question
		if err := rows.Scan(
			&question.ID,
			&question.Topic,
			&question.Text,
			&question.Difficulty,
			&question.CreatedAt,
		); err != nil {
			log.Error("failed to scan question row",
				slog.String("error", err.Error()),
				slog.String("topic", topic))
			return nil, err
		}
		questions = append(questions, &question)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return questions, nil
}

// CountByTopic implements store.QuestionStore.CountByTopic
func (s *PostgresQuestionStore) CountByTopic(ctx context.Context, topic string) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT COUNT(*) FROM questions WHERE topic = $1`

	var count int
	if err := s.db.QueryRowContext(ctx, query, topic).Scan(&count); err != nil {
		log.Error("failed to count questions by topic",
			slog.String("error", err.Error()),
			slog.String("topic", topic))
		return 0, err
	}

	return count, nil
}

// ListTopics implements store.QuestionStore.ListTopics
// Topics are returned sorted ascending.
func (s *PostgresQuestionStore) ListTopics(ctx context.Context) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT DISTINCT topic FROM questions ORDER BY topic ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list topics", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	topics := make([]string, 0)
	for rows.Next() {
		var topic string
		if err := rows.Scan(&topic); err != nil {
			log.Error("failed to scan topic row", slog.String("error", err.Error()))
			return nil, err
		}
		topics = append(topics, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return topics, nil
}

// WithTx implements store.QuestionStore.WithTx
func (s *PostgresQuestionStore) WithTx(tx store.DBTX) store.QuestionStore {
	return &PostgresQuestionStore{
		db:     tx,
		logger: s.logger,
	}
}
