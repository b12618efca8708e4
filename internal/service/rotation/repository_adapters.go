package rotation

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mockmate/mockmate-api/internal/domain"
	"github.com/mockmate/mockmate-api/internal/store"
)

// QuestionRepository defines the catalog reads the rotation service needs,
// with transaction support.
type QuestionRepository interface {
	// GetByTopic retrieves all questions belonging to the given topic.
	GetByTopic(ctx context.Context, topic string) ([]*domain.Question, error)

	// CountByTopic returns the number of catalog questions in the given topic.
	CountByTopic(ctx context.Context, topic string) (int, error)

	// ListTopics returns the distinct topic names, sorted ascending.
	ListTopics(ctx context.Context) ([]string, error)

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) QuestionRepository
}

// UsageRepository defines the usage-ledger operations the rotation service
// needs, with transaction support.
type UsageRepository interface {
	// CountDistinctUsed returns the user's cycle progress within the topic.
	CountDistinctUsed(ctx context.Context, userID uuid.UUID, topic string) (int, error)

	// ListUsedIDs returns the question IDs the user has drawn in the
	// current cycle for the topic.
	ListUsedIDs(ctx context.Context, userID uuid.UUID, topic string) ([]uuid.UUID, error)

	// InsertUsage marks a question as drawn for the user (idempotent).
	InsertUsage(ctx context.Context, userID, questionID uuid.UUID) error

	// ResetUsage deletes the user's usage rows for the topic.
	ResetUsage(ctx context.Context, userID uuid.UUID, topic string) error

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) UsageRepository
}

// NewQuestionRepositoryAdapter creates an adapter that allows a
// store.QuestionStore to be used where a QuestionRepository is expected.
func NewQuestionRepositoryAdapter(questionStore store.QuestionStore) QuestionRepository {
	return &questionRepositoryAdapter{questionStore: questionStore}
}

// questionRepositoryAdapter adapts a store.QuestionStore to the
// QuestionRepository interface.
type questionRepositoryAdapter struct {
	questionStore store.QuestionStore
}

// GetByTopic implements QuestionRepository.GetByTopic
func (a *questionRepositoryAdapter) GetByTopic(
	ctx context.Context,
	topic string,
) ([]*domain.Question, error) {
	return a.questionStore.GetByTopic(ctx, topic)
}

// CountByTopic implements QuestionRepository.CountByTopic
func (a *questionRepositoryAdapter) CountByTopic(ctx context.Context, topic string) (int, error) {
	return a.questionStore.CountByTopic(ctx, topic)
}

// ListTopics implements QuestionRepository.ListTopics
func (a *questionRepositoryAdapter) ListTopics(ctx context.Context) ([]string, error) {
	return a.questionStore.ListTopics(ctx)
}

// WithTx implements QuestionRepository.WithTx
func (a *questionRepositoryAdapter) WithTx(tx *sql.Tx) QuestionRepository {
	return &questionRepositoryAdapter{questionStore: a.questionStore.WithTx(tx)}
}

// NewUsageRepositoryAdapter creates an adapter that allows a store.UsageStore
// to be used where a UsageRepository is expected.
func NewUsageRepositoryAdapter(usageStore store.UsageStore) UsageRepository {
	return &usageRepositoryAdapter{usageStore: usageStore}
}

// usageRepositoryAdapter adapts a store.UsageStore to the UsageRepository
// interface.
type usageRepositoryAdapter struct {
	usageStore store.UsageStore
}

// CountDistinctUsed implements UsageRepository.CountDistinctUsed
func (a *usageRepositoryAdapter) CountDistinctUsed(
	ctx context.Context,
	userID uuid.UUID,
	topic string,
) (int, error) {
	return a.usageStore.CountDistinctUsed(ctx, userID, topic)
}

// ListUsedIDs implements UsageRepository.ListUsedIDs
func (a *usageRepositoryAdapter) ListUsedIDs(
	ctx context.Context,
	userID uuid.UUID,
	topic string,
) ([]uuid.UUID, error) {
	return a.usageStore.ListUsedIDs(ctx, userID, topic)
}

// InsertUsage implements UsageRepository.InsertUsage
func (a *usageRepositoryAdapter) InsertUsage(ctx context.Context, userID, questionID uuid.UUID) error {
	return a.usageStore.InsertUsage(ctx, userID, questionID)
}

// ResetUsage implements UsageRepository.ResetUsage
func (a *usageRepositoryAdapter) ResetUsage(ctx context.Context, userID uuid.UUID, topic string) error {
	return a.usageStore.ResetUsage(ctx, userID, topic)
}

// WithTx implements UsageRepository.WithTx
func (a *usageRepositoryAdapter) WithTx(tx *sql.Tx) UsageRepository {
	return &usageRepositoryAdapter{usageStore: a.usageStore.WithTx(tx)}
}
