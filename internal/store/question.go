package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/mockmate/mockmate-api/internal/domain"
)

// QuestionStore defines the interface for reading the question catalog.
// The catalog is seeded outside the request path (via migrations) and is
// immutable during a session, so the interface is read-only apart from
// Create, which exists for seeding and administrative tooling.
type QuestionStore interface {
	// Create saves a new question to the catalog.
	// Returns validation errors from the domain Question if data is invalid.
	Create(ctx context.Context, question *domain.Question) error

	// GetByID retrieves a question by its unique ID.
	// Returns ErrQuestionNotFound if the question does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)

	// GetByTopic retrieves all questions belonging to the given topic.
	// An unknown topic yields an empty slice, not an error.
	GetByTopic(ctx context.Context, topic string) ([]*domain.Question, error)

	// CountByTopic returns the number of catalog questions in the given topic.
	CountByTopic(ctx context.Context, topic string) (int, error)

	// ListTopics returns the distinct topic names in the catalog,
	// sorted ascending.
	ListTopics(ctx context.Context) ([]string, error)

	// WithTx returns a QuestionStore bound to the given transaction so
	// catalog reads participate in the caller's transaction.
	WithTx(tx DBTX) QuestionStore
}
