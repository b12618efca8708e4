package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/mockmate/mockmate-api/internal/domain"
)

// AttemptStore defines the interface for the append-only interview attempt
// ledger. Attempts are created exactly once per completed session and never
// updated or deleted.
type AttemptStore interface {
	// Create appends a completed attempt to the ledger.
	// Returns validation errors from the domain InterviewAttempt if data
	// is invalid.
	Create(ctx context.Context, attempt *domain.InterviewAttempt) error

	// ListByUser retrieves all attempts recorded for the given user,
	// ordered by attempt date descending (newest first). A user with no
	// attempts yields an empty slice, not an error.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.InterviewAttempt, error)

	// WithTx returns an AttemptStore bound to the given transaction.
	WithTx(tx DBTX) AttemptStore
}
