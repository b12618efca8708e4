package store

import (
	"context"

	"github.com/google/uuid"
)

// UsageStore defines the interface for the per-(user, topic) usage ledger:
// the record of which catalog questions a user has drawn since the last
// reset for a topic. It is pure storage; all rotation policy (exhaustion
// detection, reset-then-draw ordering) lives in the rotation service.
type UsageStore interface {
	// CountDistinctUsed returns the number of distinct questions in the
	// given topic that the user has drawn in the current rotation cycle.
	CountDistinctUsed(ctx context.Context, userID uuid.UUID, topic string) (int, error)

	// ListUsedIDs returns the IDs of the questions in the given topic that
	// the user has drawn in the current rotation cycle.
	ListUsedIDs(ctx context.Context, userID uuid.UUID, topic string) ([]uuid.UUID, error)

	// InsertUsage marks a question as drawn for the user. The insert is
	// idempotent: recording the same (user, question) pair twice leaves a
	// single row.
	InsertUsage(ctx context.Context, userID, questionID uuid.UUID) error

	// ResetUsage deletes all usage rows for the user within the given topic,
	// starting a new rotation cycle. Usage for other topics and other users
	// is untouched.
	ResetUsage(ctx context.Context, userID uuid.UUID, topic string) error

	// WithTx returns a UsageStore bound to the given transaction so the
	// count-reset-insert sequence can run atomically.
	WithTx(tx DBTX) UsageStore
}
