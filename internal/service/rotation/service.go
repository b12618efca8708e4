// Package rotation implements non-repeating question selection.
//
// A user drawing questions for a topic never sees a repeat until every
// question in the topic has been drawn at least once (a rotation cycle);
// exhausting the topic resets the cycle and drawing starts over.
package rotation

import (
	"context"

	"github.com/google/uuid"
	"github.com/mockmate/mockmate-api/internal/domain"
)

// RotationService selects practice questions for a user while enforcing the
// rotation-cycle guarantee.
type RotationService interface {
	// SelectQuestions returns up to requestedCount questions from the given
	// topic that the user has not yet drawn in the current rotation cycle,
	// sampled uniformly at random, and marks them as drawn.
	//
	// The result size is min(requestedCount, number of questions in the
	// topic): a request larger than the topic is capped, never an error and
	// never padded with duplicates. A topic with no questions yields an
	// empty slice. When the user has already drawn every question in the
	// topic, the cycle resets and the draw proceeds from the full topic;
	// reset and draw happen atomically within the same operation.
	//
	// The whole check-reset-draw-mark sequence is serialized per
	// (userID, topic) scope; requests on different scopes do not block
	// each other.
	SelectQuestions(
		ctx context.Context,
		userID uuid.UUID,
		topic string,
		requestedCount int,
	) ([]*domain.Question, error)

	// ListTopics returns the distinct topic names in the question catalog,
	// sorted ascending.
	ListTopics(ctx context.Context) ([]string, error)
}
