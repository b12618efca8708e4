// Package generation defines the boundary to the generative question oracle.
// The practice core never depends on generated content; this package exists
// so the API layer can offer freshly generated question text with a static
// catalog fallback when the oracle is unavailable.
package generation

import (
	"context"

	"github.com/mockmate/mockmate-api/internal/domain"
)

// GeneratedQuestion is the oracle's output: question text for a topic at a
// difficulty level. It is not a catalog entry and takes no part in rotation.
type GeneratedQuestion struct {
	Topic      string            `json:"topic"`
	Text       string            `json:"text"`
	Difficulty domain.Difficulty `json:"difficulty"`
}

// Generator defines the interface for producing practice question text.
type Generator interface {
	// GenerateQuestion produces one question for the topic at the given
	// difficulty. Returns an error from errors.go when the oracle fails;
	// callers decide whether to substitute a fallback.
	GenerateQuestion(
		ctx context.Context,
		topic string,
		difficulty domain.Difficulty,
	) (*GeneratedQuestion, error)
}
