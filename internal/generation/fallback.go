package generation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/mockmate/mockmate-api/internal/domain"
	"github.com/mockmate/mockmate-api/internal/platform/logger"
	"github.com/mockmate/mockmate-api/internal/store"
)

// CatalogFallback implements the Generator interface by picking a random
// question from the static catalog. It is substituted when the generative
// oracle is unavailable or fails; drawing from it never touches the usage
// ledger, so it has no effect on rotation cycles.
type CatalogFallback struct {
	questionStore store.QuestionStore
	logger        *slog.Logger
}

// Ensure CatalogFallback implements Generator interface
var _ Generator = (*CatalogFallback)(nil)

// NewCatalogFallback creates a catalog-backed fallback generator.
func NewCatalogFallback(questionStore store.QuestionStore, log *slog.Logger) *CatalogFallback {
	if questionStore == nil {
		panic("questionStore cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &CatalogFallback{
		questionStore: questionStore,
		logger:        log.With(slog.String("component", "catalog_fallback")),
	}
}

// GenerateQuestion implements Generator.GenerateQuestion.
// Returns ErrNoFallback when the topic has no catalog questions.
func (f *CatalogFallback) GenerateQuestion(
	ctx context.Context,
	topic string,
	difficulty domain.Difficulty,
) (*GeneratedQuestion, error) {
	log := logger.FromContextOrDefault(ctx, f.logger)

	questions, err := f.questionStore.GetByTopic(ctx, topic)
	if err != nil {
		log.Error("failed to load fallback questions",
			slog.String("error", err.Error()),
			slog.String("topic", topic))
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	// Prefer questions at the requested difficulty, but any topic question
	// beats returning nothing.
	matching := make([]*domain.Question, 0, len(questions))
	for _, question := range questions {
		if question.Difficulty == difficulty {
			matching = append(matching, question)
		}
	}
	if len(matching) == 0 {
		matching = questions
	}
	if len(matching) == 0 {
		return nil, ErrNoFallback
	}

	chosen := matching[rand.IntN(len(matching))]

	log.Debug("substituted catalog question for generation",
		slog.String("topic", topic),
		slog.String("question_id", chosen.ID.String()))
	return &GeneratedQuestion{
		Topic:      chosen.Topic,
		Text:       chosen.Text,
		Difficulty: chosen.Difficulty,
	}, nil
}
