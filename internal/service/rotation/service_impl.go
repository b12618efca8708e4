package rotation

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/mockmate/mockmate-api/internal/domain"
	"github.com/mockmate/mockmate-api/internal/platform/logger"
	"github.com/mockmate/mockmate-api/internal/store"
)

// Verify interface compliance at compile time
var _ RotationService = (*rotationServiceImpl)(nil)

// txFn runs rotation store operations against transactional repositories.
type txFn func(ctx context.Context, questionRepo QuestionRepository, usageRepo UsageRepository) error

// rotationServiceImpl implements the RotationService interface.
type rotationServiceImpl struct {
	questionRepo QuestionRepository
	usageRepo    UsageRepository
	locks        *scopeLock
	logger       *slog.Logger
	runInTx      func(ctx context.Context, fn txFn) error // Injectable for testing
	shuffle      func(n int, swap func(i, j int))         // Injectable for testing
}

// NewRotationService creates a new RotationService backed by the given
// database handle and stores. The db handle owns transaction scoping for the
// check-reset-draw-mark sequence.
func NewRotationService(
	db *sql.DB,
	questionStore store.QuestionStore,
	usageStore store.UsageStore,
	log *slog.Logger,
) RotationService {
	if db == nil {
		panic("db cannot be nil")
	}
	if questionStore == nil {
		panic("questionStore cannot be nil")
	}
	if usageStore == nil {
		panic("usageStore cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	questionRepo := NewQuestionRepositoryAdapter(questionStore)
	usageRepo := NewUsageRepositoryAdapter(usageStore)

	svc := &rotationServiceImpl{
		questionRepo: questionRepo,
		usageRepo:    usageRepo,
		locks:        newScopeLock(),
		logger:       log.With(slog.String("component", "rotation_service")),
		shuffle:      rand.Shuffle,
	}
	svc.runInTx = func(ctx context.Context, fn txFn) error {
		return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			return fn(ctx, questionRepo.WithTx(tx), usageRepo.WithTx(tx))
		})
	}

	return svc
}

// SelectQuestions implements RotationService.SelectQuestions.
func (s *rotationServiceImpl) SelectQuestions(
	ctx context.Context,
	userID uuid.UUID,
	topic string,
	requestedCount int,
) ([]*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if requestedCount <= 0 {
		return []*domain.Question{}, nil
	}

	// Serialize the whole check-reset-draw-mark sequence per (user, topic).
	// Two concurrent requests on the same scope must not both observe
	// "exhausted" and reset, nor draw the same question.
	s.locks.Lock(userID, topic)
	defer s.locks.Unlock(userID, topic)

	var selected []*domain.Question
	err := s.runInTx(ctx, func(
		ctx context.Context,
		questionRepo QuestionRepository,
		usageRepo UsageRepository,
	) error {
		total, err := questionRepo.CountByTopic(ctx, topic)
		if err != nil {
			return fmt.Errorf("failed to count topic questions: %w", err)
		}
		if total == 0 {
			selected = []*domain.Question{}
			return nil
		}

		used, err := usageRepo.CountDistinctUsed(ctx, userID, topic)
		if err != nil {
			return fmt.Errorf("failed to count used questions: %w", err)
		}

		// Cycle complete: clear the ledger for this scope and draw from the
		// full topic again. The reset is only observable together with the
		// draw that follows it.
		if used >= total {
			if err := usageRepo.ResetUsage(ctx, userID, topic); err != nil {
				return fmt.Errorf("failed to reset usage: %w", err)
			}
			log.Debug("rotation cycle complete, usage reset",
				slog.String("user_id", userID.String()),
				slog.String("topic", topic),
				slog.Int("cycle_size", total))
		}

		eligible, err := s.eligibleQuestions(ctx, questionRepo, usageRepo, userID, topic)
		if err != nil {
			return err
		}

		drawCount := requestedCount
		if drawCount > len(eligible) {
			drawCount = len(eligible)
		}

		// Uniform sample without replacement: shuffle the eligible set and
		// take the prefix. No ordering bias by id, insertion order, or
		// difficulty.
		s.shuffle(len(eligible), func(i, j int) {
			eligible[i], eligible[j] = eligible[j], eligible[i]
		})
		drawn := eligible[:drawCount]

		for _, question := range drawn {
			if err := usageRepo.InsertUsage(ctx, userID, question.ID); err != nil {
				return fmt.Errorf("failed to mark question as used: %w", err)
			}
		}

		selected = drawn
		return nil
	})
	if err != nil {
		log.Error("failed to select questions",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("topic", topic),
			slog.Int("requested_count", requestedCount))
		return nil, err
	}

	log.Debug("questions selected",
		slog.String("user_id", userID.String()),
		slog.String("topic", topic),
		slog.Int("requested_count", requestedCount),
		slog.Int("selected_count", len(selected)))
	return selected, nil
}

// eligibleQuestions returns the topic's questions that the user has not drawn
// in the current cycle.
func (s *rotationServiceImpl) eligibleQuestions(
	ctx context.Context,
	questionRepo QuestionRepository,
	usageRepo UsageRepository,
	userID uuid.UUID,
	topic string,
) ([]*domain.Question, error) {
	questions, err := questionRepo.GetByTopic(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to load topic questions: %w", err)
	}

	usedIDs, err := usageRepo.ListUsedIDs(ctx, userID, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to load used question IDs: %w", err)
	}

	usedSet := make(map[uuid.UUID]struct{}, len(usedIDs))
	for _, id := range usedIDs {
		usedSet[id] = struct{}{}
	}

	eligible := make([]*domain.Question, 0, len(questions))
	for _, question := range questions {
		if _, ok := usedSet[question.ID]; !ok {
			eligible = append(eligible, question)
		}
	}

	return eligible, nil
}

// ListTopics implements RotationService.ListTopics.
func (s *rotationServiceImpl) ListTopics(ctx context.Context) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	topics, err := s.questionRepo.ListTopics(ctx)
	if err != nil {
		log.Error("failed to list topics", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}

	return topics, nil
}
