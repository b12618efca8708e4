package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mockmate/mockmate-api/internal/domain"
	"github.com/mockmate/mockmate-api/internal/platform/logger"
	"github.com/mockmate/mockmate-api/internal/store"
)

// recentTrendSize is the number of newest attempts included in a summary's
// recent-trend slice.
const recentTrendSize = 20

// OverallStats aggregates a user's whole attempt history. The numeric
// aggregates are nil when there is no data to aggregate: a user with no
// attempts has no average score, which is distinct from an average of zero.
type OverallStats struct {
	TotalAttempts          int      `json:"total_attempts"`
	AverageScore           *float64 `json:"average_score"`
	BestScore              *float64 `json:"best_score"`
	WorstScore             *float64 `json:"worst_score"`
	AverageDurationMinutes *float64 `json:"average_duration_minutes"`
}

// TopicStats aggregates a user's attempts within one topic. A row only
// exists for topics with at least one attempt, so its aggregates are always
// present.
type TopicStats struct {
	Topic        string  `json:"topic"`
	Attempts     int     `json:"attempts"`
	AverageScore float64 `json:"average_score"`
	BestScore    float64 `json:"best_score"`
	WorstScore   float64 `json:"worst_score"`
}

// RecentAttempt is the reduced view of one attempt used in the recent-trend
// slice.
type RecentAttempt struct {
	Score                 float64   `json:"score"`
	AttemptDate           time.Time `json:"attempt_date"`
	Topic                 string    `json:"topic"`
	ConfidenceScore       *float64  `json:"confidence_score"`
	FacialExpressionScore *float64  `json:"facial_expression_score"`
}

// Summary is the full analytics view for one user. All three sections are
// computed from the same single read of the attempt ledger.
type Summary struct {
	Overall        OverallStats    `json:"overall"`
	TopicStats     []TopicStats    `json:"topic_stats"`
	RecentAttempts []RecentAttempt `json:"recent_attempts"`
}

// AnalyticsService computes aggregate statistics over a user's attempt
// history.
type AnalyticsService interface {
	// Summarize returns overall, per-topic, and recent-trend statistics for
	// the user. A user with no attempts receives zero counts and nil
	// aggregates, not an error.
	Summarize(ctx context.Context, userID uuid.UUID) (*Summary, error)
}

// Verify interface compliance at compile time
var _ AnalyticsService = (*analyticsServiceImpl)(nil)

// analyticsServiceImpl implements the AnalyticsService interface.
type analyticsServiceImpl struct {
	attemptStore store.AttemptStore
	logger       *slog.Logger
}

// NewAnalyticsService creates a new AnalyticsService backed by the given
// attempt store.
func NewAnalyticsService(attemptStore store.AttemptStore, log *slog.Logger) AnalyticsService {
	if attemptStore == nil {
		panic("attemptStore cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &analyticsServiceImpl{
		attemptStore: attemptStore,
		logger:       log.With(slog.String("component", "analytics_service")),
	}
}

// Summarize implements AnalyticsService.Summarize.
// All three sections derive from one ListByUser call, so they reflect the
// ledger at a single point in time.
func (s *analyticsServiceImpl) Summarize(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	attempts, err := s.attemptStore.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to load attempts for summary",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load attempts: %w", err)
	}

	summary := &Summary{
		Overall:        overallStats(attempts),
		TopicStats:     topicStats(attempts),
		RecentAttempts: recentAttempts(attempts),
	}

	log.Debug("summary computed",
		slog.String("user_id", userID.String()),
		slog.Int("total_attempts", summary.Overall.TotalAttempts),
		slog.Int("topics", len(summary.TopicStats)))
	return summary, nil
}

// overallStats reduces the full history to whole-history aggregates.
func overallStats(attempts []*domain.InterviewAttempt) OverallStats {
	stats := OverallStats{TotalAttempts: len(attempts)}
	if len(attempts) == 0 {
		return stats
	}

	var scoreSum float64
	best := attempts[0].Score
	worst := attempts[0].Score

	var durationSum float64
	var durationCount int

	for _, attempt := range attempts {
		scoreSum += attempt.Score
		if attempt.Score > best {
			best = attempt.Score
		}
		if attempt.Score < worst {
			worst = attempt.Score
		}

		if attempt.DurationMinutes != nil {
			durationSum += *attempt.DurationMinutes
			durationCount++
		}
	}

	average := scoreSum / float64(len(attempts))
	stats.AverageScore = &average
	stats.BestScore = &best
	stats.WorstScore = &worst

	if durationCount > 0 {
		averageDuration := durationSum / float64(durationCount)
		stats.AverageDurationMinutes = &averageDuration
	}

	return stats
}

// topicStats reduces the history to one row per attempted topic, sorted by
// topic name.
func topicStats(attempts []*domain.InterviewAttempt) []TopicStats {
	byTopic := make(map[string]*TopicStats)
	sums := make(map[string]float64)

	for _, attempt := range attempts {
		row, ok := byTopic[attempt.Topic]
		if !ok {
			row = &TopicStats{
				Topic:      attempt.Topic,
				BestScore:  attempt.Score,
				WorstScore: attempt.Score,
			}
			byTopic[attempt.Topic] = row
		}

		row.Attempts++
		sums[attempt.Topic] += attempt.Score
		if attempt.Score > row.BestScore {
			row.BestScore = attempt.Score
		}
		if attempt.Score < row.WorstScore {
			row.WorstScore = attempt.Score
		}
	}

	result := make([]TopicStats, 0, len(byTopic))
	for topic, row := range byTopic {
		row.AverageScore = sums[topic] / float64(row.Attempts)
		result = append(result, *row)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Topic < result[j].Topic })
	return result
}

// recentAttempts reduces the newest attempts to the trend view. The input is
// already ordered newest first by the store.
func recentAttempts(attempts []*domain.InterviewAttempt) []RecentAttempt {
	limit := recentTrendSize
	if len(attempts) < limit {
		limit = len(attempts)
	}

	recent := make([]RecentAttempt, 0, limit)
	for _, attempt := range attempts[:limit] {
		recent = append(recent, RecentAttempt{
			Score:                 attempt.Score,
			AttemptDate:           attempt.AttemptDate,
			Topic:                 attempt.Topic,
			ConfidenceScore:       attempt.ConfidenceScore,
			FacialExpressionScore: attempt.FacialExpressionScore,
		})
	}

	return recent
}
