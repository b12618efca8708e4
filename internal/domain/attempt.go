package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Attempt-specific validation errors
var (
	// ErrAttemptIDEmpty is returned when an attempt ID is empty or nil.
	ErrAttemptIDEmpty = errors.New("attempt ID cannot be empty")

	// ErrAttemptUserIDEmpty is returned when an attempt's user ID is empty or nil.
	ErrAttemptUserIDEmpty = errors.New("attempt user ID cannot be empty")

	// ErrAttemptTopicEmpty is returned when an attempt's topic is empty.
	ErrAttemptTopicEmpty = errors.New("attempt topic cannot be empty")

	// ErrAttemptTotalQuestionsInvalid is returned when an attempt's question
	// count is not positive.
	ErrAttemptTotalQuestionsInvalid = errors.New("attempt total questions must be positive")

	// ErrAttemptCorrectAnswersInvalid is returned when an attempt's correct
	// answer count is negative or exceeds the number of questions asked.
	ErrAttemptCorrectAnswersInvalid = errors.New(
		"attempt correct answers must be between zero and total questions",
	)

	// ErrAttemptDateEmpty is returned when an attempt has no date.
	ErrAttemptDateEmpty = errors.New("attempt date cannot be empty")
)

// InterviewAttempt represents the aggregate outcome of one completed practice
// session. Attempts are append-only: created exactly once per session and
// never mutated or deleted.
//
// Score and CorrectAnswers are caller-supplied aggregates over the session's
// per-question evaluations; they are stored verbatim and never recomputed.
// DurationMinutes, ConfidenceScore, and FacialExpressionScore are optional
// signals and remain nil when the client did not supply them.
type InterviewAttempt struct {
	ID                    uuid.UUID `json:"id"`
	UserID                uuid.UUID `json:"user_id"`
	Topic                 string    `json:"topic"`
	Score                 float64   `json:"score"`
	TotalQuestions        int       `json:"total_questions"`
	CorrectAnswers        int       `json:"correct_answers"`
	DurationMinutes       *float64  `json:"duration_minutes,omitempty"`
	ConfidenceScore       *float64  `json:"confidence_score,omitempty"`
	FacialExpressionScore *float64  `json:"facial_expression_score,omitempty"`
	AttemptDate           time.Time `json:"attempt_date"`
}

// NewInterviewAttempt creates a new InterviewAttempt for the given user and
// topic with the supplied session aggregates. It generates a new UUID for the
// attempt ID and stamps the attempt date. Returns an error if validation fails.
func NewInterviewAttempt(
	userID uuid.UUID,
	topic string,
	score float64,
	totalQuestions, correctAnswers int,
) (*InterviewAttempt, error) {
	attempt := &InterviewAttempt{
		ID:             uuid.New(),
		UserID:         userID,
		Topic:          topic,
		Score:          score,
		TotalQuestions: totalQuestions,
		CorrectAnswers: correctAnswers,
		AttemptDate:    time.Now().UTC(),
	}

	if err := attempt.Validate(); err != nil {
		return nil, err
	}

	return attempt, nil
}

// Validate checks if the InterviewAttempt has valid data.
// Returns an error if any field fails validation.
//
// CorrectAnswers of zero is valid: "answered nothing correctly" is a real
// outcome and must not be confused with "field not supplied" (that
// distinction is enforced at the API boundary before the domain object is
// constructed).
func (a *InterviewAttempt) Validate() error {
	if a.ID == uuid.Nil {
		return ErrAttemptIDEmpty
	}

	if a.UserID == uuid.Nil {
		return ErrAttemptUserIDEmpty
	}

	if a.Topic == "" {
		return ErrAttemptTopicEmpty
	}

	if a.TotalQuestions <= 0 {
		return ErrAttemptTotalQuestionsInvalid
	}

	if a.CorrectAnswers < 0 || a.CorrectAnswers > a.TotalQuestions {
		return ErrAttemptCorrectAnswersInvalid
	}

	if a.AttemptDate.IsZero() {
		return ErrAttemptDateEmpty
	}

	return nil
}
