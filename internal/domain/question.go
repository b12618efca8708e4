package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Question-specific validation errors
var (
	// ErrQuestionIDEmpty is returned when a question ID is empty or nil.
	ErrQuestionIDEmpty = errors.New("question ID cannot be empty")

	// ErrQuestionTopicEmpty is returned when a question's topic is empty.
	ErrQuestionTopicEmpty = errors.New("question topic cannot be empty")

	// ErrQuestionTextEmpty is returned when a question's text is empty.
	ErrQuestionTextEmpty = errors.New("question text cannot be empty")

	// ErrQuestionDifficultyInvalid is returned when a question's difficulty
	// is not one of the recognized levels.
	ErrQuestionDifficultyInvalid = errors.New("question difficulty must be easy, medium, or hard")
)

// Difficulty represents the difficulty level of a question.
type Difficulty string

// Recognized difficulty levels.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question represents a single practice question in the catalog.
// Questions are immutable once created and belong to exactly one topic.
type Question struct {
	ID         uuid.UUID  `json:"id"`
	Topic      string     `json:"topic"`
	Text       string     `json:"text"`
	Difficulty Difficulty `json:"difficulty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewQuestion creates a new Question with the given topic, text, and difficulty.
// It generates a new UUID for the question ID and sets the creation timestamp.
// Returns an error if validation fails.
func NewQuestion(topic, text string, difficulty Difficulty) (*Question, error) {
	question := &Question{
		ID:         uuid.New(),
		Topic:      topic,
		Text:       text,
		Difficulty: difficulty,
		CreatedAt:  time.Now().UTC(),
	}

	if err := question.Validate(); err != nil {
		return nil, err
	}

	return question, nil
}

// Validate checks if the Question has valid data.
// Returns an error if any field fails validation.
func (q *Question) Validate() error {
	if q.ID == uuid.Nil {
		return ErrQuestionIDEmpty
	}

	if q.Topic == "" {
		return ErrQuestionTopicEmpty
	}

	if q.Text == "" {
		return ErrQuestionTextEmpty
	}

	switch q.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return nil
	default:
		return ErrQuestionDifficultyInvalid
	}
}
