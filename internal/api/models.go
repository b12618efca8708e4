package api

import (
	"github.com/google/uuid"
	"github.com/mockmate/mockmate-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`
}

// SubmitAttemptRequest defines the payload for recording a completed
// practice attempt.
//
// The numeric required fields are pointers so that an absent field is
// distinguishable from a legitimate zero: correct_answers of 0 must be
// accepted and stored as 0, while a missing correct_answers is a validation
// error.
type SubmitAttemptRequest struct {
	Topic                 string   `json:"topic"                   validate:"required,min=1"`
	Score                 *float64 `json:"score"                   validate:"required"`
	TotalQuestions        *int     `json:"total_questions"         validate:"required"`
	CorrectAnswers        *int     `json:"correct_answers"         validate:"required"`
	DurationMinutes       *float64 `json:"duration_minutes"`
	ConfidenceScore       *float64 `json:"confidence_score"`
	FacialExpressionScore *float64 `json:"facial_expression_score"`
}

// SubmitAttemptResponse defines the successful response for attempt
// submission.
type SubmitAttemptResponse struct {
	ID      uuid.UUID `json:"id"`
	Message string    `json:"message"`
}

// GenerateQuestionRequest defines the payload for the question generation
// endpoint.
type GenerateQuestionRequest struct {
	Topic      string            `json:"topic"      validate:"required,min=1"`
	Difficulty domain.Difficulty `json:"difficulty" validate:"required,oneof=easy medium hard"`
}
