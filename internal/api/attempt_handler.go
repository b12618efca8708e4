package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mockmate/mockmate-api/internal/api/shared"
	"github.com/mockmate/mockmate-api/internal/service"
)

// AttemptHandler handles interview attempt submission, history, and
// analytics requests.
type AttemptHandler struct {
	attemptService   service.AttemptService
	analyticsService service.AnalyticsService
	validator        *validator.Validate
	logger           *slog.Logger
}

// NewAttemptHandler creates a new AttemptHandler with the given services.
func NewAttemptHandler(
	attemptService service.AttemptService,
	analyticsService service.AnalyticsService,
	log *slog.Logger,
) *AttemptHandler {
	if log == nil {
		log = slog.Default()
	}

	return &AttemptHandler{
		attemptService:   attemptService,
		analyticsService: analyticsService,
		validator:        validator.New(),
		logger:           log.With(slog.String("component", "attempt_handler")),
	}
}

// SubmitAttempt handles POST /api/attempts requests. The request must carry
// score, total_questions, and correct_answers explicitly; a correct_answers
// of zero is a legitimate value and distinct from the field being absent.
func (h *AttemptHandler) SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req SubmitAttemptRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	attempt, err := h.attemptService.Record(r.Context(), userID, service.RecordAttemptParams{
		Topic:                 req.Topic,
		Score:                 *req.Score,
		TotalQuestions:        *req.TotalQuestions,
		CorrectAnswers:        *req.CorrectAnswers,
		DurationMinutes:       req.DurationMinutes,
		ConfidenceScore:       req.ConfidenceScore,
		FacialExpressionScore: req.FacialExpressionScore,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, SubmitAttemptResponse{
		ID:      attempt.ID,
		Message: fmt.Sprintf("Recorded attempt for topic %q", attempt.Topic),
	})
}

// ListAttempts handles GET /api/attempts requests, returning the caller's
// attempt history newest first.
func (h *AttemptHandler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	attempts, err := h.attemptService.List(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, attempts)
}

// GetAnalytics handles GET /api/analytics requests, returning the overall,
// per-topic, and recent-trend summary for the caller.
func (h *AttemptHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	summary, err := h.analyticsService.Summarize(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}
