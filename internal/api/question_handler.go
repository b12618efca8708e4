package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mockmate/mockmate-api/internal/api/shared"
	"github.com/mockmate/mockmate-api/internal/generation"
	"github.com/mockmate/mockmate-api/internal/platform/logger"
	"github.com/mockmate/mockmate-api/internal/service/rotation"
)

// defaultQuestionCount is the number of questions drawn when the count query
// parameter is absent.
const defaultQuestionCount = 5

// QuestionHandler handles question drawing, topic listing, and question
// generation requests.
type QuestionHandler struct {
	rotationService rotation.RotationService
	generator       generation.Generator
	fallback        generation.Generator
	validator       *validator.Validate
	logger          *slog.Logger
}

// NewQuestionHandler creates a new QuestionHandler with the given
// dependencies. generator may be nil when the oracle is not configured;
// generation requests then go straight to the fallback.
func NewQuestionHandler(
	rotationService rotation.RotationService,
	generator generation.Generator,
	fallback generation.Generator,
	log *slog.Logger,
) *QuestionHandler {
	if log == nil {
		log = slog.Default()
	}

	return &QuestionHandler{
		rotationService: rotationService,
		generator:       generator,
		fallback:        fallback,
		validator:       validator.New(),
		logger:          log.With(slog.String("component", "question_handler")),
	}
}

// GetQuestions handles GET /api/questions/{topic}?count=N requests.
// The count parameter defaults to 5; a non-numeric or negative value is a
// validation error rather than being silently coerced.
func (h *QuestionHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	topic := chi.URLParam(r, "topic")
	if topic == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Topic is required")
		return
	}

	count := defaultQuestionCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Count must be an integer")
			return
		}
		if parsed < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Count must not be negative")
			return
		}
		count = parsed
	}

	questions, err := h.rotationService.SelectQuestions(r.Context(), userID, topic, count)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, questions)
}

// GetTopics handles GET /api/topics requests.
func (h *QuestionHandler) GetTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.rotationService.ListTopics(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, topics)
}

// GenerateQuestion handles POST /api/questions/generate requests.
// When the generative oracle fails or is not configured, a static catalog
// question is substituted.
func (h *QuestionHandler) GenerateQuestion(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GenerateQuestionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if h.generator != nil {
		question, err := h.generator.GenerateQuestion(r.Context(), req.Topic, req.Difficulty)
		if err == nil {
			shared.RespondWithJSON(w, r, http.StatusOK, question)
			return
		}
		log.Warn("question generation failed, using catalog fallback",
			slog.String("error", err.Error()),
			slog.String("topic", req.Topic))
	}

	question, err := h.fallback.GenerateQuestion(r.Context(), req.Topic, req.Difficulty)
	if err != nil {
		if errors.Is(err, generation.ErrNoFallback) {
			shared.RespondWithError(w, r, http.StatusNotFound, "No questions available for topic")
			return
		}
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to generate question", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, question)
}
