package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockmate/mockmate-api/internal/api/shared"
	"github.com/mockmate/mockmate-api/internal/domain"
	"github.com/mockmate/mockmate-api/internal/generation"
)

// fakeRotationService records the requested count and returns canned draws.
type fakeRotationService struct {
	questions      []*domain.Question
	topics         []string
	err            error
	requestedCount int
	requestedTopic string
}

func (s *fakeRotationService) SelectQuestions(
	_ context.Context,
	_ uuid.UUID,
	topic string,
	requestedCount int,
) ([]*domain.Question, error) {
	s.requestedTopic = topic
	s.requestedCount = requestedCount
	if s.err != nil {
		return nil, s.err
	}
	if requestedCount > len(s.questions) {
		requestedCount = len(s.questions)
	}
	return s.questions[:requestedCount], nil
}

func (s *fakeRotationService) ListTopics(_ context.Context) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.topics, nil
}

type fakeGenerator struct {
	question *generation.GeneratedQuestion
	err      error
	calls    int
}

func (g *fakeGenerator) GenerateQuestion(
	_ context.Context,
	topic string,
	difficulty domain.Difficulty,
) (*generation.GeneratedQuestion, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	if g.question != nil {
		return g.question, nil
	}
	return &generation.GeneratedQuestion{
		Topic:      topic,
		Text:       "generated question",
		Difficulty: difficulty,
	}, nil
}

// questionRequest builds an authenticated request with the topic bound as a
// chi URL parameter.
func questionRequest(target, topic string, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("topic", topic)
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)

	return req.WithContext(ctx)
}

func catalogQuestions(topic string, n int) []*domain.Question {
	questions := make([]*domain.Question, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, &domain.Question{
			ID:         uuid.New(),
			Topic:      topic,
			Text:       "question",
			Difficulty: domain.DifficultyMedium,
		})
	}
	return questions
}

func TestGetQuestions(t *testing.T) {
	rotationService := &fakeRotationService{questions: catalogQuestions("algorithms", 5)}
	handler := NewQuestionHandler(rotationService, nil, &fakeGenerator{}, nil)

	rr := httptest.NewRecorder()
	handler.GetQuestions(rr,
		questionRequest("/api/questions/algorithms?count=3", "algorithms", uuid.New()))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "algorithms", rotationService.requestedTopic)
	assert.Equal(t, 3, rotationService.requestedCount)

	var questions []*domain.Question
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&questions))
	assert.Len(t, questions, 3)
}

func TestGetQuestionsDefaultCount(t *testing.T) {
	rotationService := &fakeRotationService{questions: catalogQuestions("algorithms", 10)}
	handler := NewQuestionHandler(rotationService, nil, &fakeGenerator{}, nil)

	rr := httptest.NewRecorder()
	handler.GetQuestions(rr,
		questionRequest("/api/questions/algorithms", "algorithms", uuid.New()))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 5, rotationService.requestedCount, "absent count defaults to 5")
}

func TestGetQuestionsBadCount(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"non-numeric", "?count=many"},
		{"negative", "?count=-2"},
		{"float", "?count=2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rotationService := &fakeRotationService{questions: catalogQuestions("algorithms", 5)}
			handler := NewQuestionHandler(rotationService, nil, &fakeGenerator{}, nil)

			rr := httptest.NewRecorder()
			handler.GetQuestions(rr,
				questionRequest("/api/questions/algorithms"+tt.query, "algorithms", uuid.New()))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, 0, rotationService.requestedCount,
				"invalid counts are rejected before the draw")
		})
	}
}

func TestGetQuestionsZeroCount(t *testing.T) {
	rotationService := &fakeRotationService{questions: catalogQuestions("algorithms", 5)}
	handler := NewQuestionHandler(rotationService, nil, &fakeGenerator{}, nil)

	rr := httptest.NewRecorder()
	handler.GetQuestions(rr,
		questionRequest("/api/questions/algorithms?count=0", "algorithms", uuid.New()))

	assert.Equal(t, http.StatusOK, rr.Code)

	var questions []*domain.Question
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&questions))
	assert.Empty(t, questions, "an explicit zero is a valid empty draw")
}

func TestGetQuestionsUnauthenticated(t *testing.T) {
	handler := NewQuestionHandler(&fakeRotationService{}, nil, &fakeGenerator{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/questions/algorithms", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("topic", "algorithms")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rr := httptest.NewRecorder()
	handler.GetQuestions(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGetTopics(t *testing.T) {
	rotationService := &fakeRotationService{topics: []string{"algorithms", "databases"}}
	handler := NewQuestionHandler(rotationService, nil, &fakeGenerator{}, nil)

	rr := httptest.NewRecorder()
	handler.GetTopics(rr, httptest.NewRequest(http.MethodGet, "/api/topics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var topics []string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&topics))
	assert.Equal(t, []string{"algorithms", "databases"}, topics)
}

func TestGenerateQuestion(t *testing.T) {
	generator := &fakeGenerator{}
	fallback := &fakeGenerator{}
	handler := NewQuestionHandler(&fakeRotationService{}, generator, fallback, nil)

	req := authedRequest(http.MethodPost, "/api/questions/generate",
		[]byte(`{"topic":"algorithms","difficulty":"hard"}`), uuid.New())

	rr := httptest.NewRecorder()
	handler.GenerateQuestion(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, generator.calls)
	assert.Equal(t, 0, fallback.calls, "fallback untouched when the oracle succeeds")

	var question generation.GeneratedQuestion
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&question))
	assert.Equal(t, "algorithms", question.Topic)
	assert.Equal(t, domain.DifficultyHard, question.Difficulty)
}

func TestGenerateQuestionFallsBack(t *testing.T) {
	generator := &fakeGenerator{err: generation.ErrGenerationFailed}
	fallback := &fakeGenerator{}
	handler := NewQuestionHandler(&fakeRotationService{}, generator, fallback, nil)

	req := authedRequest(http.MethodPost, "/api/questions/generate",
		[]byte(`{"topic":"algorithms","difficulty":"easy"}`), uuid.New())

	rr := httptest.NewRecorder()
	handler.GenerateQuestion(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "oracle failure degrades to the catalog")
	assert.Equal(t, 1, fallback.calls)
}

func TestGenerateQuestionNoGeneratorConfigured(t *testing.T) {
	fallback := &fakeGenerator{}
	handler := NewQuestionHandler(&fakeRotationService{}, nil, fallback, nil)

	req := authedRequest(http.MethodPost, "/api/questions/generate",
		[]byte(`{"topic":"algorithms","difficulty":"medium"}`), uuid.New())

	rr := httptest.NewRecorder()
	handler.GenerateQuestion(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, fallback.calls)
}

func TestGenerateQuestionNoFallbackAvailable(t *testing.T) {
	fallback := &fakeGenerator{err: generation.ErrNoFallback}
	handler := NewQuestionHandler(&fakeRotationService{}, nil, fallback, nil)

	req := authedRequest(http.MethodPost, "/api/questions/generate",
		[]byte(`{"topic":"unknown","difficulty":"medium"}`), uuid.New())

	rr := httptest.NewRecorder()
	handler.GenerateQuestion(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGenerateQuestionValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing topic", `{"difficulty":"medium"}`},
		{"missing difficulty", `{"topic":"algorithms"}`},
		{"unknown difficulty", `{"topic":"algorithms","difficulty":"impossible"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := &fakeGenerator{}
			handler := NewQuestionHandler(&fakeRotationService{}, generator, &fakeGenerator{}, nil)

			req := authedRequest(http.MethodPost, "/api/questions/generate",
				[]byte(tt.body), uuid.New())

			rr := httptest.NewRecorder()
			handler.GenerateQuestion(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, 0, generator.calls)
		})
	}
}

func TestGetQuestionsServiceFailure(t *testing.T) {
	rotationService := &fakeRotationService{err: errors.New("boom")}
	handler := NewQuestionHandler(rotationService, nil, &fakeGenerator{}, nil)

	rr := httptest.NewRecorder()
	handler.GetQuestions(rr,
		questionRequest("/api/questions/algorithms", "algorithms", uuid.New()))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
