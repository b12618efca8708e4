package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mockmate/mockmate-api/internal/config"
	"github.com/mockmate/mockmate-api/internal/domain"
	"github.com/mockmate/mockmate-api/internal/platform/logger"
	"google.golang.org/genai"
)

// GeminiGenerator implements the Generator interface using Google's Gemini
// API to produce interview question text.
type GeminiGenerator struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// Ensure GeminiGenerator implements Generator interface
var _ Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a new GeminiGenerator from LLM configuration.
// Returns ErrInvalidConfig when the API key or model name is missing, or when
// the client cannot be constructed; the caller is expected to substitute a
// fallback generator in that case.
func NewGeminiGenerator(
	ctx context.Context,
	log *slog.Logger,
	cfg config.LLMConfig,
) (*GeminiGenerator, error) {
	if log == nil {
		log = slog.Default()
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", ErrInvalidConfig, err)
	}

	return &GeminiGenerator{
		logger: log.With(slog.String("component", "gemini_generator")),
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// GenerateQuestion implements Generator.GenerateQuestion.
func (g *GeminiGenerator) GenerateQuestion(
	ctx context.Context,
	topic string,
	difficulty domain.Difficulty,
) (*GeneratedQuestion, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	prompt := fmt.Sprintf(
		"Write one %s-difficulty interview question about %s. "+
			"Respond with the question text only, no preamble and no numbering.",
		difficulty, topic,
	)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		log.Error("Gemini API call failed",
			slog.String("error", err.Error()),
			slog.String("topic", topic))
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		log.Warn("Gemini returned empty response", slog.String("topic", topic))
		return nil, fmt.Errorf("%w: empty response", ErrInvalidResponse)
	}

	log.Debug("question generated",
		slog.String("topic", topic),
		slog.String("difficulty", string(difficulty)))
	return &GeneratedQuestion{
		Topic:      topic,
		Text:       text,
		Difficulty: difficulty,
	}, nil
}
