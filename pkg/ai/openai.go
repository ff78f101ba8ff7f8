package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gema",
		Subsystem: "ai",
		Name:      "generation_duration_seconds",
		Help:      "Duration of AI text generation requests",
	}, []string{"provider", "model"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gema",
		Subsystem: "ai",
		Name:      "generation_failures_total",
		Help:      "Number of AI text generation failures",
	}, []string{"provider", "model"})
)

// OpenAIConfig defines configuration options for the OpenAI compatible generator.
type OpenAIConfig struct {
	Provider    Provider
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIGenerator implements TextGenerator against a chat completion API.
type OpenAIGenerator struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIGenerator builds a new generator using the provided configuration.
func NewOpenAIGenerator(cfg OpenAIConfig) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ai api key is required")
	}

	if cfg.Provider == "" {
		cfg.Provider = ProviderOpenAI
	}
	if _, err := ParseProvider(string(cfg.Provider)); err != nil {
		return nil, err
	}

	if cfg.Model == "" {
		cfg.Model = cfg.Provider.DefaultModel()
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 512
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = cfg.Provider.BaseURL()
	}

	tracer := otel.Tracer("github.com/noah-isme/gema-css-lab/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = cfg.BaseURL
	client := openai.NewClientWithConfig(config)

	return &OpenAIGenerator{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger.With().Str("component", "ai_generator").Str("provider", string(cfg.Provider)).Logger(),
	}, nil
}

// Generate sends prompt as a single user message and returns the first choice.
func (g *OpenAIGenerator) Generate(parent context.Context, prompt string) (string, error) {
	ctx, span := g.tracer.Start(parent, "openai.generate", trace.WithAttributes(
		attribute.String("provider", string(g.cfg.Provider)),
		attribute.String("model", g.cfg.Model),
	))
	defer span.End()

	start := time.Now()
	request := openai.ChatCompletionRequest{
		Model:       g.cfg.Model,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: assistantSystemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, request)
	aiDuration.WithLabelValues(string(g.cfg.Provider), g.cfg.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		return "", g.fail(span, fmt.Errorf("%s generate: %w", g.cfg.Provider, err))
	}

	if len(resp.Choices) == 0 {
		return "", g.fail(span, fmt.Errorf("no choices returned from %s", g.cfg.Provider))
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	g.logger.Debug().Int("total_tokens", resp.Usage.TotalTokens).Msg("ai generation completed")
	return content, nil
}

func (g *OpenAIGenerator) fail(span trace.Span, err error) error {
	aiFailures.WithLabelValues(string(g.cfg.Provider), g.cfg.Model).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	g.logger.Warn().Err(err).Msg("ai generation failed")
	return err
}

func assistantSystemPrompt() string {
	return "You are a patient front-end tutor. Answer in plain prose, keep explanations short, and refer to the learner's code directly."
}
