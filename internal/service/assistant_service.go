package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-css-lab/internal/dto"
	"github.com/noah-isme/gema-css-lab/internal/observability"
	"github.com/noah-isme/gema-css-lab/pkg/ai"
)

const defaultAssistantLanguage = "CSS"

// GeneratorFactory builds a text generator for resolved credentials.
type GeneratorFactory func(provider ai.Provider, apiKey, model string) (ai.TextGenerator, error)

// AssistantConfig holds the server-wide fallback credentials.
type AssistantConfig struct {
	Provider string
	APIKey   string
	Model    string
}

// AssistantService answers explain and simulate requests about learner code.
type AssistantService interface {
	Explain(ctx context.Context, learnerID uint, req dto.AssistantRequest) (dto.AssistantResponse, error)
	Simulate(ctx context.Context, learnerID uint, req dto.AssistantRequest) (dto.AssistantResponse, error)
}

type assistantService struct {
	preferences PreferenceService
	factory     GeneratorFactory
	cfg         AssistantConfig
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewOpenAIGeneratorFactory returns a factory backed by ai.NewOpenAIGenerator.
func NewOpenAIGeneratorFactory(logger zerolog.Logger) GeneratorFactory {
	return func(provider ai.Provider, apiKey, model string) (ai.TextGenerator, error) {
		return ai.NewOpenAIGenerator(ai.OpenAIConfig{
			Provider: provider,
			APIKey:   apiKey,
			Model:    model,
			Logger:   logger,
		})
	}
}

// NewAssistantService constructs the assistant service.
func NewAssistantService(preferences PreferenceService, factory GeneratorFactory, cfg AssistantConfig, validate *validator.Validate, logger zerolog.Logger) AssistantService {
	component := logger.With().Str("component", "assistant_service").Logger()
	if factory == nil {
		factory = NewOpenAIGeneratorFactory(component)
	}
	return &assistantService{
		preferences: preferences,
		factory:     factory,
		cfg:         cfg,
		validator:   validate,
		logger:      component,
	}
}

func (s *assistantService) Explain(ctx context.Context, learnerID uint, req dto.AssistantRequest) (dto.AssistantResponse, error) {
	return s.run(ctx, "explain", learnerID, req, func(language string) string {
		return ai.ExplainPrompt(language, req.Code)
	})
}

func (s *assistantService) Simulate(ctx context.Context, learnerID uint, req dto.AssistantRequest) (dto.AssistantResponse, error) {
	return s.run(ctx, "simulate", learnerID, req, func(language string) string {
		return ai.SimulatePrompt(language, req.Code, req.Input)
	})
}

func (s *assistantService) run(ctx context.Context, operation string, learnerID uint, req dto.AssistantRequest, prompt func(language string) string) (dto.AssistantResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AssistantResponse{}, err
	}

	language := strings.TrimSpace(req.Language)
	if language == "" {
		language = defaultAssistantLanguage
	}

	provider, apiKey, model, err := s.resolve(ctx, learnerID)
	if err != nil {
		observability.AssistantRequests().WithLabelValues(operation, "unavailable").Inc()
		return dto.AssistantResponse{}, err
	}

	generator, err := s.factory(provider, apiKey, model)
	if err != nil {
		observability.AssistantRequests().WithLabelValues(operation, "unavailable").Inc()
		return dto.AssistantResponse{}, fmt.Errorf("%w: %v", ErrAssistantUnavailable, err)
	}

	text, err := generator.Generate(ctx, prompt(language))
	if err != nil {
		observability.AssistantRequests().WithLabelValues(operation, "failed").Inc()
		s.logger.Warn().Err(err).Str("operation", operation).Str("provider", string(provider)).Msg("assistant generation failed")
		return dto.AssistantResponse{}, fmt.Errorf("%w: %v", ErrAssistantFailed, err)
	}

	observability.AssistantRequests().WithLabelValues(operation, "ok").Inc()
	return dto.AssistantResponse{Provider: string(provider), Text: text}, nil
}

// resolve prefers the learner's stored credentials over the server fallback.
func (s *assistantService) resolve(ctx context.Context, learnerID uint) (ai.Provider, string, string, error) {
	if s.preferences != nil && learnerID != 0 {
		creds, ok, err := s.preferences.Credentials(ctx, learnerID)
		if err != nil && !errors.Is(err, ErrLearnerRequired) {
			return "", "", "", err
		}
		if ok {
			model := ""
			if strings.EqualFold(s.cfg.Provider, string(creds.Provider)) {
				model = s.cfg.Model
			}
			return creds.Provider, creds.APIKey, model, nil
		}
	}

	if strings.TrimSpace(s.cfg.APIKey) == "" {
		return "", "", "", ErrAssistantUnavailable
	}
	provider, err := ai.ParseProvider(s.cfg.Provider)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: %v", ErrAssistantUnavailable, err)
	}
	return provider, s.cfg.APIKey, s.cfg.Model, nil
}
