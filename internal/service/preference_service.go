package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-css-lab/internal/dto"
	"github.com/noah-isme/gema-css-lab/pkg/ai"
)

const (
	preferenceProviderField = "provider"
	preferenceAPIKeyField   = "api_key"
)

// AssistantCredentials are the resolved provider settings for one learner.
type AssistantCredentials struct {
	Provider ai.Provider
	APIKey   string
}

// PreferenceService stores per-learner assistant credentials in Redis.
type PreferenceService interface {
	Get(ctx context.Context, learnerID uint) (dto.AssistantPreferenceResponse, error)
	Save(ctx context.Context, learnerID uint, req dto.AssistantPreferenceRequest) (dto.AssistantPreferenceResponse, error)
	Delete(ctx context.Context, learnerID uint) error
	Credentials(ctx context.Context, learnerID uint) (AssistantCredentials, bool, error)
}

type preferenceService struct {
	redis     *redis.Client
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewPreferenceService constructs the preference service.
func NewPreferenceService(client *redis.Client, validate *validator.Validate, logger zerolog.Logger) PreferenceService {
	return &preferenceService{
		redis:     client,
		validator: validate,
		logger:    logger.With().Str("component", "preference_service").Logger(),
	}
}

func preferenceKey(learnerID uint) string {
	return fmt.Sprintf("preferences:learner:%d", learnerID)
}

// MaskAPIKey keeps the last four characters of key.
func MaskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	runes := []rune(key)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return strings.Repeat("*", 4) + string(runes[len(runes)-4:])
}

func (s *preferenceService) Get(ctx context.Context, learnerID uint) (dto.AssistantPreferenceResponse, error) {
	creds, ok, err := s.Credentials(ctx, learnerID)
	if err != nil {
		return dto.AssistantPreferenceResponse{}, err
	}
	if !ok {
		return dto.AssistantPreferenceResponse{Configured: false}, nil
	}
	return dto.AssistantPreferenceResponse{
		Configured:   true,
		Provider:     string(creds.Provider),
		APIKeyMasked: MaskAPIKey(creds.APIKey),
	}, nil
}

func (s *preferenceService) Save(ctx context.Context, learnerID uint, req dto.AssistantPreferenceRequest) (dto.AssistantPreferenceResponse, error) {
	if learnerID == 0 {
		return dto.AssistantPreferenceResponse{}, ErrLearnerRequired
	}
	if s.redis == nil {
		return dto.AssistantPreferenceResponse{}, ErrPreferencesUnavailable
	}

	req.Provider = strings.ToLower(strings.TrimSpace(req.Provider))
	req.APIKey = strings.TrimSpace(req.APIKey)
	if err := s.validator.Struct(req); err != nil {
		return dto.AssistantPreferenceResponse{}, err
	}

	if err := s.redis.HSet(ctx, preferenceKey(learnerID),
		preferenceProviderField, req.Provider,
		preferenceAPIKeyField, req.APIKey,
	).Err(); err != nil {
		return dto.AssistantPreferenceResponse{}, fmt.Errorf("store preferences: %w", err)
	}

	s.logger.Info().Uint("learner_id", learnerID).Str("provider", req.Provider).Msg("assistant preferences saved")
	return dto.AssistantPreferenceResponse{
		Configured:   true,
		Provider:     req.Provider,
		APIKeyMasked: MaskAPIKey(req.APIKey),
	}, nil
}

func (s *preferenceService) Delete(ctx context.Context, learnerID uint) error {
	if learnerID == 0 {
		return ErrLearnerRequired
	}
	if s.redis == nil {
		return ErrPreferencesUnavailable
	}
	if err := s.redis.Del(ctx, preferenceKey(learnerID)).Err(); err != nil {
		return fmt.Errorf("delete preferences: %w", err)
	}
	return nil
}

// Credentials returns the stored provider settings. ok is false when the
// learner has none or the stored provider is no longer supported.
func (s *preferenceService) Credentials(ctx context.Context, learnerID uint) (AssistantCredentials, bool, error) {
	if learnerID == 0 {
		return AssistantCredentials{}, false, ErrLearnerRequired
	}
	if s.redis == nil {
		return AssistantCredentials{}, false, nil
	}

	values, err := s.redis.HGetAll(ctx, preferenceKey(learnerID)).Result()
	if err != nil {
		return AssistantCredentials{}, false, fmt.Errorf("load preferences: %w", err)
	}

	key := values[preferenceAPIKeyField]
	if key == "" {
		return AssistantCredentials{}, false, nil
	}
	provider, err := ai.ParseProvider(values[preferenceProviderField])
	if err != nil {
		s.logger.Warn().Err(err).Uint("learner_id", learnerID).Msg("ignoring stored assistant preferences")
		return AssistantCredentials{}, false, nil
	}

	return AssistantCredentials{Provider: provider, APIKey: key}, true, nil
}
