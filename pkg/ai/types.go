package ai

import (
	"context"
	"fmt"
	"strings"
)

// Provider names an OpenAI compatible text generation backend.
type Provider string

const (
	ProviderOpenAI     Provider = "openai"
	ProviderGemini     Provider = "gemini"
	ProviderGroq       Provider = "groq"
	ProviderOpenRouter Provider = "openrouter"
)

var providerBaseURLs = map[Provider]string{
	ProviderOpenAI:     "https://api.openai.com/v1",
	ProviderGemini:     "https://generativelanguage.googleapis.com/v1beta/openai",
	ProviderGroq:       "https://api.groq.com/openai/v1",
	ProviderOpenRouter: "https://openrouter.ai/api/v1",
}

var providerModels = map[Provider]string{
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderGemini:     "gemini-1.5-flash",
	ProviderGroq:       "llama-3.1-8b-instant",
	ProviderOpenRouter: "openai/gpt-4o-mini",
}

// ParseProvider resolves a provider name, case-insensitively.
func ParseProvider(name string) (Provider, error) {
	provider := Provider(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := providerBaseURLs[provider]; !ok {
		return "", fmt.Errorf("unsupported ai provider %q", name)
	}
	return provider, nil
}

// BaseURL returns the OpenAI compatible endpoint of the provider.
func (p Provider) BaseURL() string {
	return providerBaseURLs[p]
}

// DefaultModel returns the model used when none is configured.
func (p Provider) DefaultModel() string {
	return providerModels[p]
}

// Providers lists the supported providers in a stable order.
func Providers() []Provider {
	return []Provider{ProviderOpenAI, ProviderGemini, ProviderGroq, ProviderOpenRouter}
}

// TextGenerator turns a prompt into free-form text. Callers bound the call with ctx.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
