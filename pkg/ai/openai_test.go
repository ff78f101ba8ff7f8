package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gema-css-lab/pkg/ai"
)

func TestParseProvider(t *testing.T) {
	provider, err := ai.ParseProvider(" Groq ")
	require.NoError(t, err)
	require.Equal(t, ai.ProviderGroq, provider)
	require.Equal(t, "https://api.groq.com/openai/v1", provider.BaseURL())
	require.NotEmpty(t, provider.DefaultModel())

	_, err = ai.ParseProvider("anthropic")
	require.Error(t, err)
	require.Len(t, ai.Providers(), 4)
}

func TestNewOpenAIGeneratorRequiresKey(t *testing.T) {
	_, err := ai.NewOpenAIGenerator(ai.OpenAIConfig{})
	require.Error(t, err)

	_, err = ai.NewOpenAIGenerator(ai.OpenAIConfig{APIKey: "k", Provider: "unknown"})
	require.Error(t, err)
}

func TestOpenAIGeneratorGenerate(t *testing.T) {
	var received struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"  The rule centers items.  "},"finish_reason":"stop"}],"usage":{"total_tokens":12}}`))
	}))
	defer server.Close()

	generator, err := ai.NewOpenAIGenerator(ai.OpenAIConfig{
		Provider: ai.ProviderOpenRouter,
		APIKey:   "secret",
		BaseURL:  server.URL,
	})
	require.NoError(t, err)

	text, err := generator.Generate(context.Background(), "explain")
	require.NoError(t, err)
	require.Equal(t, "The rule centers items.", text)
	require.Equal(t, ai.ProviderOpenRouter.DefaultModel(), received.Model)
	require.Len(t, received.Messages, 2)
	require.Equal(t, "explain", received.Messages[1].Content)
}

func TestOpenAIGeneratorNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	generator, err := ai.NewOpenAIGenerator(ai.OpenAIConfig{APIKey: "secret", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = generator.Generate(context.Background(), "explain")
	require.Error(t, err)
}

func TestPrompts(t *testing.T) {
	explain := ai.ExplainPrompt("CSS", ".a { color: red; }")
	require.Contains(t, explain, "```css\n.a { color: red; }\n```")

	simulate := ai.SimulatePrompt("CSS", ".a { color: red; }", `<div class="a">x</div>`)
	require.Contains(t, simulate, "## Input")
	require.Contains(t, simulate, `<div class="a">x</div>`)

	require.NotContains(t, ai.SimulatePrompt("CSS", ".a{}", "  "), "## Input")
}
