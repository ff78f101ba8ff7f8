package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gema-css-lab/internal/dto"
	"github.com/noah-isme/gema-css-lab/internal/service"
)

func TestPreferencesLifecycle(t *testing.T) {
	env := setupApp(t, service.AssistantConfig{})
	token := bearer(t, 3)

	resp := doJSON(t, env.app, http.MethodGet, "/api/v2/preferences/assistant", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodGet, "/api/v2/preferences/assistant", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var prefs envelope[dto.AssistantPreferenceResponse]
	decodeResponse(t, resp, &prefs)
	require.False(t, prefs.Data.Configured)

	resp = doJSON(t, env.app, http.MethodPut, "/api/v2/preferences/assistant", dto.AssistantPreferenceRequest{Provider: "gemini", APIKey: "short"}, token)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodPut, "/api/v2/preferences/assistant", dto.AssistantPreferenceRequest{Provider: "groq", APIKey: "gsk-secret-1234"}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeResponse(t, resp, &prefs)
	require.True(t, prefs.Data.Configured)
	require.Equal(t, "groq", prefs.Data.Provider)
	require.Equal(t, "****1234", prefs.Data.APIKeyMasked)
	require.Equal(t, "gsk-secret-1234", env.mini.HGet("preferences:learner:3", "api_key"))

	resp = doJSON(t, env.app, http.MethodGet, "/api/v2/preferences/assistant", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeResponse(t, resp, &prefs)
	require.True(t, prefs.Data.Configured)

	resp = doJSON(t, env.app, http.MethodDelete, "/api/v2/preferences/assistant", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.False(t, env.mini.Exists("preferences:learner:3"))
}

func TestAssistantRequiresConfiguration(t *testing.T) {
	env := setupApp(t, service.AssistantConfig{})
	token := bearer(t, 4)

	resp := doJSON(t, env.app, http.MethodPost, "/api/v2/assistant/explain", dto.AssistantRequest{Code: ".a{}"}, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodPost, "/api/v2/assistant/explain", dto.AssistantRequest{Code: ".a{}"}, token)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodPost, "/api/v2/assistant/explain", dto.AssistantRequest{}, token)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAssistantUsesLearnerPreference(t *testing.T) {
	env := setupApp(t, service.AssistantConfig{Provider: "openai", APIKey: "server-key-0000"})
	token := bearer(t, 5)

	resp := doJSON(t, env.app, http.MethodPost, "/api/v2/assistant/simulate", dto.AssistantRequest{Language: "css", Code: ".a{color:red}", Input: "<a class=\"a\">x</a>"}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out envelope[dto.AssistantResponse]
	decodeResponse(t, resp, &out)
	require.Equal(t, "openai", out.Data.Provider)
	require.Contains(t, out.Data.Text, "generated by openai")

	resp = doJSON(t, env.app, http.MethodPut, "/api/v2/preferences/assistant", dto.AssistantPreferenceRequest{Provider: "openrouter", APIKey: "or-key-98765"}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodPost, "/api/v2/assistant/explain", dto.AssistantRequest{Code: ".a{color:red}"}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeResponse(t, resp, &out)
	require.Equal(t, "openrouter", out.Data.Provider)
}

func TestAssistantRateLimited(t *testing.T) {
	env := setupApp(t, service.AssistantConfig{Provider: "openai", APIKey: "server-key-0000"})
	token := bearer(t, 6)

	for i := 0; i < 3; i++ {
		resp := doJSON(t, env.app, http.MethodPost, "/api/v2/assistant/explain", dto.AssistantRequest{Code: ".a{}"}, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := doJSON(t, env.app, http.MethodPost, "/api/v2/assistant/explain", dto.AssistantRequest{Code: ".a{}"}, token)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodPost, "/api/v2/assistant/explain", dto.AssistantRequest{Code: ".a{}"}, bearer(t, 8))
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
