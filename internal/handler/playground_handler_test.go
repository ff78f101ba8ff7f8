package handler_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gema-css-lab/internal/dto"
	"github.com/noah-isme/gema-css-lab/internal/service"
)

func TestPlaygroundPreviewSanitizes(t *testing.T) {
	env := setupApp(t, service.AssistantConfig{})

	resp := doJSON(t, env.app, http.MethodPost, "/api/v2/playground/preview", dto.PlaygroundPreviewRequest{
		HTML: `<section class="hero" onclick="steal()">Hi</section><script>alert(1)</script>`,
		CSS:  ".hero{color:red}",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload envelope[dto.PreviewResponse]
	decodeResponse(t, resp, &payload)
	require.Contains(t, payload.Data.Document, `class="hero"`)
	require.NotContains(t, payload.Data.Document, "onclick")
	require.NotContains(t, payload.Data.Document, "alert(1)")

	resp = doJSON(t, env.app, http.MethodPost, "/api/v2/playground/preview", dto.PlaygroundPreviewRequest{CSS: strings.Repeat("a", 70000)}, "")
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestPlaygroundPreviewLimitsCountBytes(t *testing.T) {
	env := setupApp(t, service.AssistantConfig{})

	// 40000 two-byte runes stay under the character count but exceed 64 KB.
	wide := strings.Repeat("é", 40000)
	resp := doJSON(t, env.app, http.MethodPost, "/api/v2/playground/preview", dto.PlaygroundPreviewRequest{CSS: "/*" + wide + "*/"}, "")
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodPost, "/api/v2/playground/preview", dto.PlaygroundPreviewRequest{HTML: "<p>" + wide + "</p>"}, "")
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodPost, "/api/v2/playground/preview", dto.PlaygroundPreviewRequest{
		HTML: "<p>" + strings.Repeat("é", 30000) + "</p>",
		CSS:  "p{color:red}",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProgressRequiresLearner(t *testing.T) {
	env := setupApp(t, service.AssistantConfig{})

	resp := doJSON(t, env.app, http.MethodGet, "/api/v2/progress", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodGet, "/api/v2/progress", nil, bearer(t, 9))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary envelope[dto.ProgressSummaryResponse]
	decodeResponse(t, resp, &summary)
	require.Equal(t, 0, summary.Data.Attempted)
	require.Greater(t, summary.Data.TotalExercises, 0)
}

func TestProgressForExercise(t *testing.T) {
	env := setupApp(t, service.AssistantConfig{})
	token := bearer(t, 12)

	resp := doJSON(t, env.app, http.MethodGet, "/api/v2/progress/style-nav", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodGet, "/api/v2/progress/style-nav", nil, token)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodGet, "/api/v2/progress/unknown", nil, token)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodPost, "/api/v2/exercises/style-nav/evaluate", dto.EvaluateRequest{CSS: navSolution(t)}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodGet, "/api/v2/progress/style-nav", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var progress envelope[dto.ProgressResponse]
	decodeResponse(t, resp, &progress)
	require.Equal(t, "style-nav", progress.Data.ExerciseID)
	require.Equal(t, 1, progress.Data.Attempts)
	require.GreaterOrEqual(t, progress.Data.BestScore, 90)
}

func TestHealthAndMetrics(t *testing.T) {
	env := setupApp(t, service.AssistantConfig{})

	resp := doJSON(t, env.app, http.MethodGet, "/api/v1/health", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Test", resp.Header.Get("X-Application"))
	require.NotEmpty(t, resp.Header.Get("X-Correlation-ID"))

	var health envelope[map[string]interface{}]
	decodeResponse(t, resp, &health)
	require.Equal(t, "ok", health.Data["status"])
	require.EqualValues(t, 5, health.Data["exercises"])
	require.Equal(t, map[string]interface{}{"redis": "ok"}, health.Data["checks"])

	env.mini.Close()
	resp = doJSON(t, env.app, http.MethodGet, "/api/v1/health", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeResponse(t, resp, &health)
	require.Equal(t, "degraded", health.Data["status"])

	_ = doJSON(t, env.app, http.MethodGet, "/api/v2/exercises", nil, "")

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "css_lab_requests_total")
	require.Contains(t, string(body), "css_lab_catalog_exercises 5")
}
