package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/gema-css-lab/internal/catalog"
	"github.com/noah-isme/gema-css-lab/internal/config"
	"github.com/noah-isme/gema-css-lab/internal/handler"
	"github.com/noah-isme/gema-css-lab/internal/middleware"
	"github.com/noah-isme/gema-css-lab/internal/models"
	"github.com/noah-isme/gema-css-lab/internal/preview"
	"github.com/noah-isme/gema-css-lab/internal/repository"
	"github.com/noah-isme/gema-css-lab/internal/router"
	"github.com/noah-isme/gema-css-lab/internal/service"
	"github.com/noah-isme/gema-css-lab/pkg/ai"
)

const testJWTSecret = "handler-secret"

type stubGenerator struct {
	text string
}

func (g stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	return g.text + " (" + fmt.Sprint(len(prompt)) + ")", nil
}

type testApp struct {
	app  *fiber.App
	mini *miniredis.Miniredis
	db   *gorm.DB
}

func setupApp(t *testing.T, assistantCfg service.AssistantConfig) testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ExerciseProgress{}))

	mini, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mini.Close)
	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	exercises, err := catalog.Load()
	require.NoError(t, err)

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)
	previews := preview.NewBuilder()

	progressService := service.NewProgressService(repository.NewProgressRepository(db), exercises, redisClient, 0, logger)
	exerciseService := service.NewExerciseService(exercises, progressService, previews, nil, service.ExerciseServiceConfig{}, logger)
	preferenceService := service.NewPreferenceService(redisClient, validate, logger)
	factory := func(provider ai.Provider, _ string, _ string) (ai.TextGenerator, error) {
		return stubGenerator{text: "generated by " + string(provider)}, nil
	}
	assistantService := service.NewAssistantService(preferenceService, factory, assistantCfg, validate, logger)

	app := fiber.New()
	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, config.Config{AppName: "Test", AppEnv: "test", JWTSecret: testJWTSecret}, router.Dependencies{
		ExerciseHandler:    handler.NewExerciseHandler(exerciseService, logger),
		StyleHandler:       handler.NewStyleHandler(service.NewStyleService(validate, logger), logger),
		PlaygroundHandler:  handler.NewPlaygroundHandler(service.NewPlaygroundService(previews, logger), logger),
		ProgressHandler:    handler.NewProgressHandler(progressService, logger),
		AssistantHandler:   handler.NewAssistantHandler(assistantService, preferenceService, logger),
		ExerciseCount:      exercises.Len(),
		HealthProbes: map[string]handler.HealthProbe{
			"redis": func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		},
		JWTMiddleware:      middleware.JWTProtected(testJWTSecret),
		OptionalJWT:        middleware.JWTOptional(testJWTSecret),
		AssistantRateLimit: middleware.RateLimit("assistant", 3, time.Minute),
	})

	return testApp{app: app, mini: mini, db: db}
}

func bearer(t *testing.T, learnerID uint) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": fmt.Sprint(learnerID)})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, authorization string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}

type envelope[T any] struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    T                 `json:"data"`
	Meta    map[string]int    `json:"meta"`
	Details map[string]string `json:"details"`
}
