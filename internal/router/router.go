package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/gema-css-lab/internal/config"
	"github.com/noah-isme/gema-css-lab/internal/handler"
	"github.com/noah-isme/gema-css-lab/internal/middleware"
	"github.com/noah-isme/gema-css-lab/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ExerciseHandler    *handler.ExerciseHandler
	StyleHandler       *handler.StyleHandler
	PlaygroundHandler  *handler.PlaygroundHandler
	ProgressHandler    *handler.ProgressHandler
	AssistantHandler   *handler.AssistantHandler
	ExerciseCount      int
	HealthProbes       map[string]handler.HealthProbe
	JWTMiddleware      fiber.Handler
	OptionalJWT        fiber.Handler
	AssistantRateLimit fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.ExerciseCount, deps.HealthProbes))
	app.Get("/metrics", observability.MetricsHandler(deps.ExerciseCount))

	noop := func(c *fiber.Ctx) error { return c.Next() }

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = noop
	}
	optionalJWT := deps.OptionalJWT
	if optionalJWT == nil {
		optionalJWT = noop
	}

	v2 := app.Group("/api/v2")

	if deps.ExerciseHandler != nil {
		deps.ExerciseHandler.Register(v2.Group("/exercises", optionalJWT))
	}

	if deps.StyleHandler != nil {
		deps.StyleHandler.Register(v2.Group("/styles", optionalJWT))
	}

	if deps.PlaygroundHandler != nil {
		deps.PlaygroundHandler.Register(v2.Group("/playground", optionalJWT))
	}

	if deps.ProgressHandler != nil {
		deps.ProgressHandler.Register(v2.Group("/progress", jwtMiddleware, middleware.RequireLearner()))
	}

	if deps.AssistantHandler != nil {
		deps.AssistantHandler.RegisterPreferences(v2.Group("/preferences", jwtMiddleware, middleware.RequireLearner()))
		deps.AssistantHandler.Register(v2.Group("/assistant", jwtMiddleware, middleware.RequireLearner()), deps.AssistantRateLimit)
	}
}
