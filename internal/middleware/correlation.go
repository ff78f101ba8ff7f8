package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	correlationHeader = "X-Correlation-ID"
	correlationLocal  = "correlation_id"
	maxCorrelationLen = 128
)

// incomingCorrelationHeaders are checked in order; the first usable value wins.
var incomingCorrelationHeaders = []string{correlationHeader, fiber.HeaderXRequestID}

type correlationKey struct{}

// CorrelationID tags every request with an identifier that is echoed back in
// X-Correlation-ID and carried on the user context into services and events.
// Client supplied ids are reused when they are short printable tokens.
func CorrelationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := ""
		for _, header := range incomingCorrelationHeaders {
			if candidate := strings.TrimSpace(c.Get(header)); usableCorrelationID(candidate) {
				id = candidate
				break
			}
		}
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(correlationLocal, id)
		c.Set(correlationHeader, id)
		c.SetUserContext(context.WithValue(c.UserContext(), correlationKey{}, id))
		return c.Next()
	}
}

func usableCorrelationID(id string) bool {
	if id == "" || len(id) > maxCorrelationLen {
		return false
	}
	for _, r := range id {
		if r < '!' || r > '~' {
			return false
		}
	}
	return true
}

// CorrelationIDFromContext returns the identifier stored by CorrelationID or
// ContextWithCorrelation.
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// GetCorrelationID returns the identifier bound to the active request.
func GetCorrelationID(c *fiber.Ctx) string {
	if c == nil {
		return ""
	}
	if id, ok := c.Locals(correlationLocal).(string); ok {
		return id
	}
	return CorrelationIDFromContext(c.UserContext())
}

// ContextWithCorrelation attaches id to ctx. Websocket sessions use it because
// they outlive the fiber context that carried the request.
func ContextWithCorrelation(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, correlationKey{}, id)
}

// RequestLogger returns base enriched with the request's correlation id and,
// when authenticated, the learner id.
func RequestLogger(c *fiber.Ctx, base zerolog.Logger) zerolog.Logger {
	logCtx := base.With()
	if id := GetCorrelationID(c); id != "" {
		logCtx = logCtx.Str("correlation_id", id)
	}
	if learnerID, ok := LearnerID(c); ok {
		logCtx = logCtx.Uint("learner_id", learnerID)
	}
	return logCtx.Logger()
}
