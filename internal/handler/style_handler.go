package handler

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-css-lab/internal/dto"
	"github.com/noah-isme/gema-css-lab/internal/middleware"
	"github.com/noah-isme/gema-css-lab/internal/observability"
	"github.com/noah-isme/gema-css-lab/internal/service"
	"github.com/noah-isme/gema-css-lab/internal/utils"
	"github.com/noah-isme/gema-css-lab/pkg/cssgen"
)

// StyleHandler serves the declaration editors over REST and a websocket stream.
type StyleHandler struct {
	service service.StyleService
	logger  zerolog.Logger
}

// NewStyleHandler creates a style handler instance.
func NewStyleHandler(service service.StyleService, logger zerolog.Logger) *StyleHandler {
	return &StyleHandler{
		service: service,
		logger:  logger.With().Str("component", "style_handler").Logger(),
	}
}

// Register binds style routes under the provided router group.
func (h *StyleHandler) Register(router fiber.Router) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			ctx := c.UserContext()
			if ctx == nil {
				ctx = context.Background()
			}
			c.Locals("request_ctx", middleware.ContextWithCorrelation(ctx, middleware.GetCorrelationID(c)))
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	router.Get("/ws", websocket.New(h.stream))
	router.Get("", h.list)
	router.Post("/:property", h.format)
}

func (h *StyleHandler) list(c *fiber.Ctx) error {
	editors := h.service.Properties()
	return utils.SendCollection(c, "style editors retrieved", editors, len(editors))
}

func (h *StyleHandler) format(c *fiber.Ctx) error {
	var params json.RawMessage
	if body := c.Body(); len(body) > 0 {
		if !json.Valid(body) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
		}
		params = json.RawMessage(body)
	}

	out, err := h.service.Format(c.Params("property"), params)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "declaration formatted", out)
}

// stream answers every {property, params} frame with the formatted declaration.
// Bad frames get an error frame and the connection stays open.
func (h *StyleHandler) stream(conn *websocket.Conn) {
	correlation := ""
	if ctx, ok := conn.Locals("request_ctx").(context.Context); ok {
		correlation = middleware.CorrelationIDFromContext(ctx)
	}
	logger := h.logger.With().Str("correlation_id", correlation).Logger()
	observability.StyleStreamsActive().Inc()
	logger.Debug().Msg("style stream connected")
	defer func() {
		observability.StyleStreamsActive().Dec()
		logger.Debug().Msg("style stream disconnected")
	}()

	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var req dto.StyleFormatRequest
		if err := json.Unmarshal(payload, &req); err != nil || req.Property == "" {
			if writeErr := conn.WriteJSON(dto.StyleStreamError{Error: "frame must be a JSON object with a property"}); writeErr != nil {
				return
			}
			continue
		}

		out, err := h.service.Format(req.Property, req.Params)
		if err != nil {
			if writeErr := conn.WriteJSON(dto.StyleStreamError{Error: styleErrorMessage(err)}); writeErr != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(out); err != nil {
			logger.Warn().Err(err).Msg("failed to write style frame")
			return
		}
	}
}

func styleErrorMessage(err error) string {
	switch {
	case errors.Is(err, cssgen.ErrUnknownProperty):
		return "unknown property"
	case errors.Is(err, service.ErrInvalidStyleParams):
		return "invalid parameters"
	case isValidationError(err):
		return "parameters out of range"
	default:
		return "format failed"
	}
}

func (h *StyleHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, cssgen.ErrUnknownProperty):
		return utils.SendError(c, fiber.StatusNotFound, "unknown property")
	case errors.Is(err, service.ErrInvalidStyleParams):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid parameters")
	case isValidationError(err):
		return sendValidationError(c, err)
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
