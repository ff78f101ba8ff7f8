package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-css-lab/internal/dto"
	"github.com/noah-isme/gema-css-lab/internal/service"
	"github.com/noah-isme/gema-css-lab/internal/utils"
)

// PlaygroundHandler renders free-form previews.
type PlaygroundHandler struct {
	service service.PlaygroundService
	logger  zerolog.Logger
}

// NewPlaygroundHandler builds a playground handler instance.
func NewPlaygroundHandler(service service.PlaygroundService, logger zerolog.Logger) *PlaygroundHandler {
	return &PlaygroundHandler{
		service: service,
		logger:  logger.With().Str("component", "playground_handler").Logger(),
	}
}

// Register wires the routes below /api/v2/playground.
func (h *PlaygroundHandler) Register(router fiber.Router) {
	router.Post("/preview", h.preview)
}

func (h *PlaygroundHandler) preview(c *fiber.Ctx) error {
	var req dto.PlaygroundPreviewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	out, err := h.service.Preview(req)
	if err != nil {
		if errors.Is(err, service.ErrStylesheetTooLarge) || errors.Is(err, service.ErrMarkupTooLarge) {
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
	return utils.SendSuccess(c, "preview rendered", out)
}
