package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-css-lab/internal/dto"
	"github.com/noah-isme/gema-css-lab/internal/service"
	"github.com/noah-isme/gema-css-lab/internal/utils"
)

// AssistantHandler exposes the AI assistant and the learner's provider preferences.
type AssistantHandler struct {
	assistant   service.AssistantService
	preferences service.PreferenceService
	logger      zerolog.Logger
}

// NewAssistantHandler builds an assistant handler instance.
func NewAssistantHandler(assistant service.AssistantService, preferences service.PreferenceService, logger zerolog.Logger) *AssistantHandler {
	return &AssistantHandler{
		assistant:   assistant,
		preferences: preferences,
		logger:      logger.With().Str("component", "assistant_handler").Logger(),
	}
}

// RegisterPreferences wires the routes below /api/v2/preferences.
func (h *AssistantHandler) RegisterPreferences(router fiber.Router) {
	router.Get("/assistant", h.getPreferences)
	router.Put("/assistant", h.savePreferences)
	router.Delete("/assistant", h.deletePreferences)
}

// Register wires the routes below /api/v2/assistant. limiter may be nil.
func (h *AssistantHandler) Register(router fiber.Router, limiter fiber.Handler) {
	if limiter != nil {
		router.Use(limiter)
	}
	router.Post("/explain", h.explain)
	router.Post("/simulate", h.simulate)
}

func (h *AssistantHandler) getPreferences(c *fiber.Ctx) error {
	prefs, err := h.preferences.Get(c.UserContext(), learnerIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "preferences retrieved", prefs)
}

func (h *AssistantHandler) savePreferences(c *fiber.Ctx) error {
	var req dto.AssistantPreferenceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	prefs, err := h.preferences.Save(c.UserContext(), learnerIDFromContext(c), req)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "preferences saved", prefs)
}

func (h *AssistantHandler) deletePreferences(c *fiber.Ctx) error {
	if err := h.preferences.Delete(c.UserContext(), learnerIDFromContext(c)); err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "preferences deleted", nil)
}

func (h *AssistantHandler) explain(c *fiber.Ctx) error {
	var req dto.AssistantRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	out, err := h.assistant.Explain(c.UserContext(), learnerIDFromContext(c), req)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "explanation generated", out)
}

func (h *AssistantHandler) simulate(c *fiber.Ctx) error {
	var req dto.AssistantRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	out, err := h.assistant.Simulate(c.UserContext(), learnerIDFromContext(c), req)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "simulation generated", out)
}

func (h *AssistantHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrLearnerRequired):
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	case errors.Is(err, service.ErrPreferencesUnavailable):
		return utils.SendError(c, fiber.StatusServiceUnavailable, "preference store unavailable")
	case errors.Is(err, service.ErrAssistantUnavailable):
		return utils.SendError(c, fiber.StatusServiceUnavailable, "assistant is not configured")
	case errors.Is(err, service.ErrAssistantFailed):
		requestLogger(h.logger, c).Warn().Err(err).Msg("assistant provider failed")
		return utils.SendError(c, fiber.StatusBadGateway, "assistant provider failed")
	case isValidationError(err):
		return sendValidationError(c, err)
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
