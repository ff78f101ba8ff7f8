package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-css-lab/internal/service"
	"github.com/noah-isme/gema-css-lab/internal/utils"
)

// ProgressHandler reports the authenticated learner's progress.
type ProgressHandler struct {
	service service.ProgressService
	logger  zerolog.Logger
}

// NewProgressHandler builds a progress handler instance.
func NewProgressHandler(service service.ProgressService, logger zerolog.Logger) *ProgressHandler {
	return &ProgressHandler{
		service: service,
		logger:  logger.With().Str("component", "progress_handler").Logger(),
	}
}

// Register wires the routes below /api/v2/progress.
func (h *ProgressHandler) Register(router fiber.Router) {
	router.Get("", h.summary)
	router.Get("/:exerciseId", h.exercise)
}

func (h *ProgressHandler) summary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.UserContext(), learnerIDFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrLearnerRequired) {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
	return utils.SendSuccess(c, "progress retrieved", summary)
}

func (h *ProgressHandler) exercise(c *fiber.Ctx) error {
	progress, err := h.service.Get(c.UserContext(), learnerIDFromContext(c), c.Params("exerciseId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLearnerRequired):
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		case errors.Is(err, service.ErrExerciseNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "exercise not found")
		case errors.Is(err, service.ErrProgressNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "no attempts recorded for this exercise")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
	return utils.SendSuccess(c, "progress retrieved", progress)
}
