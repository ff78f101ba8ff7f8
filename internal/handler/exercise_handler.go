package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-css-lab/internal/dto"
	"github.com/noah-isme/gema-css-lab/internal/service"
	"github.com/noah-isme/gema-css-lab/internal/utils"
)

// ExerciseHandler exposes the exercise catalog, grading and previews.
type ExerciseHandler struct {
	service service.ExerciseService
	logger  zerolog.Logger
}

// NewExerciseHandler builds an exercise handler instance.
func NewExerciseHandler(service service.ExerciseService, logger zerolog.Logger) *ExerciseHandler {
	return &ExerciseHandler{
		service: service,
		logger:  logger.With().Str("component", "exercise_handler").Logger(),
	}
}

// Register wires the routes below /api/v2/exercises.
func (h *ExerciseHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Get("/:id/solution", h.solution)
	router.Post("/:id/evaluate", h.evaluate)
	router.Post("/:id/preview", h.preview)
}

func (h *ExerciseHandler) list(c *fiber.Ctx) error {
	exercises := h.service.List()
	return utils.SendCollection(c, "exercises retrieved", exercises, len(exercises.Items))
}

func (h *ExerciseHandler) get(c *fiber.Ctx) error {
	exercise, err := h.service.Get(c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "exercise retrieved", exercise)
}

func (h *ExerciseHandler) solution(c *fiber.Ctx) error {
	solution, err := h.service.Solution(c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "solution retrieved", solution)
}

func (h *ExerciseHandler) evaluate(c *fiber.Ctx) error {
	css, err := readStylesheet(c)
	if err != nil {
		return h.handleError(c, err)
	}

	result, err := h.service.Evaluate(c.UserContext(), learnerIDFromContext(c), c.Params("id"), css)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "stylesheet evaluated", result)
}

func (h *ExerciseHandler) preview(c *fiber.Ctx) error {
	var req dto.PreviewRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
		}
	}

	out, err := h.service.Preview(c.Params("id"), req.CSS)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "preview rendered", out)
}

func (h *ExerciseHandler) handleError(c *fiber.Ctx, err error) error {
	if status, ok := requestErrorStatus(err); ok {
		return utils.SendError(c, status, err.Error())
	}

	switch {
	case errors.Is(err, service.ErrExerciseNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "exercise not found")
	case errors.Is(err, service.ErrStylesheetTooLarge):
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, errStylesheetTooLarge.Error())
	case isValidationError(err):
		return sendValidationError(c, err)
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
