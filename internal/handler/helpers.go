package handler

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-css-lab/internal/dto"
	"github.com/noah-isme/gema-css-lab/internal/middleware"
	"github.com/noah-isme/gema-css-lab/internal/utils"
)

const stylesheetField = "stylesheet"

var (
	errStylesheetTooLarge = errors.New("stylesheet exceeds the 64 KB limit")
	errStylesheetNotText  = errors.New("stylesheet must be a text file")
	errInvalidPayload     = errors.New("invalid request payload")
)

func learnerIDFromContext(c *fiber.Ctx) uint {
	id, _ := middleware.LearnerID(c)
	return id
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := middleware.RequestLogger(c, base)
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// validationDetails maps each failing field to the rule it broke.
func validationDetails(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	details := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		rule := fieldErr.Tag()
		if fieldErr.Param() != "" {
			rule = fmt.Sprintf("%s=%s", rule, fieldErr.Param())
		}
		details[fieldErr.Field()] = rule
	}
	return details
}

func sendValidationError(c *fiber.Ctx, err error) error {
	return utils.Fail(c, fiber.StatusBadRequest, "validation failed", validationDetails(err))
}

// readStylesheet accepts a JSON {"css": ...} body or a multipart upload in the
// stylesheet field. Uploads are sniffed and must be plain text.
func readStylesheet(c *fiber.Ctx) (string, error) {
	if strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
		return readStylesheetUpload(c)
	}

	var req dto.EvaluateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return "", errInvalidPayload
		}
	}
	if len(req.CSS) > dto.MaxStylesheetBytes {
		return "", errStylesheetTooLarge
	}
	return req.CSS, nil
}

func readStylesheetUpload(c *fiber.Ctx) (string, error) {
	header, err := c.FormFile(stylesheetField)
	if err != nil {
		return "", errInvalidPayload
	}
	if header.Size > dto.MaxStylesheetBytes {
		return "", errStylesheetTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open stylesheet: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, dto.MaxStylesheetBytes+1))
	if err != nil {
		return "", fmt.Errorf("read stylesheet: %w", err)
	}
	if len(data) > dto.MaxStylesheetBytes {
		return "", errStylesheetTooLarge
	}
	if len(data) > 0 && !isText(mimetype.Detect(data)) {
		return "", errStylesheetNotText
	}
	return string(data), nil
}

func isText(mime *mimetype.MIME) bool {
	for m := mime; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// requestErrorStatus maps errors produced while reading a request body.
func requestErrorStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, errStylesheetTooLarge):
		return fiber.StatusRequestEntityTooLarge, true
	case errors.Is(err, errStylesheetNotText):
		return fiber.StatusUnsupportedMediaType, true
	case errors.Is(err, errInvalidPayload):
		return fiber.StatusBadRequest, true
	default:
		return 0, false
	}
}
