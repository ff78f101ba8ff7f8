package utils

import "github.com/gofiber/fiber/v2"

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
	Details interface{} `json:"details,omitempty"`
	Message string      `json:"message"`
}

// Meta describes a collection payload.
type Meta struct {
	Count int `json:"count"`
}

// SendSuccess writes a 200 envelope around data.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	return respond(c, fiber.StatusOK, APIResponse{Success: true, Data: data, Message: message})
}

// SendCollection writes a 200 envelope around a list of count items.
func SendCollection(c *fiber.Ctx, message string, data interface{}, count int) error {
	return respond(c, fiber.StatusOK, APIResponse{Success: true, Data: data, Meta: &Meta{Count: count}, Message: message})
}

// SendError writes a failure envelope with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	return Fail(c, status, message, nil)
}

// Fail writes a failure envelope carrying structured details, such as the
// field rules a request broke.
func Fail(c *fiber.Ctx, status int, message string, details interface{}) error {
	return respond(c, status, APIResponse{Success: false, Details: details, Message: message})
}

func respond(c *fiber.Ctx, status int, body APIResponse) error {
	if body.Message == "" {
		body.Message = "success"
		if !body.Success {
			body.Message = "error"
		}
	}
	if status == 0 {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(body)
}
