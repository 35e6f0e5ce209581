package handlers

import (
	"catalog/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// Response is the uniform envelope every endpoint answers with, success or
// failure. Data is null on any failure.
type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
}

func respond(c *fiber.Ctx, statusCode int, data interface{}, message string) error {
	return c.Status(statusCode).JSON(Response{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
	})
}

// fail converts any error into the envelope, defaulting unclassified
// failures to a 500 with a generic message.
func fail(c *fiber.Ctx, err error) error {
	return respond(c, apperr.StatusOf(err), nil, apperr.MessageOf(err))
}
