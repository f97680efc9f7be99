package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ragdocs/internal/service"
)

// errorPayload defines the error response body.
type errorPayload struct {
	Error string `json:"error"`
}

// clientMessages are the 400 messages for invalid input, keyed by service sentinel.
var clientMessages = []struct {
	err error
	msg string
}{
	{service.ErrEmptyFilename, "No selected file"},
	{service.ErrNotPDF, "Invalid file type, only PDF is allowed"},
	{service.ErrInvalidFilename, "Invalid filename"},
	{service.ErrNoFilename, "No filename provided"},
	{service.ErrNoPrompt, "No prompt provided"},
}

// writeError writes a JSON error response.
func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorPayload{Error: message})
}

// statusFor maps a service error to the HTTP status and message returned to the client.
// Upstream failures carry the upstream error text.
func statusFor(err error) (int, string) {
	if service.KindOf(err) == service.KindInvalidInput {
		for _, m := range clientMessages {
			if errors.Is(err, m.err) {
				return fiber.StatusBadRequest, m.msg
			}
		}
		return fiber.StatusBadRequest, err.Error()
	}
	return fiber.StatusInternalServerError, err.Error()
}

func writeServiceError(c *fiber.Ctx, err error) error {
	status, msg := statusFor(err)
	return writeError(c, status, msg)
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "Bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "Not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "Method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "File too large")
		default:
			return writeError(c, status, "Internal server error")
		}
	}
}
