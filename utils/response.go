package utils

import (
	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Error codes surfaced in API error payloads.
const (
	CodeValidation = "validation_error"
	CodeNotFound   = "not_found"
	CodeAuthFailed = "authentication_failed"
	CodePermission = "permission_denied"
	CodeInternal   = "internal_error"
)

// ErrorResponse creates a standardized error response
func ErrorResponse(c *fiber.Ctx, status int, code, message string, err error) error {
	response := fiber.Map{
		"success": false,
		"code":    code,
		"error":   message,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	return c.Status(status).JSON(response)
}

// SuccessResponse creates a standardized success response
func SuccessResponse(data interface{}) fiber.Map {
	return fiber.Map{
		"success": true,
		"data":    data,
	}
}

// ServerError reports an unexpected failure and answers with a generic 500.
func ServerError(c *fiber.Ctx, message string, err error) error {
	logrus.WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"error":  err,
	}).Error(message)

	if err != nil {
		sentry.CaptureException(err)
	}

	return ErrorResponse(c, fiber.StatusInternalServerError, CodeInternal, message, err)
}
