package handlerUtil

import (
	"HeadTurner/internal/entity"
	"HeadTurner/pkg/log"
	"HeadTurner/pkg/response"
	"errors"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const localRequestID = "X-Request-ID"

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// Handle turns err into a failure body. Every path logs and answers; the
// process never panics on a failed edit.
func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	kind := response.KindOf(err)

	if kind != entity.FailureUnexpected {
		code := response.StatusOf(err)
		entry := h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       code,
			"kind":       kind,
			"path":       path,
			"operation":  operation,
		})
		if code >= fiber.StatusInternalServerError {
			entry.Error("Operation failed upstream")
		} else {
			entry.Warn("Operation failed with error response")
		}

		return c.Status(code).JSON(entity.NewEditFailure(kind, err.Error()).Payload())
	}

	traceID := log.ErrorWithTraceID(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}, "Unexpected error")

	result := entity.NewEditFailure(entity.FailureUnexpected, "An unexpected error occurred")
	result.Failure.TraceID = traceID

	return c.Status(fiber.StatusInternalServerError).JSON(result.Payload())
}

// FiberErrorHandler is installed as the app's fiber.Config.ErrorHandler so
// errors raised by fiber itself (router misses, oversized bodies, refused
// upgrades) answer with the same failure body as the handlers.
func (h *ErrorHandler) FiberErrorHandler(c *fiber.Ctx, err error) error {
	requestID, ok := c.Locals(localRequestID).(string)
	if !ok || requestID == "" {
		requestID = "unknown"
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		kind := response.KindForStatus(fiberErr.Code)
		if kind != entity.FailureUnexpected {
			err = &response.Error{Code: fiberErr.Code, Kind: kind, Err: fiberErr}
		}
	}

	return h.Handle(c, requestID, err, c.Path(), "fiber")
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(
		entity.NewEditFailure(entity.FailureValidation, "Validation failed: "+err.Error()).Payload(),
	)
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
