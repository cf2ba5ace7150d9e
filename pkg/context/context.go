package context

import (
	"HeadTurner/pkg/log"
	"context"
	"github.com/gofiber/fiber/v2"
)

const localRequestID = "X-Request-ID"

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, log.RequestIDKey, requestID)
}

// FromFiberCtx derives a request context carrying the request id; it is
// cancelled together with the fiber user context.
func FromFiberCtx(c *fiber.Ctx) context.Context {
	requestID, ok := c.Locals(localRequestID).(string)
	if !ok || requestID == "" {
		requestID = c.Get(localRequestID)

		if requestID == "" {
			requestID = "unknown"
		}
	}

	return WithRequestID(c.UserContext(), requestID)
}
