package middleware

import (
	"goodswap-backend/internal/pkg/apperrors"
	"goodswap-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler is the global error handler. Classified service errors keep
// their taxonomy status; everything else is a 500 logged with trace context.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return response.Error(c, e.Message, e.Code, nil)
	}
	if apperrors.KindOf(err) != apperrors.Internal {
		return response.FromError(c, err)
	}
	log.Error().Str("trace_id", GetTraceID(c)).Str("path", c.Path()).Err(err).Msg("Unhandled error")
	return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
}
