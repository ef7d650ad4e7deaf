package notifications

import (
	notifsvc "goodswap-backend/internal/application/notifications"
	"goodswap-backend/internal/middleware"
	"goodswap-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Emitter *notifsvc.StoreEmitter
}

// MyNotifications GET /api/v1/notifications — the caller's notifications,
// newest first.
func (h *Handlers) MyNotifications(c *fiber.Ctx) error {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	out, err := h.Emitter.ListForRecipient(c.Context(), actorID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Notifications fetched successfully", out, fiber.Map{"count": len(out)})
}
