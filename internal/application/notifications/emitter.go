package notifications

import (
	"context"
	"encoding/json"
	"time"

	"goodswap-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Event is one fire-and-forget notification addressed to a user.
type Event struct {
	RecipientID uuid.UUID
	EventType   string
	Title       string
	Body        string
	ClaimID     uuid.UUID
	ClaimKind   string
	Data        map[string]interface{}
}

// Emitter delivers events. Delivery is at-least-attempted: failures are
// logged and never propagated to the caller. Nil = no-op.
type Emitter interface {
	Emit(ctx context.Context, ev Event)
}

// StoreEmitter persists notifications and logs them. Emission runs in its
// own goroutine with a fresh deadline so it stays off the critical path of
// the claim transaction.
type StoreEmitter struct {
	DB *gorm.DB
}

func (e *StoreEmitter) Emit(ctx context.Context, ev Event) {
	go func() {
		emitCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var data datatypes.JSON
		if ev.Data != nil {
			if b, err := json.Marshal(ev.Data); err == nil {
				data = datatypes.JSON(b)
			}
		}
		n := domain.Notification{
			RecipientID: ev.RecipientID,
			EventType:   ev.EventType,
			Title:       ev.Title,
			Body:        ev.Body,
			ClaimID:     ev.ClaimID,
			ClaimKind:   ev.ClaimKind,
			Data:        data,
		}
		if err := e.DB.WithContext(emitCtx).Create(&n).Error; err != nil {
			log.Error().Err(err).
				Str("recipient_id", ev.RecipientID.String()).
				Str("event_type", ev.EventType).
				Str("claim_id", ev.ClaimID.String()).
				Msg("Notification delivery failed")
			return
		}
		log.Info().
			Str("recipient_id", ev.RecipientID.String()).
			Str("event_type", ev.EventType).
			Str("claim_kind", ev.ClaimKind).
			Str("claim_id", ev.ClaimID.String()).
			Msg("Notification emitted")
	}()
}

// ListForRecipient returns a user's notifications, newest first.
func (e *StoreEmitter) ListForRecipient(ctx context.Context, recipientID uuid.UUID) ([]domain.Notification, error) {
	var out []domain.Notification
	err := e.DB.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
