package worker

// notification_worker.go
// Processes delivery jobs from QueueNotifications. Looks up the notification
// row, delivers it over email and/or SMS, and records the terminal status.
// SMS calls go through the circuit breaker with exponential backoff; the
// status transition (pending → sent | failed) happens exactly once.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/infra"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// NotificationJobPayload is the job envelope sent to QueueNotifications.
type NotificationJobPayload struct {
	NotificationID string `json:"notification_id"`
}

// NotificationWorker delivers queued notifications via SMTP and the SMS
// gateway.
type NotificationWorker struct {
	notifRepo repository.NotificationRepository
	mailer    *infra.Mailer
	sms       *infra.SMSClient
	cb        *infra.CircuitBreaker
}

func NewNotificationWorker(
	notifRepo repository.NotificationRepository,
	mailer *infra.Mailer,
	sms *infra.SMSClient,
	cb *infra.CircuitBreaker,
) *NotificationWorker {
	return &NotificationWorker{notifRepo: notifRepo, mailer: mailer, sms: sms, cb: cb}
}

// Process delivers a single notification:
//  1. Parse NotificationJobPayload from the job envelope
//  2. Fetch the notification with its recipient
//  3. Skip rows that already reached a terminal status (redelivery is a no-op)
//  4. Deliver over the configured channel(s)
//  5. Mark sent, or failed with the last delivery error
func (w *NotificationWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload NotificationJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("notification_worker: invalid payload")
		return
	}

	id, err := uuid.Parse(payload.NotificationID)
	if err != nil {
		log.Error().Str("notification_id", payload.NotificationID).Msg("notification_worker: invalid id")
		return
	}

	n, err := w.notifRepo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("notification_id", payload.NotificationID).Msg("notification_worker: not found")
		return
	}
	if n.Status != model.NotificationPending {
		log.Debug().Str("notification_id", payload.NotificationID).Str("status", n.Status).
			Msg("notification_worker: already delivered — skipping")
		return
	}

	var deliveryErr error
	if n.DeliveryMethod == model.DeliveryEmail || n.DeliveryMethod == model.DeliveryBoth {
		deliveryErr = w.deliverEmail(n)
	}
	if deliveryErr == nil && (n.DeliveryMethod == model.DeliverySMS || n.DeliveryMethod == model.DeliveryBoth) {
		deliveryErr = w.deliverSMS(ctx, n)
	}

	if deliveryErr != nil {
		log.Error().Err(deliveryErr).Str("notification_id", payload.NotificationID).
			Msg("notification_worker: delivery failed")
		if err := w.notifRepo.MarkFailed(ctx, n.ID, deliveryErr.Error()); err != nil {
			log.Error().Err(err).Msg("notification_worker: failed to record failure")
		}
		return
	}

	if err := w.notifRepo.MarkSent(ctx, n.ID); err != nil {
		log.Error().Err(err).Msg("notification_worker: failed to record success")
		return
	}
	log.Info().Str("notification_id", payload.NotificationID).Str("method", n.DeliveryMethod).
		Msg("notification_worker: delivered")
}

func (w *NotificationWorker) deliverEmail(n *model.Notification) error {
	if n.Recipient == nil || n.Recipient.Email == nil || *n.Recipient.Email == "" {
		return errNoEmail
	}
	return w.mailer.Send(*n.Recipient.Email, n.Title, n.Message, "")
}

func (w *NotificationWorker) deliverSMS(ctx context.Context, n *model.Notification) error {
	if n.Recipient == nil || n.Recipient.PhoneNumber == nil || *n.Recipient.PhoneNumber == "" {
		return errNoPhone
	}
	return withRetry(ctx, 3, func(attempt int) error {
		return w.cb.Execute(func() error {
			_, err := w.sms.Send(ctx, *n.Recipient.PhoneNumber, n.Message)
			if err != nil {
				log.Warn().Err(err).Int("attempt", attempt+1).
					Str("notification_id", n.ID.String()).
					Msg("notification_worker: SMS attempt failed, retrying")
			}
			return err
		})
	})
}

var (
	errNoEmail = deliveryError("recipient has no email address")
	errNoPhone = deliveryError("recipient has no phone number")
)

type deliveryError string

func (e deliveryError) Error() string { return string(e) }

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			// 1s, 2s … (exponential backoff)
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
