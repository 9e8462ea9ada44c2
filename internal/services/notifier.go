package services

import (
	"context"
	"fmt"

	"dating-app-backend/internal/config"
	"dating-app-backend/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/certificate"
	"github.com/sideshow/apns2/payload"
)

// Notifier delivers events to a user over their WebSocket when they are
// online and as an APNs push otherwise. Delivery failures are logged.
type Notifier struct {
	hub   *WSHub
	store *repository.Store
	push  *apns2.Client
	topic string
}

// NewNotifier creates a notifier. Push is disabled when cfg has no certificate.
func NewNotifier(hub *WSHub, store *repository.Store, cfg config.APNsConfig) (*Notifier, error) {
	n := &Notifier{hub: hub, store: store, topic: cfg.Topic}
	if cfg.CertificatePath == "" {
		return n, nil
	}

	cert, err := certificate.FromP12File(cfg.CertificatePath, cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to load APNs certificate: %w", err)
	}

	client := apns2.NewClient(cert)
	if cfg.Production {
		client = client.Production()
	} else {
		client = client.Development()
	}
	n.push = client

	log.Info().Bool("production", cfg.Production).Str("topic", cfg.Topic).Msg("APNs push enabled")
	return n, nil
}

// Notify sends event to userID
func (n *Notifier) Notify(ctx context.Context, userID int, event WSMessage) {
	if n.hub.IsOnline(userID) {
		err := n.hub.SendToUser(userID, event)
		if err == nil {
			return
		}
		log.Warn().Err(err).Int("user_id", userID).Str("type", event.Type).Msg("WebSocket delivery failed, falling back to push")
	}

	if n.push == nil {
		return
	}

	if err := n.sendPush(ctx, userID, event); err != nil {
		log.Error().Err(err).Int("user_id", userID).Str("type", event.Type).Msg("Failed to send push notification")
	}
}

func (n *Notifier) sendPush(ctx context.Context, userID int, event WSMessage) error {
	user, err := n.store.Repository().GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.PushToken == nil || *user.PushToken == "" {
		return nil
	}

	p := payload.NewPayload().
		AlertTitle(pushTitle(event.Type)).
		Sound("default").
		Custom("type", event.Type)
	if event.Message != "" {
		p = p.AlertBody(event.Message)
	}
	if event.SenderID != 0 {
		p = p.Custom("senderId", event.SenderID)
	}

	res, err := n.push.PushWithContext(ctx, &apns2.Notification{
		DeviceToken: *user.PushToken,
		Topic:       n.topic,
		Payload:     p,
	})
	if err != nil {
		return fmt.Errorf("failed to push: %w", err)
	}
	if !res.Sent() {
		return fmt.Errorf("push rejected: %d %s", res.StatusCode, res.Reason)
	}

	log.Debug().Int("user_id", userID).Str("apns_id", res.ApnsID).Msg("Push notification sent")
	return nil
}

func pushTitle(eventType string) string {
	switch eventType {
	case EventNewMessage:
		return "New message"
	case EventNewLike:
		return "Someone likes you"
	case EventMessageRead:
		return "Message read"
	default:
		return "Notification"
	}
}
