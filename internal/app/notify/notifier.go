package notify

import (
	"context"
	"fmt"

	"tradesupport/internal/app/outbox"

	log "github.com/sirupsen/logrus"
)

const viewRequestLabel = "View Request"

// Notifier обработчик событий KindEmail
type Notifier struct {
	sender    Sender
	publicURL string
}

func NewNotifier(sender Sender, publicURL string) *Notifier {
	return &Notifier{sender: sender, publicURL: publicURL}
}

func (n *Notifier) Handle(ctx context.Context, event outbox.Event) error {
	email, ok := event.Payload.(outbox.Email)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Kind)
	}

	body, err := RenderEmail(email.Message, RequestURL(n.publicURL, event.RequestID), viewRequestLabel)
	if err != nil {
		return fmt.Errorf("render email: %w", err)
	}

	if err := n.sender.Send(ctx, email.To, email.Subject, body); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"request_id": event.RequestID,
		"to":         email.To,
	}).Info("notification sent")
	return nil
}
