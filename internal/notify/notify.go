// Package notify delivers short messages to the devices an owner registered.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Notifier sends a message to every device of an owner. Delivery is
// fire-and-forget from the caller's point of view: callers log failures and
// carry on.
type Notifier interface {
	NotifyDevices(ctx context.Context, owner uuid.UUID, msg Message) error
}

type Message struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// envelope is the wire form consumed by the push gateway.
type envelope struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Message   Message   `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func newEnvelope(owner uuid.UUID, msg Message, now time.Time) envelope {
	return envelope{ID: uuid.New(), OwnerID: owner, Message: msg, Timestamp: now.UTC()}
}

func (e envelope) toJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LogNotifier only logs messages. It is used when no broker is configured.
type LogNotifier struct{}

func (LogNotifier) NotifyDevices(ctx context.Context, owner uuid.UUID, msg Message) error {
	slog.InfoContext(ctx, "device notification", "owner", owner, "title", msg.Title, "body", msg.Body)
	return nil
}
