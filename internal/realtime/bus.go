package realtime

import (
	"context"
	"time"

	"github.com/bookswipe/bookswipe-server/internal/domain"
)

// Event is a chat-message insert broadcast to subscribers. Delivery is
// at-least-once; consumers deduplicate by MessageID.
type Event struct {
	MessageID   string    `json:"message_id"`
	SenderID    int64     `json:"sender_id"`
	RecipientID int64     `json:"recipient_id"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

// EventFromMessage builds the broadcast payload for a persisted message.
func EventFromMessage(m *domain.Message) Event {
	return Event{
		MessageID:   m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		CreatedAt:   m.CreatedAt,
	}
}

// Message converts the event back into the domain shape consumers use.
func (e Event) Message() domain.Message {
	return domain.Message{
		ID:          e.MessageID,
		SenderID:    e.SenderID,
		RecipientID: e.RecipientID,
		Content:     e.Content,
		CreatedAt:   e.CreatedAt,
	}
}

// Bus is the subscribe-to-insert channel over the message store.
type Bus interface {
	Publish(ctx context.Context, ev Event) error
	// Subscribe registers the handler and returns only after the
	// subscription is confirmed active; a nil error therefore means the
	// consumer may pause any fallback mechanism. The returned channel is
	// closed when delivery stops for any reason, including ctx
	// cancellation; the caller decides via its own ctx whether that is a
	// teardown or a loss it must fall back from.
	Subscribe(ctx context.Context, onEvent func(Event)) (<-chan struct{}, error)
	Close() error
}
