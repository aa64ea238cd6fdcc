package repository

import (
	"context"
	"time"

	"github.com/bookswipe/bookswipe-server/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	// Conversation returns all messages between the two users, ordered
	// by created_at ascending.
	Conversation(ctx context.Context, userA, userB int64) ([]domain.Message, error)
	// ConversationSince is the polling-fallback form: messages in the
	// conversation created strictly after the given instant.
	ConversationSince(ctx context.Context, userA, userB int64, after time.Time) ([]domain.Message, error)
}
