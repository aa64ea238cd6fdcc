package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	"github.com/bookswipe/bookswipe-server/internal/pkg/logger"
	"github.com/bookswipe/bookswipe-server/internal/realtime"
	"github.com/bookswipe/bookswipe-server/internal/repository"
)

type ChatUseCase struct {
	messages repository.MessageRepository
	bus      realtime.Bus
	feed     *realtime.Feed
	log      *logger.Logger
}

func NewChatUseCase(
	messages repository.MessageRepository,
	bus realtime.Bus,
	feed *realtime.Feed,
	log *logger.Logger,
) *ChatUseCase {
	return &ChatUseCase{
		messages: messages,
		bus:      bus,
		feed:     feed,
		log:      log,
	}
}

// Send persists the message and broadcasts its insert event. The
// message id is assigned up front so every delivery path carries the
// same identity. A broadcast failure is logged and swallowed: the
// recipient's polling fallback will pick the row up.
func (uc *ChatUseCase) Send(ctx context.Context, senderID, recipientID int64, content string) (*domain.Message, error) {
	if senderID == recipientID {
		return nil, domain.ErrCannotChatSelf
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrEmptyMessage
	}

	msg := &domain.Message{
		ID:          uuid.NewString(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
	}
	if err := uc.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	if err := uc.bus.Publish(ctx, realtime.EventFromMessage(msg)); err != nil {
		uc.log.Warn("message broadcast failed", "message_id", msg.ID, "error", err)
	}
	return msg, nil
}

// History returns the full conversation, oldest first.
func (uc *ChatUseCase) History(ctx context.Context, userID, otherID int64) ([]domain.Message, error) {
	msgs, err := uc.messages.Conversation(ctx, userID, otherID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	return msgs, nil
}

// Stream opens the live deduplicated feed for the conversation.
func (uc *ChatUseCase) Stream(ctx context.Context, userID, otherID int64) <-chan domain.Message {
	return uc.feed.Open(ctx, userID, otherID)
}
