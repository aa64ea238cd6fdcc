package postgres

import (
	"context"
	"time"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	"github.com/bookswipe/bookswipe-server/internal/repository"
	"github.com/jmoiron/sqlx"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (id, sender_id, recipient_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query, message.ID, message.SenderID, message.RecipientID, message.Content).
		Scan(&message.CreatedAt)
}

func (r *messageRepository) Conversation(ctx context.Context, userA, userB int64) ([]domain.Message, error) {
	var messages []domain.Message
	query := `
		SELECT * FROM messages
		WHERE (sender_id = $1 AND recipient_id = $2)
		   OR (sender_id = $2 AND recipient_id = $1)
		ORDER BY created_at ASC
	`
	err := r.db.SelectContext(ctx, &messages, query, userA, userB)
	return messages, err
}

func (r *messageRepository) ConversationSince(ctx context.Context, userA, userB int64, after time.Time) ([]domain.Message, error) {
	var messages []domain.Message
	query := `
		SELECT * FROM messages
		WHERE ((sender_id = $1 AND recipient_id = $2)
		   OR (sender_id = $2 AND recipient_id = $1))
		  AND created_at > $3
		ORDER BY created_at ASC
	`
	err := r.db.SelectContext(ctx, &messages, query, userA, userB, after)
	return messages, err
}
