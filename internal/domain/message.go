package domain

import "time"

// Message is one chat message between two matched users. The ID is
// assigned by the sender before persisting, so realtime and polling
// consumers can deduplicate by identity.
type Message struct {
	ID          string    `json:"id" db:"id"`
	SenderID    int64     `json:"sender_id" db:"sender_id"`
	RecipientID int64     `json:"recipient_id" db:"recipient_id"`
	Content     string    `json:"content" db:"content"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Between reports whether the message belongs to the conversation
// between the two given users, in either direction.
func (m *Message) Between(userA, userB int64) bool {
	return (m.SenderID == userA && m.RecipientID == userB) ||
		(m.SenderID == userB && m.RecipientID == userA)
}
