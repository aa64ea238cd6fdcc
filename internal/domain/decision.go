package domain

import "time"

// Decision records a user's like/pass on a book. At most one row exists
// per (user_id, book_id); a later decision for the same pair supersedes
// the earlier one.
type Decision struct {
	UserID    int64     `json:"user_id" db:"user_id"`
	BookID    int64     `json:"book_id" db:"book_id"`
	Liked     bool      `json:"liked" db:"liked"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// BookLiker is one (user, book) pair from a bulk likers query.
type BookLiker struct {
	UserID int64 `db:"user_id"`
	BookID int64 `db:"book_id"`
}
