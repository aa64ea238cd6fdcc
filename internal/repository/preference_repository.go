package repository

import (
	"context"

	"github.com/bookswipe/bookswipe-server/internal/domain"
)

// PreferenceRepository is the store adapter for like/pass decisions.
// Upsert is keyed on (user_id, book_id): recording the same decision
// twice leaves state equivalent to recording it once.
type PreferenceRepository interface {
	Upsert(ctx context.Context, decision *domain.Decision) error
	// MutualLikers returns every other user with liked=true for the book.
	MutualLikers(ctx context.Context, bookID, excludeUserID int64) ([]int64, error)
	LikedBookIDs(ctx context.Context, userID int64) ([]int64, error)
	// LikersOf is the bulk form used by the affinity scorer: one row per
	// (other user, book) like over the given book set.
	LikersOf(ctx context.Context, bookIDs []int64, excludeUserID int64) ([]domain.BookLiker, error)
}
