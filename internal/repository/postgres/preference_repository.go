package postgres

import (
	"context"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	"github.com/bookswipe/bookswipe-server/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type preferenceRepository struct {
	db *sqlx.DB
}

func NewPreferenceRepository(db *sqlx.DB) repository.PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) Upsert(ctx context.Context, decision *domain.Decision) error {
	query := `
		INSERT INTO user_book_preferences (user_id, book_id, liked)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, book_id)
		DO UPDATE SET liked = EXCLUDED.liked, updated_at = CURRENT_TIMESTAMP
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query, decision.UserID, decision.BookID, decision.Liked).
		Scan(&decision.CreatedAt, &decision.UpdatedAt)
}

func (r *preferenceRepository) MutualLikers(ctx context.Context, bookID, excludeUserID int64) ([]int64, error) {
	var userIDs []int64
	query := `
		SELECT user_id FROM user_book_preferences
		WHERE book_id = $1 AND user_id <> $2 AND liked = true
	`
	err := r.db.SelectContext(ctx, &userIDs, query, bookID, excludeUserID)
	return userIDs, err
}

func (r *preferenceRepository) LikedBookIDs(ctx context.Context, userID int64) ([]int64, error) {
	var bookIDs []int64
	query := `
		SELECT book_id FROM user_book_preferences
		WHERE user_id = $1 AND liked = true
	`
	err := r.db.SelectContext(ctx, &bookIDs, query, userID)
	return bookIDs, err
}

func (r *preferenceRepository) LikersOf(ctx context.Context, bookIDs []int64, excludeUserID int64) ([]domain.BookLiker, error) {
	if len(bookIDs) == 0 {
		return nil, nil
	}
	var likers []domain.BookLiker
	// created_at in the ordering keeps first-encounter grouping stable
	// across calls, which the scorer's tie-break depends on.
	query := `
		SELECT user_id, book_id FROM user_book_preferences
		WHERE book_id = ANY($1) AND user_id <> $2 AND liked = true
		ORDER BY created_at, user_id
	`
	err := r.db.SelectContext(ctx, &likers, query, pq.Array(bookIDs), excludeUserID)
	return likers, err
}
