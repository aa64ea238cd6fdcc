package repository

import (
	"context"

	"github.com/bookswipe/bookswipe-server/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	// GetByUserIDs batch-resolves profiles for the roster in one round
	// trip. Users without a profile row are simply absent from the map.
	GetByUserIDs(ctx context.Context, userIDs []int64) (map[int64]*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}
