package match

import (
	"context"
	"fmt"

	"github.com/bookswipe/bookswipe-server/internal/pkg/logger"
	"github.com/bookswipe/bookswipe-server/internal/repository"
)

// Detector surfaces match partners for a single recorded like. It is
// only consulted after a like is persisted; a pass never reaches it.
type Detector struct {
	prefs repository.PreferenceRepository
	log   *logger.Logger
}

func NewDetector(prefs repository.PreferenceRepository, log *logger.Logger) *Detector {
	return &Detector{
		prefs: prefs,
		log:   log,
	}
}

// OnLikeRecorded returns every other user who has liked the same book.
// Each returned id counts as "matched on this action": the set is not
// deduplicated against earlier matches, so a repeat mutual like raises
// the match signal again. The UI notifies per book, not per pair.
func (d *Detector) OnLikeRecorded(ctx context.Context, userID, bookID int64) ([]int64, error) {
	partners, err := d.prefs.MutualLikers(ctx, bookID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query mutual likers: %w", err)
	}
	if len(partners) > 0 {
		d.log.Debug("mutual like detected", "user_id", userID, "book_id", bookID, "partners", len(partners))
	}
	return partners, nil
}
