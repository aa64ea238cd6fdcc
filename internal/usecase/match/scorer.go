package match

import (
	"context"
	"fmt"
	"sort"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	"github.com/bookswipe/bookswipe-server/internal/repository"
)

// Scorer aggregates shared-like counts between one user and every other
// user with overlapping likes.
type Scorer struct {
	prefs repository.PreferenceRepository
}

func NewScorer(prefs repository.PreferenceRepository) *Scorer {
	return &Scorer{prefs: prefs}
}

// TopMatches returns candidate matches ordered by shared-like count
// descending. Ties keep the order in which a user was first encountered
// in the likers query, so the top match is deterministic for a given
// store state. limit <= 0 means no limit.
func (s *Scorer) TopMatches(ctx context.Context, userID int64, limit int) ([]domain.MatchScore, error) {
	liked, err := s.prefs.LikedBookIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load liked books: %w", err)
	}
	if len(liked) == 0 {
		return nil, nil
	}

	likers, err := s.prefs.LikersOf(ctx, liked, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load likers: %w", err)
	}

	counts := make(map[int64]int, len(likers))
	order := make([]int64, 0, len(likers))
	for _, l := range likers {
		if _, seen := counts[l.UserID]; !seen {
			order = append(order, l.UserID)
		}
		counts[l.UserID]++
	}

	scores := make([]domain.MatchScore, 0, len(order))
	for _, id := range order {
		scores = append(scores, domain.MatchScore{UserID: id, SharedCount: counts[id]})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].SharedCount > scores[j].SharedCount
	})

	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	return scores, nil
}

// TopMatch returns the single best match, or nil when the user has no
// likes or nobody overlaps. Callers render that as "no match yet", not
// as an error.
func (s *Scorer) TopMatch(ctx context.Context, userID int64) (*domain.MatchScore, error) {
	scores, err := s.TopMatches(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, nil
	}
	return &scores[0], nil
}
