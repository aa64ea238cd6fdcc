package community

import (
	"context"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	"github.com/bookswipe/bookswipe-server/internal/pkg/logger"
	"github.com/bookswipe/bookswipe-server/internal/repository"
	"github.com/bookswipe/bookswipe-server/internal/usecase/match"
)

// Aggregator composes the affinity scorer with profile lookups into the
// displayable community roster.
type Aggregator struct {
	scorer   *match.Scorer
	profiles repository.ProfileRepository
	log      *logger.Logger
}

func NewAggregator(scorer *match.Scorer, profiles repository.ProfileRepository, log *logger.Logger) *Aggregator {
	return &Aggregator{
		scorer:   scorer,
		profiles: profiles,
		log:      log,
	}
}

// RosterEntry is one matched user as shown in the community view.
type RosterEntry struct {
	UserID       int64   `json:"user_id"`
	DisplayName  *string `json:"display_name"`
	AvatarURL    *string `json:"avatar_url"`
	SharedCount  int     `json:"shared_count"`
	BlendPercent int     `json:"blend_percent"`
}

// TopMatchEntry is the single best match, with profile attached.
type TopMatchEntry struct {
	UserID       int64   `json:"user_id"`
	DisplayName  *string `json:"display_name"`
	AvatarURL    *string `json:"avatar_url"`
	SharedCount  int     `json:"shared_count"`
	BlendPercent int     `json:"blend_percent"`
}

// BuildRoster returns all matches sorted by shared count descending,
// ties in first-encounter order. Lookup failures degrade to an empty
// roster: the caller renders "no matches yet" rather than an error.
// An empty roster is therefore also what a store outage looks like,
// which is the accepted trade-off.
func (a *Aggregator) BuildRoster(ctx context.Context, userID int64) []RosterEntry {
	scores, err := a.scorer.TopMatches(ctx, userID, 0)
	if err != nil {
		a.log.Warn("roster affinity query failed", "user_id", userID, "error", err)
		return []RosterEntry{}
	}
	if len(scores) == 0 {
		return []RosterEntry{}
	}

	ids := make([]int64, 0, len(scores))
	for _, s := range scores {
		ids = append(ids, s.UserID)
	}
	profiles, err := a.profiles.GetByUserIDs(ctx, ids)
	if err != nil {
		a.log.Warn("roster profile lookup failed", "user_id", userID, "error", err)
		return []RosterEntry{}
	}

	roster := make([]RosterEntry, 0, len(scores))
	for _, s := range scores {
		entry := RosterEntry{
			UserID:       s.UserID,
			SharedCount:  s.SharedCount,
			BlendPercent: domain.BlendPercent(s.SharedCount),
		}
		// A match without a profile row still belongs in the roster;
		// the view falls back to a placeholder name.
		if p, ok := profiles[s.UserID]; ok {
			entry.DisplayName = p.DisplayName
			entry.AvatarURL = p.AvatarURL
		}
		roster = append(roster, entry)
	}
	return roster
}

// TopMatch resolves the user's single best match with profile, or nil
// for the distinct "no match yet" state.
func (a *Aggregator) TopMatch(ctx context.Context, userID int64) *TopMatchEntry {
	score, err := a.scorer.TopMatch(ctx, userID)
	if err != nil {
		a.log.Warn("top match query failed", "user_id", userID, "error", err)
		return nil
	}
	if score == nil {
		return nil
	}

	entry := &TopMatchEntry{
		UserID:       score.UserID,
		SharedCount:  score.SharedCount,
		BlendPercent: domain.BlendPercent(score.SharedCount),
	}
	profile, err := a.profiles.GetByUserID(ctx, score.UserID)
	if err != nil {
		a.log.Warn("top match profile lookup failed", "user_id", score.UserID, "error", err)
		return entry
	}
	entry.DisplayName = profile.DisplayName
	entry.AvatarURL = profile.AvatarURL
	return entry
}
