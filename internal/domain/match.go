package domain

// MatchScore is one candidate match: another user and how many liked
// books they share with the querying user. SharedCount is symmetric
// between the two users and never decreases, since decisions are never
// retracted.
type MatchScore struct {
	UserID      int64 `json:"user_id"`
	SharedCount int   `json:"shared_count"`
}

// BlendPercent converts a shared-like count into the displayed affinity
// percentage: a single shared like already floors at 50, each further
// shared like adds 10, capped at 100. A presentation heuristic, not a
// similarity metric.
func BlendPercent(sharedCount int) int {
	raw := 50 + sharedCount*10
	if raw < 50 {
		return 50
	}
	if raw > 100 {
		return 100
	}
	return raw
}
