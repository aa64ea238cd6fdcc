package deck

import (
	"context"
	"sync"
	"time"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	"github.com/bookswipe/bookswipe-server/internal/pkg/logger"
	"github.com/bookswipe/bookswipe-server/internal/repository"
	"github.com/bookswipe/bookswipe-server/internal/usecase/match"
)

// State is the deck session's position in its lifecycle.
type State string

const (
	StateLoading   State = "loading"
	StateReady     State = "ready"
	StateAnimating State = "animating"
	StateExhausted State = "exhausted"
	StateError     State = "error"
)

const persistTimeout = 10 * time.Second

// Session is one user's pass through a fixed deck of books.
//
// Lifecycle: Loading → Ready → Animating → Ready … → Exhausted, with
// Error reachable only from Loading. Decide is accepted exactly once
// per Ready state; while Animating every further Decide is a no-op.
// The decision is persisted the moment Decide is accepted; the timer
// only gates when the next card is revealed, so a slow store never
// delays the recorded outcome and a failed write never rewinds the
// cursor.
type Session struct {
	ID     string
	UserID int64

	prefs    repository.PreferenceRepository
	detector *match.Detector
	log      *logger.Logger

	animation time.Duration

	mu         sync.Mutex
	state      State
	books      []domain.Book
	cursor     int
	likedCount int
	pending    []int64
	errMsg     string
	closed     bool
	timer      *time.Timer
	lastActive time.Time
}

// Decide records the user's decision on the current card. Returns true
// when the decision was accepted; false means the session was not Ready
// (mid-animation, exhausted, errored, or closed) and the call was
// silently ignored.
func (s *Session) Decide(direction Direction) bool {
	s.mu.Lock()
	if s.closed || s.state != StateReady {
		s.mu.Unlock()
		return false
	}

	book := s.books[s.cursor]
	liked := direction.Liked()
	s.state = StateAnimating
	s.lastActive = time.Now()
	if liked {
		s.likedCount++
	}
	s.timer = time.AfterFunc(s.animation, s.advance)
	s.mu.Unlock()

	go s.persistDecision(book.ID, liked)
	return true
}

// DecideDrag is the gesture-driven variant: a released drag offset is
// resolved against the threshold and, if it crossed, forwarded to
// Decide. A sub-threshold release is pure presentation and changes
// nothing.
func (s *Session) DecideDrag(offset, threshold float64) bool {
	direction, crossed := DirectionFromOffset(offset, threshold)
	if !crossed {
		return false
	}
	return s.Decide(direction)
}

// persistDecision runs off the request path. Failures are logged and
// swallowed: the card was already shown, the write is simply lost and
// recoverable by a later decision on the same book.
func (s *Session) persistDecision(bookID int64, liked bool) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	decision := &domain.Decision{
		UserID: s.UserID,
		BookID: bookID,
		Liked:  liked,
	}
	if err := s.prefs.Upsert(ctx, decision); err != nil {
		s.log.Warn("failed to persist decision",
			"session_id", s.ID, "user_id", s.UserID, "book_id", bookID, "error", err)
		return
	}

	if !liked {
		return
	}

	partners, err := s.detector.OnLikeRecorded(ctx, s.UserID, bookID)
	if err != nil {
		s.log.Warn("match detection failed",
			"session_id", s.ID, "user_id", s.UserID, "book_id", bookID, "error", err)
		return
	}
	if len(partners) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// A completion that lands after teardown must not touch the session.
	if s.closed {
		return
	}
	s.pending = append(s.pending, partners...)
}

// advance fires when the animation timer elapses.
func (s *Session) advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state != StateAnimating {
		return
	}
	s.cursor++
	if s.cursor >= len(s.books) {
		s.state = StateExhausted
	} else {
		s.state = StateReady
	}
}

// CurrentBook returns the card being presented. ok is false while
// loading, exhausted, or errored.
func (s *Session) CurrentBook() (domain.Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor >= len(s.books) || s.state == StateError {
		return domain.Book{}, false
	}
	return s.books[s.cursor], true
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) IsExhausted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateExhausted
}

// PendingMatches drains the match partners surfaced since the last
// call. Ids repeat if separate likes matched the same partner.
func (s *Session) PendingMatches() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	drained := s.pending
	s.pending = nil
	return drained
}

// Progress reports cursor position, deck length and running like count.
// The like count is an in-session counter, not authoritative: the
// community views always recompute from the store.
func (s *Session) Progress() (cursor, total, liked int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor, len(s.books), s.likedCount
}

// ErrorMessage returns the load failure when the session is in the
// Error state.
func (s *Session) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Close tears the session down: pending timers are cleared and any
// in-flight persistence completion becomes a no-op against it.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
	}
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}
