package deck

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bookswipe/bookswipe-server/internal/config"
	"github.com/bookswipe/bookswipe-server/internal/domain"
	"github.com/bookswipe/bookswipe-server/internal/pkg/logger"
	"github.com/bookswipe/bookswipe-server/internal/repository"
	"github.com/bookswipe/bookswipe-server/internal/usecase/match"
)

// Manager owns the live deck sessions, one per browser tab. Sessions
// are ephemeral: created on load, destroyed on close or after sitting
// idle past the TTL.
type Manager struct {
	books    repository.BookRepository
	prefs    repository.PreferenceRepository
	detector *match.Detector
	cfg      config.DeckConfig
	log      *logger.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(
	books repository.BookRepository,
	prefs repository.PreferenceRepository,
	detector *match.Detector,
	cfg config.DeckConfig,
	log *logger.Logger,
) *Manager {
	return &Manager{
		books:    books,
		prefs:    prefs,
		detector: detector,
		cfg:      cfg,
		log:      log,
		sessions: make(map[string]*Session),
	}
}

// Load fetches the deck and creates a session. The session always
// exists afterwards; a failed fetch yields one already in the Error
// state carrying the failure message, which is terminal and retried
// only by loading a fresh session.
func (m *Manager) Load(ctx context.Context, userID int64) *Session {
	s := &Session{
		ID:         uuid.NewString(),
		UserID:     userID,
		prefs:      m.prefs,
		detector:   m.detector,
		log:        m.log,
		animation:  m.cfg.AnimationDuration,
		state:      StateLoading,
		lastActive: time.Now(),
	}

	books, err := m.books.List(ctx, m.cfg.Size)
	switch {
	case err != nil:
		s.state = StateError
		s.errMsg = "failed to load books: " + err.Error()
		m.log.Error("deck load failed", "user_id", userID, "error", err)
	case len(books) == 0:
		s.state = StateExhausted
	default:
		s.books = books
		s.state = StateReady
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session if it exists and belongs to the user.
func (m *Manager) Get(id string, userID int64) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.UserID != userID {
		return nil, domain.ErrDeckSessionNotFound
	}
	return s, nil
}

// Close destroys the session, as when the user navigates away.
func (m *Manager) Close(id string, userID int64) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok && s.UserID == userID {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok || s.UserID != userID {
		return domain.ErrDeckSessionNotFound
	}
	s.Close()
	return nil
}

// Reap drops sessions idle past the TTL. Run periodically from the
// container.
func (m *Manager) Reap() int {
	cutoff := time.Now().Add(-m.cfg.SessionTTL)

	m.mu.Lock()
	var stale []*Session
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			stale = append(stale, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range stale {
		s.Close()
	}
	if len(stale) > 0 {
		m.log.Debug("reaped idle deck sessions", "count", len(stale))
	}
	return len(stale)
}

// StartReaper runs Reap on a fixed interval until the context ends.
func (m *Manager) StartReaper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Reap()
			}
		}
	}()
}
