package deck

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bookswipe/bookswipe-server/internal/config"
	"github.com/bookswipe/bookswipe-server/internal/domain"
	"github.com/bookswipe/bookswipe-server/internal/pkg/logger"
	"github.com/bookswipe/bookswipe-server/internal/usecase/match"
)

var errStore = errors.New("store unavailable")

// fakeBookRepo serves a fixed deck.
type fakeBookRepo struct {
	books   []domain.Book
	listErr error
}

func (f *fakeBookRepo) List(_ context.Context, limit int) ([]domain.Book, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if limit < len(f.books) {
		return f.books[:limit], nil
	}
	return f.books, nil
}

func (f *fakeBookRepo) GetByID(_ context.Context, id int64) (*domain.Book, error) {
	for i := range f.books {
		if f.books[i].ID == id {
			return &f.books[i], nil
		}
	}
	return nil, domain.ErrBookNotFound
}

func (f *fakeBookRepo) GetByISBNs(_ context.Context, _ []string) ([]domain.Book, error) {
	return f.books, nil
}

func (f *fakeBookRepo) Create(_ context.Context, _ *domain.Book) error {
	return nil
}

// fakePrefs records upserts and answers mutual-liker queries from a
// canned map.
type fakePrefs struct {
	mu        sync.Mutex
	upserts   []domain.Decision
	mutual    map[int64][]int64 // bookID -> other likers
	upsertErr error
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{mutual: make(map[int64][]int64)}
}

func (f *fakePrefs) Upsert(_ context.Context, d *domain.Decision) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts = append(f.upserts, *d)
	return nil
}

func (f *fakePrefs) MutualLikers(_ context.Context, bookID, _ int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mutual[bookID], nil
}

func (f *fakePrefs) LikedBookIDs(_ context.Context, _ int64) ([]int64, error) {
	return nil, nil
}

func (f *fakePrefs) LikersOf(_ context.Context, _ []int64, _ int64) ([]domain.BookLiker, error) {
	return nil, nil
}

func (f *fakePrefs) recorded() []domain.Decision {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Decision, len(f.upserts))
	copy(out, f.upserts)
	return out
}

func testBooks(n int) []domain.Book {
	books := make([]domain.Book, 0, n)
	for i := 0; i < n; i++ {
		books = append(books, domain.Book{ID: int64(i + 1), Title: "book"})
	}
	return books
}

func testManager(books *fakeBookRepo, prefs *fakePrefs) *Manager {
	log := logger.NewNop()
	return NewManager(
		books,
		prefs,
		match.NewDetector(prefs, log),
		config.DeckConfig{
			Size:              50,
			AnimationDuration: 10 * time.Millisecond,
			DragThreshold:     120,
			SessionTTL:        time.Hour,
		},
		log,
	)
}
