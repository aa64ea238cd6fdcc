package match

import (
	"context"
	"errors"
	"sync"

	"github.com/bookswipe/bookswipe-server/internal/domain"
)

// fakePreferenceRepo is an in-memory PreferenceRepository used by the
// detector and scorer tests.
type fakePreferenceRepo struct {
	mu        sync.Mutex
	decisions map[int64]map[int64]bool // userID -> bookID -> liked
	order     []domain.BookLiker       // insertion order of likes

	upsertErr error
	queryErr  error
}

func newFakePreferenceRepo() *fakePreferenceRepo {
	return &fakePreferenceRepo{decisions: make(map[int64]map[int64]bool)}
}

func (f *fakePreferenceRepo) Upsert(_ context.Context, d *domain.Decision) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.decisions[d.UserID] == nil {
		f.decisions[d.UserID] = make(map[int64]bool)
	}
	_, existed := f.decisions[d.UserID][d.BookID]
	f.decisions[d.UserID][d.BookID] = d.Liked
	if !existed && d.Liked {
		f.order = append(f.order, domain.BookLiker{UserID: d.UserID, BookID: d.BookID})
	}
	return nil
}

func (f *fakePreferenceRepo) MutualLikers(_ context.Context, bookID, excludeUserID int64) ([]int64, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var likers []int64
	for _, l := range f.order {
		if l.BookID == bookID && l.UserID != excludeUserID && f.decisions[l.UserID][l.BookID] {
			likers = append(likers, l.UserID)
		}
	}
	return likers, nil
}

func (f *fakePreferenceRepo) LikedBookIDs(_ context.Context, userID int64) ([]int64, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []int64
	for _, l := range f.order {
		if l.UserID == userID && f.decisions[userID][l.BookID] {
			ids = append(ids, l.BookID)
		}
	}
	return ids, nil
}

func (f *fakePreferenceRepo) LikersOf(_ context.Context, bookIDs []int64, excludeUserID int64) ([]domain.BookLiker, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := make(map[int64]struct{}, len(bookIDs))
	for _, id := range bookIDs {
		wanted[id] = struct{}{}
	}
	var likers []domain.BookLiker
	for _, l := range f.order {
		if _, ok := wanted[l.BookID]; !ok {
			continue
		}
		if l.UserID == excludeUserID || !f.decisions[l.UserID][l.BookID] {
			continue
		}
		likers = append(likers, l)
	}
	return likers, nil
}

func (f *fakePreferenceRepo) like(userID, bookID int64) {
	_ = f.Upsert(context.Background(), &domain.Decision{UserID: userID, BookID: bookID, Liked: true})
}

func (f *fakePreferenceRepo) pass(userID, bookID int64) {
	_ = f.Upsert(context.Background(), &domain.Decision{UserID: userID, BookID: bookID, Liked: false})
}

var errStore = errors.New("store unavailable")
