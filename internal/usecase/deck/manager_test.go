package deck

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookswipe/bookswipe-server/internal/domain"
)

func TestManager_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("ready session with books", func(t *testing.T) {
		m := testManager(&fakeBookRepo{books: testBooks(3)}, newFakePrefs())
		s := m.Load(ctx, 1)

		assert.NotEmpty(t, s.ID)
		assert.Equal(t, StateReady, s.State())
		book, ok := s.CurrentBook()
		require.True(t, ok)
		assert.Equal(t, int64(1), book.ID)
	})

	t.Run("empty catalog loads exhausted", func(t *testing.T) {
		m := testManager(&fakeBookRepo{}, newFakePrefs())
		s := m.Load(ctx, 1)

		assert.Equal(t, StateExhausted, s.State())
		assert.False(t, s.Decide(DirectionRight))
	})

	t.Run("fetch failure loads an error session", func(t *testing.T) {
		m := testManager(&fakeBookRepo{listErr: errStore}, newFakePrefs())
		s := m.Load(ctx, 1)

		assert.Equal(t, StateError, s.State())
		assert.Contains(t, s.ErrorMessage(), "failed to load books")
		assert.False(t, s.Decide(DirectionRight))
		_, ok := s.CurrentBook()
		assert.False(t, ok)

		// The errored session is still registered and retrievable.
		got, err := m.Get(s.ID, 1)
		require.NoError(t, err)
		assert.Same(t, s, got)
	})
}

func TestManager_Get(t *testing.T) {
	ctx := context.Background()
	m := testManager(&fakeBookRepo{books: testBooks(2)}, newFakePrefs())
	s := m.Load(ctx, 1)

	t.Run("owner gets the session", func(t *testing.T) {
		got, err := m.Get(s.ID, 1)
		require.NoError(t, err)
		assert.Same(t, s, got)
	})

	t.Run("other users cannot reach it", func(t *testing.T) {
		_, err := m.Get(s.ID, 2)
		assert.ErrorIs(t, err, domain.ErrDeckSessionNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := m.Get("nope", 1)
		assert.ErrorIs(t, err, domain.ErrDeckSessionNotFound)
	})
}

func TestManager_Close(t *testing.T) {
	ctx := context.Background()
	m := testManager(&fakeBookRepo{books: testBooks(2)}, newFakePrefs())
	s := m.Load(ctx, 1)

	require.NoError(t, m.Close(s.ID, 1))
	assert.False(t, s.Decide(DirectionRight))

	_, err := m.Get(s.ID, 1)
	assert.ErrorIs(t, err, domain.ErrDeckSessionNotFound)
	assert.ErrorIs(t, m.Close(s.ID, 1), domain.ErrDeckSessionNotFound)
}

func TestManager_Reap(t *testing.T) {
	ctx := context.Background()
	prefs := newFakePrefs()
	m := testManager(&fakeBookRepo{books: testBooks(2)}, prefs)
	m.cfg.SessionTTL = 20 * time.Millisecond

	stale := m.Load(ctx, 1)
	assert.Zero(t, m.Reap())

	time.Sleep(30 * time.Millisecond)
	fresh := m.Load(ctx, 2)

	assert.Equal(t, 1, m.Reap())
	_, err := m.Get(stale.ID, 1)
	assert.ErrorIs(t, err, domain.ErrDeckSessionNotFound)
	_, err = m.Get(fresh.ID, 2)
	assert.NoError(t, err)
}
