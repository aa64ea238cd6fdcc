package deck

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Decide(t *testing.T) {
	ctx := context.Background()

	t.Run("accepted decision animates then reveals the next card", func(t *testing.T) {
		prefs := newFakePrefs()
		m := testManager(&fakeBookRepo{books: testBooks(3)}, prefs)
		s := m.Load(ctx, 1)
		require.Equal(t, StateReady, s.State())

		ok := s.Decide(DirectionRight)
		require.True(t, ok)
		assert.Equal(t, StateAnimating, s.State())

		require.Eventually(t, func() bool {
			return s.State() == StateReady
		}, time.Second, time.Millisecond)

		cursor, total, liked := s.Progress()
		assert.Equal(t, 1, cursor)
		assert.Equal(t, 3, total)
		assert.Equal(t, 1, liked)
	})

	t.Run("decide while animating is a no-op", func(t *testing.T) {
		prefs := newFakePrefs()
		m := testManager(&fakeBookRepo{books: testBooks(3)}, prefs)
		s := m.Load(ctx, 1)

		require.True(t, s.Decide(DirectionRight))
		assert.False(t, s.Decide(DirectionLeft))
		assert.False(t, s.Decide(DirectionRight))

		require.Eventually(t, func() bool {
			return s.State() == StateReady
		}, time.Second, time.Millisecond)

		// Only the first decision was recorded.
		require.Eventually(t, func() bool {
			return len(prefs.recorded()) == 1
		}, time.Second, time.Millisecond)
		assert.True(t, prefs.recorded()[0].Liked)
		_, _, liked := s.Progress()
		assert.Equal(t, 1, liked)
	})

	t.Run("deciding the last card exhausts the deck", func(t *testing.T) {
		prefs := newFakePrefs()
		m := testManager(&fakeBookRepo{books: testBooks(1)}, prefs)
		s := m.Load(ctx, 1)

		require.True(t, s.Decide(DirectionLeft))
		require.Eventually(t, s.IsExhausted, time.Second, time.Millisecond)

		assert.False(t, s.Decide(DirectionRight))
		_, ok := s.CurrentBook()
		assert.False(t, ok)
	})

	t.Run("two-card walkthrough records both decisions", func(t *testing.T) {
		prefs := newFakePrefs()
		m := testManager(&fakeBookRepo{books: testBooks(2)}, prefs)
		s := m.Load(ctx, 1)

		book, ok := s.CurrentBook()
		require.True(t, ok)
		assert.Equal(t, int64(1), book.ID)

		require.True(t, s.Decide(DirectionRight))
		require.Eventually(t, func() bool {
			return s.State() == StateReady
		}, time.Second, time.Millisecond)

		book, ok = s.CurrentBook()
		require.True(t, ok)
		assert.Equal(t, int64(2), book.ID)

		require.True(t, s.Decide(DirectionLeft))
		require.Eventually(t, s.IsExhausted, time.Second, time.Millisecond)

		cursor, total, liked := s.Progress()
		assert.Equal(t, 2, cursor)
		assert.Equal(t, 2, total)
		assert.Equal(t, 1, liked)

		require.Eventually(t, func() bool {
			return len(prefs.recorded()) == 2
		}, time.Second, time.Millisecond)
		recorded := prefs.recorded()
		assert.Equal(t, int64(1), recorded[0].BookID)
		assert.True(t, recorded[0].Liked)
		assert.Equal(t, int64(2), recorded[1].BookID)
		assert.False(t, recorded[1].Liked)
	})

	t.Run("persist failure does not rewind the deck", func(t *testing.T) {
		prefs := newFakePrefs()
		prefs.upsertErr = errStore
		m := testManager(&fakeBookRepo{books: testBooks(2)}, prefs)
		s := m.Load(ctx, 1)

		require.True(t, s.Decide(DirectionRight))
		require.Eventually(t, func() bool {
			return s.State() == StateReady
		}, time.Second, time.Millisecond)
		cursor, _, _ := s.Progress()
		assert.Equal(t, 1, cursor)
	})
}

func TestSession_DecideDrag(t *testing.T) {
	ctx := context.Background()

	t.Run("release past the threshold swipes", func(t *testing.T) {
		prefs := newFakePrefs()
		m := testManager(&fakeBookRepo{books: testBooks(2)}, prefs)
		s := m.Load(ctx, 1)

		require.True(t, s.DecideDrag(150, 120))
		require.Eventually(t, func() bool {
			return len(prefs.recorded()) == 1
		}, time.Second, time.Millisecond)
		assert.True(t, prefs.recorded()[0].Liked)
	})

	t.Run("sub-threshold release changes nothing", func(t *testing.T) {
		prefs := newFakePrefs()
		m := testManager(&fakeBookRepo{books: testBooks(2)}, prefs)
		s := m.Load(ctx, 1)

		assert.False(t, s.DecideDrag(80, 120))
		assert.False(t, s.DecideDrag(-119, 120))
		assert.Equal(t, StateReady, s.State())
		assert.Empty(t, prefs.recorded())
	})

	t.Run("negative offset past the threshold is a pass", func(t *testing.T) {
		prefs := newFakePrefs()
		m := testManager(&fakeBookRepo{books: testBooks(2)}, prefs)
		s := m.Load(ctx, 1)

		require.True(t, s.DecideDrag(-200, 120))
		require.Eventually(t, func() bool {
			return len(prefs.recorded()) == 1
		}, time.Second, time.Millisecond)
		assert.False(t, prefs.recorded()[0].Liked)
	})
}

func TestSession_PendingMatches(t *testing.T) {
	ctx := context.Background()

	t.Run("mutual like surfaces and drains once", func(t *testing.T) {
		prefs := newFakePrefs()
		prefs.mutual[1] = []int64{7}
		m := testManager(&fakeBookRepo{books: testBooks(2)}, prefs)
		s := m.Load(ctx, 1)

		require.True(t, s.Decide(DirectionRight))
		require.Eventually(t, func() bool {
			return len(s.PendingMatches()) > 0
		}, time.Second, time.Millisecond, "match partner never surfaced")

		// Already drained by the Eventually probe above.
		assert.Empty(t, s.PendingMatches())
	})

	t.Run("a pass never raises a match", func(t *testing.T) {
		prefs := newFakePrefs()
		prefs.mutual[1] = []int64{7}
		m := testManager(&fakeBookRepo{books: testBooks(2)}, prefs)
		s := m.Load(ctx, 1)

		require.True(t, s.Decide(DirectionLeft))
		require.Eventually(t, func() bool {
			return len(prefs.recorded()) == 1
		}, time.Second, time.Millisecond)
		assert.Empty(t, s.PendingMatches())
	})

	t.Run("late completion after close is dropped", func(t *testing.T) {
		prefs := newFakePrefs()
		prefs.mutual[1] = []int64{7}
		m := testManager(&fakeBookRepo{books: testBooks(2)}, prefs)
		s := m.Load(ctx, 1)

		require.True(t, s.Decide(DirectionRight))
		s.Close()

		require.Eventually(t, func() bool {
			return len(prefs.recorded()) == 1
		}, time.Second, time.Millisecond)
		assert.Empty(t, s.PendingMatches())
	})
}
