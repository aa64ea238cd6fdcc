package realtime

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	"github.com/bookswipe/bookswipe-server/internal/pkg/logger"
)

// fakeBus hands the registered handler back to the test so it can emit
// events directly, and can sever a confirmed subscription.
type fakeBus struct {
	mu           sync.Mutex
	published    []Event
	handler      func(Event)
	lost         chan struct{}
	subscribeErr error
}

func (b *fakeBus) Publish(_ context.Context, ev Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, ev)
	if b.handler != nil {
		b.handler(ev)
	}
	return nil
}

func (b *fakeBus) Subscribe(_ context.Context, onEvent func(Event)) (<-chan struct{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subscribeErr != nil {
		return nil, b.subscribeErr
	}
	b.handler = onEvent
	b.lost = make(chan struct{})
	return b.lost, nil
}

func (b *fakeBus) Close() error { return nil }

func (b *fakeBus) emit(ev Event) {
	b.mu.Lock()
	handler := b.handler
	b.mu.Unlock()
	if handler != nil {
		handler(ev)
	}
}

func (b *fakeBus) setSubscribeErr(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribeErr = err
}

func (b *fakeBus) subscribed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.handler != nil
}

// drop severs the active subscription, as when the broker connection
// dies underneath a confirmed consumer.
func (b *fakeBus) drop() {
	b.mu.Lock()
	lost := b.lost
	b.handler = nil
	b.lost = nil
	b.mu.Unlock()
	if lost != nil {
		close(lost)
	}
}

// fakeMessageRepo serves a fixed conversation tail to the poller.
type fakeMessageRepo struct {
	mu   sync.Mutex
	msgs []domain.Message
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, *msg)
	return nil
}

func (r *fakeMessageRepo) Conversation(_ context.Context, userA, userB int64) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Message
	for _, m := range r.msgs {
		if m.Between(userA, userB) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) ConversationSince(_ context.Context, userA, userB int64, after time.Time) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Message
	for _, m := range r.msgs {
		if m.Between(userA, userB) && m.CreatedAt.After(after) {
			out = append(out, m)
		}
	}
	return out, nil
}

func testMessage(id string, sender, recipient int64) domain.Message {
	return domain.Message{
		ID:          id,
		SenderID:    sender,
		RecipientID: recipient,
		Content:     "hi",
		CreatedAt:   time.Now(),
	}
}

func collect(t *testing.T, ch <-chan domain.Message, n int) []domain.Message {
	t.Helper()
	out := make([]domain.Message, 0, n)
	timeout := time.After(2 * time.Second)
	for len(out) < n {
		select {
		case msg := <-ch:
			out = append(out, msg)
		case <-timeout:
			t.Fatalf("got %d of %d messages before timeout", len(out), n)
		}
	}
	return out
}

func TestFeed_Open(t *testing.T) {
	t.Run("subscribed feed delivers bus events", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		bus := &fakeBus{}
		f := NewFeed(bus, &fakeMessageRepo{}, 5*time.Millisecond, logger.NewNop())
		ch := f.Open(ctx, 1, 2)

		require.Eventually(t, bus.subscribed, time.Second, time.Millisecond)

		bus.emit(EventFromMessage(&domain.Message{ID: "m1", SenderID: 2, RecipientID: 1, Content: "hi"}))
		got := collect(t, ch, 1)
		assert.Equal(t, "m1", got[0].ID)
	})

	t.Run("events from other conversations are filtered", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		bus := &fakeBus{}
		f := NewFeed(bus, &fakeMessageRepo{}, 5*time.Millisecond, logger.NewNop())
		ch := f.Open(ctx, 1, 2)

		require.Eventually(t, bus.subscribed, time.Second, time.Millisecond)

		bus.emit(EventFromMessage(&domain.Message{ID: "other", SenderID: 3, RecipientID: 4}))
		bus.emit(EventFromMessage(&domain.Message{ID: "mine", SenderID: 1, RecipientID: 2}))

		got := collect(t, ch, 1)
		assert.Equal(t, "mine", got[0].ID)
	})

	t.Run("duplicate ids are delivered once", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		bus := &fakeBus{}
		repo := &fakeMessageRepo{}
		f := NewFeed(bus, repo, 5*time.Millisecond, logger.NewNop())
		ch := f.Open(ctx, 1, 2)

		require.Eventually(t, bus.subscribed, time.Second, time.Millisecond)

		ev := EventFromMessage(&domain.Message{ID: "m1", SenderID: 2, RecipientID: 1})
		bus.emit(ev)
		bus.emit(ev)
		bus.emit(EventFromMessage(&domain.Message{ID: "m2", SenderID: 2, RecipientID: 1}))

		got := collect(t, ch, 2)
		assert.Equal(t, "m1", got[0].ID)
		assert.Equal(t, "m2", got[1].ID)
	})

	t.Run("polling carries the feed while the bus is down", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		bus := &fakeBus{subscribeErr: errors.New("redis down")}
		repo := &fakeMessageRepo{}
		f := NewFeed(bus, repo, 5*time.Millisecond, logger.NewNop())
		ch := f.Open(ctx, 1, 2)

		msg := testMessage("m1", 1, 2)
		require.NoError(t, repo.Create(ctx, &msg))

		got := collect(t, ch, 1)
		assert.Equal(t, "m1", got[0].ID)

		// Repeated polls must not re-deliver the same row.
		select {
		case dup := <-ch:
			t.Fatalf("unexpected duplicate delivery: %s", dup.ID)
		case <-time.After(30 * time.Millisecond):
		}
	})

	t.Run("polling resumes after a lost subscription", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		bus := &fakeBus{}
		repo := &fakeMessageRepo{}
		f := NewFeed(bus, repo, 5*time.Millisecond, logger.NewNop())
		ch := f.Open(ctx, 1, 2)

		require.Eventually(t, bus.subscribed, time.Second, time.Millisecond)

		// Sever the subscription and keep resubscription failing, as when
		// the broker goes away entirely.
		bus.setSubscribeErr(errors.New("redis down"))
		bus.drop()

		msg := testMessage("m1", 2, 1)
		require.NoError(t, repo.Create(ctx, &msg))

		got := collect(t, ch, 1)
		assert.Equal(t, "m1", got[0].ID)

		// Broker comes back; the feed must re-enter the subscription.
		bus.setSubscribeErr(nil)
		require.Eventually(t, bus.subscribed, time.Second, time.Millisecond)
	})

	t.Run("history before open is not replayed", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		bus := &fakeBus{subscribeErr: errors.New("redis down")}
		repo := &fakeMessageRepo{}
		old := testMessage("old", 1, 2)
		old.CreatedAt = time.Now().Add(-time.Hour)
		require.NoError(t, repo.Create(ctx, &old))

		f := NewFeed(bus, repo, 5*time.Millisecond, logger.NewNop())
		ch := f.Open(ctx, 1, 2)

		fresh := testMessage("fresh", 2, 1)
		require.NoError(t, repo.Create(ctx, &fresh))

		got := collect(t, ch, 1)
		assert.Equal(t, "fresh", got[0].ID)
	})

	t.Run("cancelled context silences the feed", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		bus := &fakeBus{}
		f := NewFeed(bus, &fakeMessageRepo{}, 5*time.Millisecond, logger.NewNop())
		ch := f.Open(ctx, 1, 2)
		cancel()

		select {
		case msg, ok := <-ch:
			if ok {
				t.Fatalf("unexpected message after cancel: %s", msg.ID)
			}
		case <-time.After(30 * time.Millisecond):
		}
	})
}
