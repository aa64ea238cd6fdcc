package realtime

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	"github.com/bookswipe/bookswipe-server/internal/pkg/logger"
	"github.com/bookswipe/bookswipe-server/internal/repository"
)

// Feed delivers a conversation's messages as one deduplicated stream
// fed by two producers: the realtime bus subscription and a fixed
// interval polling loop. Polling runs whenever the subscription is not
// confirmed — before it first confirms and again after a confirmed
// subscription drops — and pauses while it is; both may overlap briefly
// during a reconnect window, which the dedup sink absorbs.
type Feed struct {
	bus           Bus
	messages      repository.MessageRepository
	pollInterval  time.Duration
	retryInterval time.Duration
	log           *logger.Logger
}

func NewFeed(bus Bus, messages repository.MessageRepository, pollInterval time.Duration, log *logger.Logger) *Feed {
	return &Feed{
		bus:           bus,
		messages:      messages,
		pollInterval:  pollInterval,
		retryInterval: pollInterval,
		log:           log.With("component", "chat_feed"),
	}
}

// Open streams messages of the (userID, otherID) conversation inserted
// after the call; history is served by the conversation query, not the
// stream. Cancelling ctx unregisters the subscription and clears the
// polling timer; the channel is left open and simply goes quiet, so
// consumers select on ctx rather than on channel close.
func (f *Feed) Open(ctx context.Context, userID, otherID int64) <-chan domain.Message {
	out := make(chan domain.Message, 16)
	sink := newDedupSink(ctx, out)

	var subscribed atomic.Bool
	go f.subscribeLoop(ctx, userID, otherID, sink, &subscribed)
	go f.pollLoop(ctx, userID, otherID, sink, &subscribed, time.Now())

	return out
}

// subscribeLoop keeps the bus subscription alive for the stream's whole
// life. Each confirmed subscription flips the flag, pausing the poller;
// when delivery stops the flag clears so polling resumes from its
// watermark while the next attempt runs.
func (f *Feed) subscribeLoop(ctx context.Context, userID, otherID int64, sink *dedupSink, subscribed *atomic.Bool) {
	for {
		lost, err := f.bus.Subscribe(ctx, func(ev Event) {
			msg := ev.Message()
			if msg.Between(userID, otherID) {
				sink.deliver(msg)
			}
		})
		if err != nil {
			f.log.Warn("bus subscription failed, staying on polling", "error", err)

			select {
			case <-ctx.Done():
				return
			case <-time.After(f.retryInterval):
			}
			continue
		}

		subscribed.Store(true)
		select {
		case <-ctx.Done():
			return
		case <-lost:
			subscribed.Store(false)
			f.log.Warn("bus subscription lost, resuming polling")
		}
	}
}

// pollLoop fetches the conversation tail on a fixed interval whenever
// the subscription is unconfirmed. The watermark starts at open time so
// polling emits the same inserts-since-open stream the subscription
// does.
func (f *Feed) pollLoop(ctx context.Context, userID, otherID int64, sink *dedupSink, subscribed *atomic.Bool, lastSeen time.Time) {
	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if subscribed.Load() {
				continue
			}
			msgs, err := f.messages.ConversationSince(ctx, userID, otherID, lastSeen)
			if err != nil {
				f.log.Warn("poll fetch failed", "error", err)
				continue
			}
			for i := range msgs {
				if msgs[i].CreatedAt.After(lastSeen) {
					lastSeen = msgs[i].CreatedAt
				}
				sink.deliver(msgs[i])
			}
		}
	}
}

// dedupSink forwards each message id at most once. Both producers may
// hand it the same message; identity wins over origin.
type dedupSink struct {
	ctx  context.Context
	out  chan<- domain.Message
	mu   sync.Mutex
	seen map[string]struct{}
}

func newDedupSink(ctx context.Context, out chan<- domain.Message) *dedupSink {
	return &dedupSink{
		ctx:  ctx,
		out:  out,
		seen: make(map[string]struct{}),
	}
}

func (d *dedupSink) deliver(msg domain.Message) {
	d.mu.Lock()
	if _, dup := d.seen[msg.ID]; dup {
		d.mu.Unlock()
		return
	}
	d.seen[msg.ID] = struct{}{}
	d.mu.Unlock()

	select {
	case <-d.ctx.Done():
	case d.out <- msg:
	}
}
