// Package bus provides the in-process event bus that decouples the state
// store, sync client, drag controller, and UI from one another.
package bus

import (
	"fmt"
	"sort"
	"sync"
)

// Handler receives the payload published on a topic.
type Handler func(payload any) error

type subscription struct {
	id       string
	priority int
	seq      int
	once     bool
	fn       Handler
}

// Bus is a synchronous publish/subscribe hub. The zero value is not usable;
// construct with New. All methods are safe for concurrent use.
type Bus struct {
	mu     sync.Mutex
	topics map[string][]subscription
	seq    int
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{topics: map[string][]subscription{}}
}

// Option configures a subscription.
type Option func(*subscription)

// Once removes the subscription after its first delivery.
func Once() Option {
	return func(s *subscription) { s.once = true }
}

// WithPriority orders delivery; higher priorities run first. Equal
// priorities run in subscription order.
func WithPriority(p int) Option {
	return func(s *subscription) { s.priority = p }
}

// WithID sets an explicit subscription id for later Unsubscribe calls.
func WithID(id string) Option {
	return func(s *subscription) { s.id = id }
}

// Subscribe registers fn on topic and returns the subscription id.
func (b *Bus) Subscribe(topic string, fn Handler, opts ...Option) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	sub := subscription{seq: b.seq, fn: fn}
	for _, opt := range opts {
		opt(&sub)
	}
	if sub.id == "" {
		sub.id = fmt.Sprintf("%s#%d", topic, sub.seq)
	}

	subs := append(b.topics[topic], sub)
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].priority > subs[j].priority
	})
	b.topics[topic] = subs
	return sub.id
}

// Unsubscribe removes the subscription with the given id from topic and
// reports whether anything was removed.
func (b *Bus) Unsubscribe(topic, id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.topics[topic]
	for i, s := range subs {
		if s.id == id {
			b.topics[topic] = append(subs[:i:i], subs[i+1:]...)
			return true
		}
	}
	return false
}

// Publish delivers payload to every subscriber of topic in priority order.
// A failing or panicking handler never prevents later handlers from running;
// all failures are returned and, except on the error topic itself, published
// once on TopicError. That republication happens on its own goroutine so an
// error handler observing the failure never re-enters the publish that
// caused it.
func (b *Bus) Publish(topic string, payload any) []error {
	subs := b.snapshotAndPrune(topic)

	var errs []error
	for _, s := range subs {
		if err := b.deliver(s, payload); err != nil {
			errs = append(errs, fmt.Errorf("bus: %s handler %s: %w", topic, s.id, err))
		}
	}

	if len(errs) > 0 && topic != TopicError {
		b.PublishAsync(TopicError, HandlerFailure{Topic: topic, Errors: errs})
	}
	return errs
}

// PublishAsync delivers payload on a separate goroutine. The subscriber list
// is snapshotted before returning, so subscribers added afterwards do not
// see this event.
func (b *Bus) PublishAsync(topic string, payload any) {
	subs := b.snapshotAndPrune(topic)
	go func() {
		var errs []error
		for _, s := range subs {
			if err := b.deliver(s, payload); err != nil {
				errs = append(errs, fmt.Errorf("bus: %s handler %s: %w", topic, s.id, err))
			}
		}
		if len(errs) > 0 && topic != TopicError {
			b.PublishAsync(TopicError, HandlerFailure{Topic: topic, Errors: errs})
		}
	}()
}

// HandlerFailure is the payload published on TopicError when handlers fail.
type HandlerFailure struct {
	Topic  string
	Errors []error
}

// snapshotAndPrune copies the current subscriber list for topic and removes
// once-subscriptions before delivery, so a re-entrant publish cannot run
// them twice.
func (b *Bus) snapshotAndPrune(topic string) []subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.topics[topic]
	snapshot := make([]subscription, len(subs))
	copy(snapshot, subs)

	remaining := subs[:0]
	for _, s := range subs {
		if !s.once {
			remaining = append(remaining, s)
		}
	}
	b.topics[topic] = remaining
	return snapshot
}

func (b *Bus) deliver(s subscription, payload any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.fn(payload)
}
