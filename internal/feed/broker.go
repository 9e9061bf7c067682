// Package feed notifies watchers that the catalog changed so they can reload
// a fresh snapshot.
package feed

import (
	"sync"

	"github.com/google/uuid"
)

// Broker fans change notifications out to subscribers. Notifications carry no
// payload: a subscriber that already has one pending is not sent another, since
// a single reload picks up every change behind it.
type Broker struct {
	mu          sync.Mutex
	subscribers map[string]chan struct{}
	closed      bool
}

// NewBroker creates a Broker with no subscribers.
func NewBroker() *Broker {
	return &Broker{subscribers: make(map[string]chan struct{})}
}

// Subscribe registers a new subscriber. The ID is used to unsubscribe. The
// channel is closed on Unsubscribe or Close.
func (b *Broker) Subscribe() (string, <-chan struct{}) {
	id := uuid.NewString()
	ch := make(chan struct{}, 1)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return id, ch
	}
	b.subscribers[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broker) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}

// Publish notifies every subscriber without blocking.
func (b *Broker) Publish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribers returns the number of active subscribers.
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}

// Close closes every subscriber channel. Later subscriptions get a closed channel.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
	b.closed = true
}
