package events

import (
	"context"
	"sync"
	"sync/atomic"
)

// Subscription receives a notification each time its manager emits.
// Notifications coalesce: a subscriber that is busy sees at most one pending event.
type Subscription struct {
	ch     chan struct{}
	mgr    *SubscriptionManager
	cancel context.CancelFunc
	once   sync.Once
}

// Chan returns a read-only channel for self-handling events
func (s *Subscription) Chan() <-chan struct{} { return s.ch }

// Cancel unsubscribes and closes the channel. Safe for repeated calls.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		s.mgr.unsubscribe(s.ch)
	})
}

// Watch calls cb from a background goroutine for every event until parentCtx
// is done, then cancels the subscription. If callNow is true, cb runs once
// synchronously before Watch returns.
func (s *Subscription) Watch(parentCtx context.Context, cb func(), callNow bool) *Subscription {
	ctx, cancel := context.WithCancel(parentCtx)
	s.cancel = cancel

	if callNow {
		cb()
	}

	go func() {
		defer s.Cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-s.ch:
				if !ok {
					return
				}
				cb()
			}
		}
	}()

	return s
}

// SubscriptionManager fans out update notifications and counts how many
// updates have been emitted so far
type SubscriptionManager struct {
	mu          sync.RWMutex
	subscribers map[chan struct{}]struct{}
	version     atomic.Uint64
}

func NewSubscriptionManager() *SubscriptionManager {
	return &SubscriptionManager{
		subscribers: make(map[chan struct{}]struct{}),
	}
}

// Subscribe registers a new subscriber
func (m *SubscriptionManager) Subscribe() *Subscription {
	ch := make(chan struct{}, 1)

	m.mu.Lock()
	m.subscribers[ch] = struct{}{}
	m.mu.Unlock()

	return &Subscription{ch: ch, mgr: m}
}

func (m *SubscriptionManager) unsubscribe(ch chan struct{}) {
	m.mu.Lock()
	if _, ok := m.subscribers[ch]; ok {
		delete(m.subscribers, ch)
		close(ch)
	}
	m.mu.Unlock()
}

// Emit bumps the version and notifies every subscriber without blocking
func (m *SubscriptionManager) Emit(ctx context.Context) {
	m.version.Add(1)

	m.mu.RLock()
	defer m.mu.RUnlock()

	for sub := range m.subscribers {
		select {
		case <-ctx.Done():
			return
		case sub <- struct{}{}:
		default:
			// Subscriber already has a pending notification
		}
	}
}

// Version returns the number of emitted updates
func (m *SubscriptionManager) Version() uint64 {
	return m.version.Load()
}

// SubscriberCount returns the number of active subscriptions
func (m *SubscriptionManager) SubscriberCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscribers)
}
