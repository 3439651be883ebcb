// Package signal provides publisher-owned subscriber lists.
//
// A Signal replaces package-level event delegates: the publishing component
// owns the list, subscribers hold a Subscription they must release, and the
// publisher can drop every subscriber on teardown with Reset.
package signal

import "sync"

// Signal is an ordered list of callbacks for values of type T.
// The zero value is ready to use.
type Signal[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Subscription is returned by Subscribe and releases the callback.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Unsubscribe removes the callback. Safe to call more than once and on nil.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}

// Subscribe appends fn to the list. Callbacks run in subscription order.
func (s *Signal[T]) Subscribe(fn func(T)) *Subscription {
	if fn == nil {
		return &Subscription{}
	}
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	s.mu.Unlock()

	return &Subscription{cancel: func() { s.remove(id) }}
}

func (s *Signal[T]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

// Emit calls every subscriber with v. The list is snapshotted first, so
// callbacks may subscribe or unsubscribe while the signal is firing.
func (s *Signal[T]) Emit(v T) {
	s.mu.Lock()
	snapshot := make([]subscriber[T], len(s.subs))
	copy(snapshot, s.subs)
	s.mu.Unlock()

	for _, sub := range snapshot {
		sub.fn(v)
	}
}

// Len reports the number of live subscribers.
func (s *Signal[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Reset drops every subscriber.
func (s *Signal[T]) Reset() {
	s.mu.Lock()
	s.subs = nil
	s.mu.Unlock()
}
