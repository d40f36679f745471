package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vango-dev/headless/pkg/timer"
)

const (
	// DefaultLimit is the maximum number of queued toasts.
	DefaultLimit = 1

	// DefaultRemoveDelay is how long a dismissed toast lingers,
	// closed, before it is deleted from the queue. Long enough for
	// any exit animation to finish.
	DefaultRemoveDelay = 5 * time.Second
)

// Store is a bounded toast queue with synchronous subscriber fan-out.
//
// All mutations are serialized by an internal mutex; subscribers are
// notified outside the lock, in registration order, with a snapshot of
// the queue. Methods never panic or report errors for unknown ids.
type Store struct {
	mu sync.Mutex

	limit       int
	removeDelay time.Duration
	sched       timer.Scheduler

	// toasts is ordered newest first.
	toasts []Toast

	// removals tracks the pending removal timer per toast id. A
	// second Dismiss for the same id keeps the original deadline.
	removals map[string]timer.Timer

	subs   []subscriber
	nextID uint64
}

type subscriber struct {
	id uint64
	fn func([]Toast)
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		limit:       DefaultLimit,
		removeDelay: DefaultRemoveDelay,
		sched:       timer.System(),
		removals:    make(map[string]timer.Timer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add inserts a toast at the front of the queue and returns a handle
// bound to its generated id. The queue is truncated to the configured
// limit, evicting the oldest entries. If the toast carries a positive
// Duration, an auto-dismiss timer starts immediately; otherwise the
// toast stays until dismissed.
func (s *Store) Add(t Toast) Handle {
	id := uuid.NewString()

	t.ID = id
	t.Open = true
	t.OnOpenChange = func(open bool) {
		if !open {
			s.Dismiss(id)
		}
	}

	s.mu.Lock()
	s.toasts = append([]Toast{t}, s.toasts...)
	if len(s.toasts) > s.limit {
		for _, evicted := range s.toasts[s.limit:] {
			s.cancelRemovalLocked(evicted.ID)
		}
		s.toasts = s.toasts[:s.limit]
	}
	snapshot, subs := s.snapshotLocked()
	s.mu.Unlock()

	notify(snapshot, subs)

	if t.Duration > 0 {
		s.sched.AfterFunc(t.Duration, func() {
			s.Dismiss(id)
		})
	}

	return Handle{ID: id, store: s}
}

// Update merges the patch into the toast with the given id. Unknown
// ids and nil patches are absorbed silently.
func (s *Store) Update(id string, p *Patch) {
	if p == nil {
		return
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	t := &s.toasts[idx]
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.ActionLabel != nil {
		t.ActionLabel = *p.ActionLabel
	}
	if p.ActionID != nil {
		t.ActionID = *p.ActionID
	}
	if p.Variant != nil {
		t.Variant = *p.Variant
	}
	snapshot, subs := s.snapshotLocked()
	s.mu.Unlock()

	notify(snapshot, subs)
}

// Dismiss closes the given toasts and schedules their removal after the
// store's removal delay. With no ids, every toast is dismissed. The
// entries stay in the queue, closed, until the delay elapses. Dismiss
// is idempotent; a repeat dismissal keeps the original removal deadline.
func (s *Store) Dismiss(ids ...string) {
	s.mu.Lock()
	if len(ids) == 0 {
		ids = make([]string, len(s.toasts))
		for i, t := range s.toasts {
			ids[i] = t.ID
		}
	}

	for _, id := range ids {
		if idx := s.indexLocked(id); idx >= 0 {
			s.toasts[idx].Open = false
			s.scheduleRemovalLocked(id)
		}
	}
	snapshot, subs := s.snapshotLocked()
	s.mu.Unlock()

	notify(snapshot, subs)
}

// Remove deletes the given toasts from the queue immediately. With no
// ids, the queue is emptied. Normally invoked by the removal timer a
// dismissal started; calling it directly is also fine.
func (s *Store) Remove(ids ...string) {
	s.mu.Lock()
	if len(ids) == 0 {
		for _, t := range s.toasts {
			s.cancelRemovalLocked(t.ID)
		}
		s.toasts = nil
	} else {
		for _, id := range ids {
			s.cancelRemovalLocked(id)
			if idx := s.indexLocked(id); idx >= 0 {
				s.toasts = append(s.toasts[:idx], s.toasts[idx+1:]...)
			}
		}
	}
	snapshot, subs := s.snapshotLocked()
	s.mu.Unlock()

	notify(snapshot, subs)
}

// Subscribe registers fn to receive a snapshot of the queue after every
// mutation. Notification is synchronous and follows registration order.
// The returned cancel detaches fn; calling it repeatedly is safe.
func (s *Store) Subscribe(fn func([]Toast)) (cancel func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Toasts returns a snapshot of the queue, newest first.
func (s *Store) Toasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]Toast, len(s.toasts))
	copy(snapshot, s.toasts)
	return snapshot
}

// indexLocked returns the position of id in the queue, or -1.
func (s *Store) indexLocked(id string) int {
	for i, t := range s.toasts {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// scheduleRemovalLocked starts the removal timer for id unless one is
// already pending.
func (s *Store) scheduleRemovalLocked(id string) {
	if _, ok := s.removals[id]; ok {
		return
	}
	s.removals[id] = s.sched.AfterFunc(s.removeDelay, func() {
		s.Remove(id)
	})
}

func (s *Store) cancelRemovalLocked(id string) {
	if t, ok := s.removals[id]; ok {
		t.Stop()
		delete(s.removals, id)
	}
}

// snapshotLocked copies the queue and subscriber list so notification
// can run without holding the lock. Subscribers may mutate the store
// from their callback without deadlocking.
func (s *Store) snapshotLocked() ([]Toast, []subscriber) {
	snapshot := make([]Toast, len(s.toasts))
	copy(snapshot, s.toasts)
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	return snapshot, subs
}

func notify(snapshot []Toast, subs []subscriber) {
	for _, sub := range subs {
		sub.fn(snapshot)
	}
}
