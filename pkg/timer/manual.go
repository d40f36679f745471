package timer

import (
	"sort"
	"sync"
	"time"
)

// Manual is a deterministic Scheduler for tests. Time only moves when
// Advance is called; due callbacks run inline on the advancing
// goroutine, in due-time order (schedule order for equal due times).
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     uint64
	pending []*manualTimer
}

// NewManual creates a virtual-clock scheduler starting at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc schedules fn to run once the clock has advanced by d.
// A non-positive d fires on the next Advance call, not inline.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTimer{
		owner: m,
		due:   m.now + d,
		seq:   m.seq,
		fn:    fn,
	}
	m.pending = append(m.pending, t)
	return t
}

// Advance moves the clock forward by d, firing every timer whose due
// time falls within the window. Callbacks may schedule further timers;
// those fire too if they come due before the window closes.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d

	for {
		t := m.popDue(target)
		if t == nil {
			break
		}
		// Clock observes the timer's own due time while it runs,
		// so nested AfterFunc calls measure from the right origin.
		m.now = t.due
		m.mu.Unlock()
		t.fn()
		m.mu.Lock()
	}

	m.now = target
	m.mu.Unlock()
}

// Now returns the current virtual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of timers waiting to fire.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// popDue removes and returns the earliest timer due at or before
// target, or nil. Caller holds m.mu.
func (m *Manual) popDue(target time.Duration) *manualTimer {
	if len(m.pending) == 0 {
		return nil
	}

	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].due != m.pending[j].due {
			return m.pending[i].due < m.pending[j].due
		}
		return m.pending[i].seq < m.pending[j].seq
	})

	if m.pending[0].due > target {
		return nil
	}

	t := m.pending[0]
	m.pending = m.pending[1:]
	return t
}

type manualTimer struct {
	owner *Manual
	due   time.Duration
	seq   uint64
	fn    func()
}

// Stop cancels the timer if it has not fired yet.
func (t *manualTimer) Stop() bool {
	m := t.owner
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.pending {
		if p == t {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return true
		}
	}
	return false
}
