package timer

import "time"

// Timer is a scheduled one-shot callback.
type Timer interface {
	// Stop cancels the timer. It reports whether the call prevented
	// the callback from firing.
	Stop() bool
}

// Scheduler schedules one-shot callbacks after a delay.
type Scheduler interface {
	// AfterFunc schedules fn to run after duration d.
	AfterFunc(d time.Duration, fn func()) Timer
}

// systemScheduler schedules on the runtime timer heap.
type systemScheduler struct{}

// System returns the wall-clock scheduler backed by time.AfterFunc.
func System() Scheduler {
	return systemScheduler{}
}

func (systemScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return systemTimer{time.AfterFunc(d, fn)}
}

type systemTimer struct {
	t *time.Timer
}

func (s systemTimer) Stop() bool {
	return s.t.Stop()
}
