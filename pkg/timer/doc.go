// Package timer abstracts one-shot cancellable timers so time-driven
// behavior (toast removal delays, viewport debounce) can run against a
// deterministic virtual clock in tests.
//
// Production code uses the system scheduler:
//
//	sched := timer.System()
//	t := sched.AfterFunc(250*time.Millisecond, recompute)
//	t.Stop() // cancel if still pending
//
// Tests use a Manual scheduler and drive time explicitly:
//
//	clock := timer.NewManual()
//	sched := timer.Scheduler(clock)
//	// ... code under test schedules timers ...
//	clock.Advance(250 * time.Millisecond) // fires due callbacks inline
package timer
