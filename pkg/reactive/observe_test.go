package reactive

import "testing"

func TestObserveReceivesNewValues(t *testing.T) {
	sig := NewSignal("initial")

	var got []string
	stop := Observe(sig, func(v string) {
		got = append(got, v)
	})
	defer stop()

	if len(got) != 0 {
		t.Fatalf("observer fired at subscription time: %v", got)
	}

	sig.Set("a")
	sig.Set("b")

	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("expected [a b], got %v", got)
	}
}

func TestObserveCleanupDetaches(t *testing.T) {
	sig := NewSignal(0)

	calls := 0
	stop := Observe(sig, func(int) { calls++ })

	sig.Set(1)
	stop()
	sig.Set(2)

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}

	// Second stop is a no-op.
	stop()
}

func TestObserveMultiple(t *testing.T) {
	sig := NewSignal(0)

	a, b := 0, 0
	stopA := Observe(sig, func(v int) { a = v })
	stopB := Observe(sig, func(v int) { b = v })
	defer stopA()
	defer stopB()

	sig.Set(7)

	if a != 7 || b != 7 {
		t.Errorf("expected both observers to see 7, got a=%d b=%d", a, b)
	}

	stopA()
	sig.Set(9)

	if a != 7 {
		t.Errorf("detached observer updated to %d", a)
	}
	if b != 9 {
		t.Errorf("remaining observer missed update, got %d", b)
	}
}
