package reactive

// observer adapts a plain callback into a Listener. On every change it
// re-reads the signal and hands the fresh value to the callback.
type observer[T any] struct {
	id  uint64
	sig *Signal[T]
	fn  func(T)
}

func (o *observer[T]) MarkDirty() {
	o.fn(o.sig.Peek())
}

func (o *observer[T]) ID() uint64 {
	return o.id
}

// Observe subscribes fn to a signal. fn is invoked synchronously with
// the new value on every change, and is not invoked for the current
// value at subscription time. The returned Cleanup detaches fn; calling
// it more than once is safe.
func Observe[T any](sig *Signal[T], fn func(T)) Cleanup {
	o := &observer[T]{
		id:  nextID(),
		sig: sig,
		fn:  fn,
	}
	sig.Subscribe(o)

	return func() {
		sig.Unsubscribe(o)
	}
}
