package reactive

// Listener is anything that can be notified when a signal changes.
type Listener interface {
	// MarkDirty notifies the listener that a value it subscribed to
	// has changed. Implementations re-read the signal via Peek.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication on subscribe.
	ID() uint64
}

// Cleanup detaches a subscription. Safe to call more than once.
type Cleanup func()
