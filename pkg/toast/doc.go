// Package toast implements a bounded, observable notification queue.
//
// A Store holds the application's toast queue. It is an explicit object,
// not module-level state: construct one at startup and share it by
// reference with every consumer that needs the same queue.
//
//	store := toast.New(toast.WithLimit(3))
//
//	handle := store.Add(toast.Toast{
//	    Title:       "Project deleted",
//	    Description: "pipelines/42 is gone",
//	    Variant:     toast.VariantDestructive,
//	})
//	handle.Update(toast.Patch{Description: toast.String("restored")})
//	handle.Dismiss()
//
// Consumers subscribe for snapshots of the queue:
//
//	cancel := store.Subscribe(func(ts []toast.Toast) {
//	    session.Send(toastFrame(ts))
//	})
//	defer cancel()
//
// # Lifecycle
//
// A toast is added open, may be updated in place, and is dismissed in
// two phases: Dismiss sets Open to false immediately (so the UI can run
// its exit animation) and the entry is deleted from the queue only after
// the store's removal delay elapses.
//
// # Failure policy
//
// No operation returns an error or panics for an unknown id or a nil
// patch. A notification queue is ancillary infrastructure; it absorbs
// misuse silently rather than becoming a source of failures itself.
package toast
