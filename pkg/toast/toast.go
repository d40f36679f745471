package toast

import "time"

// Variant selects the visual treatment a toast asks its renderer for.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Toast is a single notification record.
//
// Callers populate the content fields and pass the value to Store.Add;
// the store assigns ID, Open, and OnOpenChange.
type Toast struct {
	// ID uniquely identifies the toast. Assigned by the store.
	ID string `json:"id"`

	// Title is the optional headline.
	Title string `json:"title,omitempty"`

	// Description is the optional body text.
	Description string `json:"description,omitempty"`

	// ActionLabel and ActionID describe an optional action control.
	// The renderer shows ActionLabel and reports ActionID back as an
	// event when the control is activated.
	ActionLabel string `json:"actionLabel,omitempty"`
	ActionID    string `json:"actionID,omitempty"`

	// Variant is the style tag. Empty means VariantDefault.
	Variant Variant `json:"variant,omitempty"`

	// Open is the current visibility. A dismissed toast stays in the
	// queue with Open=false until the removal delay elapses.
	Open bool `json:"open"`

	// Duration, when positive, auto-dismisses the toast that long
	// after Add. Zero means the toast stays until dismissed.
	Duration time.Duration `json:"-"`

	// OnOpenChange is invoked when visibility is toggled from the
	// outside, e.g. by a close affordance. The store assigns it so
	// that OnOpenChange(false) dismisses the toast.
	OnOpenChange func(open bool) `json:"-"`
}

// Patch is a partial update for a toast. Nil fields are left unchanged.
type Patch struct {
	Title       *string
	Description *string
	ActionLabel *string
	ActionID    *string
	Variant     *Variant
}

// String returns a pointer to s, for building Patch values inline.
func String(s string) *string { return &s }

// Handle refers to a toast created by Add and carries the operations
// bound to that toast's id.
type Handle struct {
	// ID is the generated toast id.
	ID string

	store *Store
}

// Update merges the patch into the toast. No-op once the toast is gone.
func (h Handle) Update(p Patch) {
	h.store.Update(h.ID, &p)
}

// Dismiss closes the toast and schedules its removal.
func (h Handle) Dismiss() {
	h.store.Dismiss(h.ID)
}
