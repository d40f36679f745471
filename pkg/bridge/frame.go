package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/vango-dev/headless/pkg/carousel"
	"github.com/vango-dev/headless/pkg/toast"
)

// Frame type discriminators on the wire.
const (
	frameEvent    = "event"
	frameToasts   = "toasts"
	frameCarousel = "carousel"
	frameViewport = "viewport"
)

// inFrame is the envelope for client-to-server messages.
type inFrame struct {
	Type string         `json:"type"`
	Name string         `json:"name,omitempty"`
	Data map[string]any `json:"data,omitempty"`
}

// decodeFrame parses an inbound message and validates the envelope.
func decodeFrame(msg []byte) (inFrame, error) {
	var f inFrame
	if err := json.Unmarshal(msg, &f); err != nil {
		return inFrame{}, fmt.Errorf("decode frame: %w", err)
	}
	if f.Type != frameEvent {
		return inFrame{}, fmt.Errorf("decode frame: unknown type %q", f.Type)
	}
	if f.Name == "" {
		return inFrame{}, fmt.Errorf("decode frame: missing event name")
	}
	return f, nil
}

// toastsFrame pushes a snapshot of the toast queue.
type toastsFrame struct {
	Type   string        `json:"type"`
	Toasts []toast.Toast `json:"toasts"`
}

func newToastsFrame(ts []toast.Toast) toastsFrame {
	if ts == nil {
		ts = []toast.Toast{}
	}
	return toastsFrame{Type: frameToasts, Toasts: ts}
}

// carouselFrame pushes derived carousel state.
type carouselFrame struct {
	Type  string         `json:"type"`
	State carousel.State `json:"state"`
}

func newCarouselFrame(st carousel.State) carouselFrame {
	return carouselFrame{Type: frameCarousel, State: st}
}

// viewportFrame pushes the viewport classification.
type viewportFrame struct {
	Type   string `json:"type"`
	Mobile bool   `json:"mobile"`
}

func newViewportFrame(mobile bool) viewportFrame {
	return viewportFrame{Type: frameViewport, Mobile: mobile}
}
