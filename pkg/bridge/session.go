package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/headless/pkg/carousel"
	"github.com/vango-dev/headless/pkg/reactive"
	"github.com/vango-dev/headless/pkg/toast"
	"github.com/vango-dev/headless/pkg/viewport"
)

// Session is the server side of one WebSocket connection. It owns the
// per-client state machines (carousel tracker, viewport flag) and a
// subscription to the shared toast store.
type Session struct {
	id     string
	conn   *websocket.Conn
	logger *slog.Logger
	bridge *Bridge

	store *toast.Store
	geo   *sessionGeometry
	flag  *viewport.Flag

	// trackerMu guards tracker replacement on carousel:init.
	trackerMu   sync.RWMutex
	tracker     *carousel.Tracker
	stopTracker reactive.Cleanup

	// widthMu guards the last client-reported viewport width, read by
	// the flag's measure func when its debounce timer fires.
	widthMu  sync.RWMutex
	width    int
	hasWidth bool

	out       chan any
	done      chan struct{}
	closeOnce sync.Once
	cleanups  []func()
}

// ID returns the session's unique id.
func (s *Session) ID() string {
	return s.id
}

func newSession(b *Bridge, conn *websocket.Conn) *Session {
	s := &Session{
		id:     uuid.NewString(),
		conn:   conn,
		bridge: b,
		store:  b.store,
		geo:    &sessionGeometry{},
		out:    make(chan any, b.sendBuffer),
		done:   make(chan struct{}),
	}
	s.logger = b.logger.With("session", s.id)

	s.flag = viewport.NewFlag(s.measureWidth,
		viewport.WithBreakpoint(b.breakpoint),
		viewport.WithDebounce(b.debounce),
		viewport.WithScheduler(b.sched),
	)
	s.setTracker(carousel.NewTracker(s.geo, b.carouselItems))

	// Observers are registered here, not in start, so cleanups is
	// complete before the bridge can see the session. Shutdown may
	// close a session that never started.
	cancelToasts := s.store.Subscribe(func(ts []toast.Toast) {
		s.send(newToastsFrame(ts))
	})
	stopViewport := reactive.Observe(s.flag.Signal(), func(mobile bool) {
		s.send(newViewportFrame(mobile))
	})
	s.cleanups = append(s.cleanups, cancelToasts, stopViewport, s.flag.Close)

	return s
}

// start pushes the initial snapshots and spins up the read and write
// loops.
func (s *Session) start() {
	s.send(newToastsFrame(s.store.Toasts()))
	s.send(newViewportFrame(s.flag.Mobile()))
	s.send(newCarouselFrame(s.currentTracker().State()))

	go s.readLoop()
	go s.writeLoop()
}

// readLoop reads frames until the connection drops. Malformed frames
// and handler errors are logged and skipped; only transport errors end
// the session.
func (s *Session) readLoop() {
	defer s.Close()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.bridge.readTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		f, err := decodeFrame(msg)
		if err != nil {
			s.logger.Warn("dropping frame", "error", err)
			continue
		}

		e := Event{Name: f.Name, Data: f.Data}
		if err := s.bridge.handler(context.Background(), s, e); err != nil {
			s.logger.Warn("event handler", "event", e.Name, "error", err)
		}
	}
}

// writeLoop drains the outbound channel and keeps the connection alive
// with pings.
func (s *Session) writeLoop() {
	ticker := time.NewTicker(s.bridge.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-s.out:
			s.conn.SetWriteDeadline(time.Now().Add(s.bridge.writeTimeout))
			if err := s.conn.WriteJSON(msg); err != nil {
				s.logger.Error("write error", "error", err)
				s.Close()
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(s.bridge.writeTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.Close()
				return
			}

		case <-s.done:
			return
		}
	}
}

// handle is the innermost event handler, below the middleware chain.
func (s *Session) handle(_ context.Context, e Event) error {
	switch e.Name {
	case "scroll":
		s.geo.applyScroll(
			e.Float("top"),
			e.Float("height"),
			e.Float("offset"),
			!e.Bool("missing"),
		)
		if e.Has("viewport") {
			s.geo.applyViewport(e.Float("viewport"))
		}
		s.currentTracker().OnScroll()
		return nil

	case "resize":
		s.geo.applyViewport(e.Float("viewport"))
		s.setWidth(e.Int("width"))
		s.flag.OnChange()
		// Viewport height changes the virtual scroll range too.
		s.currentTracker().OnScroll()
		return nil

	case "media":
		s.setWidth(e.Int("width"))
		s.flag.OnChange()
		return nil

	case "carousel:init":
		items := e.Int("items")
		if items <= 0 {
			return fmt.Errorf("carousel:init: invalid item count %d", items)
		}
		s.resetTracker(items)
		return nil

	case "toast:dismiss":
		s.dismissToast(e.String("id"))
		return nil

	default:
		return fmt.Errorf("unknown event %q", e.Name)
	}
}

// dismissToast routes a client close affordance through the toast's
// open-change callback, so the behavior matches a programmatic toggle.
func (s *Session) dismissToast(id string) {
	if id == "" {
		s.store.Dismiss()
		return
	}
	for _, t := range s.store.Toasts() {
		if t.ID == id && t.OnOpenChange != nil {
			t.OnOpenChange(false)
			return
		}
	}
	// Unknown ids are absorbed by the store.
	s.store.Dismiss(id)
}

// send queues a frame for the write loop, dropping it if the client is
// too far behind. Dropped state frames are safe: every later change
// carries a full snapshot.
func (s *Session) send(frame any) {
	select {
	case <-s.done:
	case s.out <- frame:
	default:
		s.logger.Warn("outbound buffer full, dropping frame")
	}
}

// Close tears the session down exactly once: observers detached,
// pending timers cancelled, connection closed.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.trackerMu.Lock()
		if s.stopTracker != nil {
			s.stopTracker()
			s.stopTracker = nil
		}
		s.trackerMu.Unlock()
		for _, fn := range s.cleanups {
			fn()
		}
		s.conn.Close()
		s.bridge.sessionClosed(s)
		s.logger.Debug("session closed")
	})
}

// measureWidth is the viewport flag's measurement source: the latest
// client-reported width. No report yet behaves like a missing window.
func (s *Session) measureWidth() (int, bool) {
	s.widthMu.RLock()
	defer s.widthMu.RUnlock()
	return s.width, s.hasWidth
}

func (s *Session) setWidth(w int) {
	s.widthMu.Lock()
	defer s.widthMu.Unlock()
	s.width = w
	s.hasWidth = true
}

func (s *Session) currentTracker() *carousel.Tracker {
	s.trackerMu.RLock()
	defer s.trackerMu.RUnlock()
	return s.tracker
}

// setTracker installs a tracker and observes its state signal.
func (s *Session) setTracker(t *carousel.Tracker) {
	s.trackerMu.Lock()
	if s.stopTracker != nil {
		s.stopTracker()
	}
	s.tracker = t
	s.stopTracker = reactive.Observe(t.Signal(), func(st carousel.State) {
		s.send(newCarouselFrame(st))
	})
	s.trackerMu.Unlock()
}

// resetTracker rebuilds the tracker for a new item count. OnScroll
// publishes through the freshly installed observer, so a changed item
// count yields exactly one frame; an unchanged derived state yields
// none, and the client keeps its current snapshot.
func (s *Session) resetTracker(items int) {
	s.setTracker(carousel.NewTracker(s.geo, items))
	s.currentTracker().OnScroll()
}
