package bridge

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/headless/pkg/timer"
	"github.com/vango-dev/headless/pkg/toast"
	"github.com/vango-dev/headless/pkg/viewport"
)

// Defaults for bridge tuning knobs.
const (
	DefaultCarouselItems = 5
	DefaultSendBuffer    = 64
	DefaultReadTimeout   = 60 * time.Second
	DefaultWriteTimeout  = 10 * time.Second
	DefaultPingInterval  = 30 * time.Second
)

// Bridge accepts WebSocket connections and runs one Session per client.
// All sessions share one toast store; carousel and viewport state is
// per session.
type Bridge struct {
	logger *slog.Logger
	store  *toast.Store
	sched  timer.Scheduler

	breakpoint    int
	debounce      time.Duration
	carouselItems int

	sendBuffer   int
	readTimeout  time.Duration
	writeTimeout time.Duration
	pingInterval time.Duration

	upgrader websocket.Upgrader

	middleware []Middleware
	handler    HandlerFunc

	mu       sync.Mutex
	sessions map[string]*Session
}

// New creates a bridge. With no options it gets a default toast store,
// the system scheduler, and the stock breakpoint and debounce values.
func New(opts ...BridgeOption) *Bridge {
	b := &Bridge{
		logger:        slog.Default().With("component", "bridge"),
		sched:         timer.System(),
		breakpoint:    viewport.DefaultBreakpoint,
		debounce:      viewport.DefaultDebounce,
		carouselItems: DefaultCarouselItems,
		sendBuffer:    DefaultSendBuffer,
		readTimeout:   DefaultReadTimeout,
		writeTimeout:  DefaultWriteTimeout,
		pingInterval:  DefaultPingInterval,
		sessions:      make(map[string]*Session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.store == nil {
		b.store = toast.New(toast.WithScheduler(b.sched))
	}

	// Compose the middleware chain once, outermost first.
	h := HandlerFunc(func(ctx context.Context, s *Session, e Event) error {
		return s.handle(ctx, e)
	})
	for i := len(b.middleware) - 1; i >= 0; i-- {
		h = b.middleware[i](h)
	}
	b.handler = h

	return b
}

// Store returns the shared toast store, so application code can enqueue
// notifications for every connected client.
func (b *Bridge) Store() *toast.Store {
	return b.store
}

// Router returns a chi router exposing the bridge endpoints.
func (b *Bridge) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/ws", b.handleWS)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return r
}

// ActiveSessions returns the number of connected sessions.
func (b *Bridge) ActiveSessions() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sessions)
}

// Shutdown closes every active session.
func (b *Bridge) Shutdown() {
	b.mu.Lock()
	open := make([]*Session, 0, len(b.sessions))
	for _, s := range b.sessions {
		open = append(open, s)
	}
	b.mu.Unlock()

	for _, s := range open {
		s.Close()
	}
}

// handleWS upgrades the request and starts a session.
func (b *Bridge) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	s := newSession(b, conn)

	b.mu.Lock()
	b.sessions[s.id] = s
	n := len(b.sessions)
	b.mu.Unlock()

	b.logger.Info("session opened", "session", s.id, "active", n)
	s.start()
}

func (b *Bridge) sessionClosed(s *Session) {
	b.mu.Lock()
	delete(b.sessions, s.id)
	b.mu.Unlock()
}
