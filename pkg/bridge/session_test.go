package bridge

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vango-dev/headless/pkg/timer"
	"github.com/vango-dev/headless/pkg/toast"
)

// testClient wraps a dialed WebSocket plus the server fixtures.
type testClient struct {
	t     *testing.T
	conn  *websocket.Conn
	srv   *httptest.Server
	b     *Bridge
	clock *timer.Manual
}

func dialBridge(t *testing.T, opts ...BridgeOption) *testClient {
	t.Helper()

	clock := timer.NewManual()
	opts = append([]BridgeOption{WithScheduler(clock)}, opts...)
	b := New(opts...)

	srv := httptest.NewServer(b.Router())
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	c := &testClient{t: t, conn: conn, srv: srv, b: b, clock: clock}
	t.Cleanup(c.close)
	return c
}

func (c *testClient) close() {
	c.conn.Close()
	c.b.Shutdown()
	c.srv.Close()
}

func (c *testClient) sendEvent(name string, data map[string]any) {
	c.t.Helper()
	err := c.conn.WriteJSON(map[string]any{
		"type": "event",
		"name": name,
		"data": data,
	})
	require.NoError(c.t, err)
}

// nextFrame reads frames until one of the wanted type arrives.
func (c *testClient) nextFrame(wantType string) map[string]any {
	c.t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for {
		c.conn.SetReadDeadline(deadline)
		_, msg, err := c.conn.ReadMessage()
		require.NoError(c.t, err, "waiting for %q frame", wantType)

		var f map[string]any
		require.NoError(c.t, json.Unmarshal(msg, &f))
		if f["type"] == wantType {
			return f
		}
	}
}

// sync round-trips a scroll event so every previously sent frame is
// guaranteed to have been dispatched. The offset value is arbitrary but
// unique enough to change carousel state each time.
func (c *testClient) sync(scrolled float64) {
	c.t.Helper()
	c.sendEvent("scroll", map[string]any{
		"top":      -scrolled,
		"height":   5000,
		"offset":   scrolled,
		"viewport": 1000,
	})
	c.nextFrame("carousel")
}

func TestSessionInitialFrames(t *testing.T) {
	c := dialBridge(t)

	// On connect the session pushes one snapshot of everything.
	toasts := c.nextFrame("toasts")
	assert.Empty(t, toasts["toasts"])

	vp := c.nextFrame("viewport")
	assert.Equal(t, false, vp["mobile"])

	car := c.nextFrame("carousel")
	st := car["state"].(map[string]any)
	assert.Equal(t, 0.0, st["progress"])
}

func TestSessionCarouselFromScrollEvents(t *testing.T) {
	c := dialBridge(t)
	c.nextFrame("carousel") // initial snapshot

	c.sendEvent("scroll", map[string]any{
		"top":      -2500,
		"height":   5000,
		"offset":   2500,
		"viewport": 1000,
	})

	f := c.nextFrame("carousel")
	st := f["state"].(map[string]any)
	assert.Equal(t, 0.5, st["progress"])
	assert.Equal(t, 2.0, st["activeIndex"])
	assert.Equal(t, true, st["sticky"])
	assert.Equal(t, 5000.0, st["totalScrollHeight"])
}

func TestSessionCarouselInitChangesItemCount(t *testing.T) {
	c := dialBridge(t) // default 5 items
	c.nextFrame("carousel")

	c.sendEvent("carousel:init", map[string]any{"items": 2})
	c.sendEvent("scroll", map[string]any{
		"top":      -1500,
		"height":   2000,
		"offset":   1500,
		"viewport": 1000,
	})

	// With 2 items the virtual region is 2000px, so 1500px scrolled
	// is progress 0.75, second item. Frames between the init and the
	// scroll may carry stale geometry; skip until the new region shows.
	for {
		f := c.nextFrame("carousel")
		st := f["state"].(map[string]any)
		if st["totalScrollHeight"] == 2000.0 && st["progress"] == 0.75 {
			assert.Equal(t, 1.0, st["activeIndex"])
			return
		}
	}
}

func TestSessionViewportDebounce(t *testing.T) {
	c := dialBridge(t)
	c.nextFrame("viewport") // initial false

	c.sendEvent("media", map[string]any{"width": 600})
	// The scroll round-trip proves the media event was dispatched
	// before we advance the virtual clock.
	c.sync(100)

	c.clock.Advance(DefaultPingInterval) // covers the 250ms debounce

	f := c.nextFrame("viewport")
	assert.Equal(t, true, f["mobile"])
}

func TestSessionToastBroadcast(t *testing.T) {
	c := dialBridge(t)
	c.nextFrame("toasts") // initial empty snapshot

	c.b.Store().Add(toast.Toast{Title: "deploy finished"})

	f := c.nextFrame("toasts")
	items := f["toasts"].([]any)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, "deploy finished", first["title"])
	assert.Equal(t, true, first["open"])
}

func TestSessionToastDismissEvent(t *testing.T) {
	c := dialBridge(t)
	c.nextFrame("toasts")

	h := c.b.Store().Add(toast.Toast{Title: "undoable"})
	f := c.nextFrame("toasts")
	require.Len(t, f["toasts"].([]any), 1)

	c.sendEvent("toast:dismiss", map[string]any{"id": h.ID})

	f = c.nextFrame("toasts")
	items := f["toasts"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, false, items[0].(map[string]any)["open"])
}

func TestSessionDismissAllEvent(t *testing.T) {
	c := dialBridge(t, WithStore(toast.New(toast.WithLimit(2))))
	c.nextFrame("toasts")

	c.b.Store().Add(toast.Toast{Title: "A"})
	c.b.Store().Add(toast.Toast{Title: "B"})

	c.sendEvent("toast:dismiss", nil)

	// Skip intermediate snapshots until both toasts show closed;
	// nextFrame's read deadline bounds the wait.
	for {
		f := c.nextFrame("toasts")
		items := f["toasts"].([]any)
		if len(items) != 2 {
			continue
		}
		allClosed := true
		for _, it := range items {
			if it.(map[string]any)["open"] == true {
				allClosed = false
			}
		}
		if allClosed {
			return
		}
	}
}

func TestSessionUnknownEventKeepsConnection(t *testing.T) {
	c := dialBridge(t)
	c.nextFrame("carousel")

	c.sendEvent("bogus", map[string]any{"x": 1})

	// The connection must survive; a later event still round-trips.
	c.sync(300)
}

func TestSessionMalformedFrameKeepsConnection(t *testing.T) {
	c := dialBridge(t)
	c.nextFrame("carousel")

	require.NoError(t, c.conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	c.sync(300)
}

func TestSessionCountAndShutdown(t *testing.T) {
	c := dialBridge(t)
	c.nextFrame("carousel")

	require.Eventually(t, func() bool {
		return c.b.ActiveSessions() == 1
	}, 5*time.Second, 10*time.Millisecond)

	c.b.Shutdown()

	require.Eventually(t, func() bool {
		return c.b.ActiveSessions() == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestSessionTeardownLeaksNothing(t *testing.T) {
	// Snapshot pre-existing goroutines before the session spins up.
	ignoreExisting := goleak.IgnoreCurrent()
	defer goleak.VerifyNone(t, ignoreExisting)

	c := dialBridge(t)
	c.nextFrame("carousel")
	c.sync(100)

	c.conn.Close()
	require.Eventually(t, func() bool {
		return c.b.ActiveSessions() == 0
	}, 5*time.Second, 10*time.Millisecond)

	c.b.Shutdown()
	c.srv.Close()
}

func TestSessionObserversRegisteredBeforeStart(t *testing.T) {
	b := New()
	up := websocket.Upgrader{}
	sessCh := make(chan *Session, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		sessCh <- newSession(b, conn)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	s := <-sessCh

	// Construction alone must leave the session fully closable: the
	// toast subscription, viewport observer, and flag teardown are
	// all on the cleanup list before start ever runs.
	require.Len(t, s.cleanups, 3)

	s.Close()
	b.Store().Add(toast.Toast{Title: "late"})
	assert.Empty(t, s.out)
}

func TestSessionCarouselInitEmitsSingleFrame(t *testing.T) {
	c := dialBridge(t)
	c.nextFrame("carousel") // initial zero state

	c.sendEvent("scroll", map[string]any{
		"top":      -1500,
		"height":   2000,
		"offset":   1500,
		"viewport": 1000,
	})
	c.nextFrame("carousel") // 5-item region

	c.sendEvent("carousel:init", map[string]any{"items": 2})
	f := c.nextFrame("carousel")
	st := f["state"].(map[string]any)
	require.Equal(t, 2000.0, st["totalScrollHeight"])
	require.Equal(t, 0.75, st["progress"])

	// The very next carousel frame must come from the follow-up
	// scroll, not a second init snapshot.
	c.sendEvent("scroll", map[string]any{
		"top":      -500,
		"height":   2000,
		"offset":   500,
		"viewport": 1000,
	})
	f = c.nextFrame("carousel")
	st = f["state"].(map[string]any)
	assert.Equal(t, 0.25, st["progress"])
	assert.Equal(t, 0.0, st["activeIndex"])
}
