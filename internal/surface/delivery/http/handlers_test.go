package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/querycache"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/reconcile"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/reconcile/usecase"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/surface"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/visibility"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/jwt"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/log"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type recordingInvalidator struct {
	mu   sync.Mutex
	keys []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, key reconcile.QueryKey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, key.String())
}

func (r *recordingInvalidator) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.keys...)
}

type fakeFeed struct {
	mu       sync.Mutex
	observer querycache.Observer
}

func (f *fakeFeed) Watch(o querycache.Observer) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observer = o
	return func() {}
}

func (f *fakeFeed) publish(key reconcile.QueryKey, data string) {
	f.mu.Lock()
	o := f.observer
	f.mu.Unlock()
	if o != nil {
		o(key, json.RawMessage(data))
	}
}

type env struct {
	srv   *httptest.Server
	jwt   jwt.Manager
	inv   *recordingInvalidator
	feed  *fakeFeed
	uc    reconcile.UseCase
	hub   *surface.Hub
	wsURL string
}

func setup(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mgr, err := jwt.New(jwt.Config{SecretKey: testSecret, TTL: time.Hour})
	require.NoError(t, err)

	l := log.NewNop()
	em := visibility.NewEmitter(l, visibility.Hidden)
	go em.Run()

	inv := &recordingInvalidator{}
	uc := usecase.New(l, em, inv)
	feed := &fakeFeed{}
	hub := surface.NewHub(l, surface.Config{PongWait: 5 * time.Second}, uc, em, feed, nil)
	go hub.Run()

	r := gin.New()
	New(l, hub, mgr, "c-42", WSConfig{}).RegisterRoutes(r.Group(""))
	srv := httptest.NewServer(r)

	t.Cleanup(func() {
		srv.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = hub.Shutdown(ctx)
		_ = em.Shutdown(ctx)
	})

	return &env{
		srv:   srv,
		jwt:   mgr,
		inv:   inv,
		feed:  feed,
		uc:    uc,
		hub:   hub,
		wsURL: "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws",
	}
}

func (e *env) dial(t *testing.T, userID string) *websocket.Conn {
	t.Helper()
	token, err := e.jwt.Generate(userID, "coach")
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(e.wsURL+"?token="+token, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readServerFrame(t *testing.T, conn *websocket.Conn) surface.ServerFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f surface.ServerFrame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func TestUpgradeRejectsBadTokens(t *testing.T) {
	e := setup(t)

	foreign, err := e.jwt.Generate("c-43", "coach")
	require.NoError(t, err)

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"invalid", "?token=garbage", http.StatusUnauthorized},
		{"other user", "?token=" + foreign, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, resp, err := websocket.DefaultDialer.Dial(e.wsURL+tt.query, nil)
			require.Error(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestSurfaceLifecycle(t *testing.T) {
	e := setup(t)
	conn := e.dial(t, "c-42")

	require.NoError(t, conn.WriteJSON(surface.ClientFrame{
		Type: surface.FrameRegister,
		Keys: []reconcile.QueryKey{{"tasks", "c-42"}, {"check-ins", "c-42"}},
	}))
	assert.Equal(t, surface.ServerFrame{Type: surface.FrameRegistered, Keys: 2}, readServerFrame(t, conn))
	assert.Equal(t, 1, e.uc.Active())

	// Two visible reports without a hidden one sweep twice.
	for i := 0; i < 2; i++ {
		require.NoError(t, conn.WriteJSON(surface.ClientFrame{Type: surface.FrameVisibility, State: "visible"}))
	}
	want := []string{`["tasks","c-42"]`, `["check-ins","c-42"]`, `["tasks","c-42"]`, `["check-ins","c-42"]`}
	require.Eventually(t, func() bool { return len(e.inv.snapshot()) == 4 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, want, e.inv.snapshot())

	e.feed.publish(reconcile.QueryKey{"students", "c-42"}, `{"ignored":true}`)
	e.feed.publish(reconcile.QueryKey{"tasks", "c-42"}, `{"items":[1]}`)
	f := readServerFrame(t, conn)
	assert.Equal(t, surface.FrameQueryUpdated, f.Type)
	assert.Equal(t, reconcile.QueryKey{"tasks", "c-42"}, f.QueryKey)
	assert.JSONEq(t, `{"items":[1]}`, string(f.Data))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"nope"}`)))
	assert.Equal(t, surface.FrameError, readServerFrame(t, conn).Type)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return e.uc.Active() == 0 }, 2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return e.hub.GetStats().ActiveConnections == 0 }, 2*time.Second, 5*time.Millisecond)
}
