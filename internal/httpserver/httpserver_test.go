package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/channel"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/middleware"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/reconcile"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/reconcile/usecase"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/surface"
	transportRedis "github.com/HaokunYang123/routine-craft-bot-sub002/internal/transport/redis"
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

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) (time.Duration, error) { return time.Millisecond, p.err }

type fakeSubscriber struct {
	mu       sync.Mutex
	startErr error
	started  []channel.Name
	stopped  bool
	health   transportRedis.Health
}

func (s *fakeSubscriber) Start(_ context.Context, names []channel.Name) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = names
	return s.startErr
}

func (s *fakeSubscriber) Shutdown(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	return nil
}

func (s *fakeSubscriber) HealthInfo() transportRedis.Health { return s.health }

type fixture struct {
	srv *HTTPServer
	mgr jwt.Manager
	em  *visibility.Emitter
	inv *recordingInvalidator
	sub *fakeSubscriber
}

func newFixture(t *testing.T, redis Pinger, sub *fakeSubscriber) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mgr, err := jwt.New(jwt.Config{SecretKey: testSecret, TTL: time.Hour})
	require.NoError(t, err)

	l := log.NewNop()
	em := visibility.NewEmitter(l, visibility.Hidden)
	go em.Run()

	inv := &recordingInvalidator{}
	uc := usecase.New(l, em, inv)
	hub := surface.NewHub(l, surface.Config{}, uc, em, nil, nil)

	cfg := Config{
		Host:               "127.0.0.1",
		Port:               8090,
		CORS:               middleware.DefaultCORSConfig(),
		JWTManager:         mgr,
		SessionUserID:      "c-42",
		Scheme:             channel.DefaultScheme(),
		Channels:           []channel.Name{"coach-tasks-c-42", "coach-checkins-c-42"},
		Reconcile:          uc,
		VisibilitySource:   em,
		VisibilityReporter: em,
		Hub:                hub,
		Redis:              redis,
	}
	if sub != nil {
		cfg.Subscriber = sub
	}

	srv, err := New(l, cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = em.Shutdown(ctx)
	})

	return &fixture{srv: srv, mgr: mgr, em: em, inv: inv, sub: sub}
}

func (f *fixture) do(t *testing.T, method, path, body string, auth bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth {
		token, err := f.mgr.Generate("c-42", "coach")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.srv.gin.ServeHTTP(w, req)
	return w
}

func TestNewValidates(t *testing.T) {
	_, err := New(log.NewNop(), Config{Port: 8090})
	assert.Error(t, err)
}

func TestHealthDegradedWithoutTransport(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.srv.mapHandlers()

	w := f.do(t, http.MethodGet, "/health", "", false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data healthResp `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Data.Status)
	assert.Equal(t, "disabled", resp.Data.Push.Redis)
	assert.Equal(t, "hidden", resp.Data.Visibility)
}

func TestHealthHealthy(t *testing.T) {
	sub := &fakeSubscriber{health: transportRedis.Health{
		Active:   true,
		Channels: []string{"coach-tasks-c-42"},
	}}
	f := newFixture(t, fakePinger{}, sub)
	f.srv.mapHandlers()

	w := f.do(t, http.MethodGet, "/health", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.Contains(t, w.Body.String(), `"coach-tasks-c-42"`)
}

func TestReady(t *testing.T) {
	f := newFixture(t, fakePinger{err: errors.New("dial tcp: refused")}, nil)
	f.srv.mapHandlers()
	assert.Equal(t, http.StatusServiceUnavailable, f.do(t, http.MethodGet, "/ready", "", false).Code)

	ok := newFixture(t, fakePinger{}, nil)
	ok.srv.mapHandlers()
	assert.Equal(t, http.StatusOK, ok.do(t, http.MethodGet, "/ready", "", false).Code)
}

func TestMetricsExposed(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.srv.mapHandlers()

	w := f.do(t, http.MethodGet, "/metrics", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "reconcile_registrations_active")
}

func TestAPIRequiresAuth(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.srv.mapHandlers()

	for _, path := range []string{Api + "/channels", Api + "/visibility", Api + "/reconcile/stats"} {
		assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, path, "", false).Code, path)
	}
}

func TestChannelsForSession(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.srv.mapHandlers()

	w := f.do(t, http.MethodGet, Api+"/channels", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"coach-tasks-c-42"`)
	assert.Contains(t, w.Body.String(), `"coach-checkins-c-42"`)
}

func TestVisibleReportSweepsRegistrations(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.srv.mapHandlers()

	cancel := f.srv.reconcileUC.Register(reconcile.Set{{"tasks", "c-42"}, {"checkins", "c-42"}})
	defer cancel()

	w := f.do(t, http.MethodPost, Api+"/visibility", `{"state":"visible"}`, true)
	require.Equal(t, http.StatusAccepted, w.Code)

	assert.Eventually(t, func() bool {
		return len(f.inv.snapshot()) == 2
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{`["tasks","c-42"]`, `["checkins","c-42"]`}, f.inv.snapshot())
}

func TestManualReconcile(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.srv.mapHandlers()

	w := f.do(t, http.MethodPost, Api+"/reconcile", `{"keys":[["assignments","c-42"]]}`, true)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, []string{`["assignments","c-42"]`}, f.inv.snapshot())
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func TestRunDegradesAndShutsDown(t *testing.T) {
	sub := &fakeSubscriber{startErr: errors.New("connection refused")}
	f := newFixture(t, nil, sub)
	f.srv.port = freePort(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.srv.Run(ctx) }()

	assert.Eventually(t, func() bool {
		sub.mu.Lock()
		defer sub.mu.Unlock()
		return sub.started != nil
	}, 2*time.Second, 20*time.Millisecond)

	url := "http://127.0.0.1:" + strconv.Itoa(f.srv.port) + "/live"
	assert.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	sub.mu.Lock()
	defer sub.mu.Unlock()
	assert.Equal(t, []channel.Name{"coach-tasks-c-42", "coach-checkins-c-42"}, sub.started)
	assert.True(t, sub.stopped)
}

func TestSwaggerDocServed(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.srv.mapHandlers()

	w := f.do(t, http.MethodGet, "/swagger/doc.json", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/api/v1/reconcile"`)
	assert.Contains(t, w.Body.String(), `"Realtime Sync Agent"`)
}
