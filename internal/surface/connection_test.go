package surface

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/reconcile"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/visibility"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/log"
)

// --- Mocks ---

type MockUseCase struct {
	mock.Mock
	cancels atomic.Int64
}

func (m *MockUseCase) Register(set reconcile.Set) reconcile.CancelFunc {
	m.Called(set)
	return func() { m.cancels.Add(1) }
}

func (m *MockUseCase) Reconcile(ctx context.Context, set reconcile.Set) error {
	return m.Called(ctx, set).Error(0)
}

func (m *MockUseCase) Active() int { return 0 }

type MockReporter struct {
	mock.Mock
}

func (m *MockReporter) Report(ctx context.Context, state visibility.State) error {
	return m.Called(ctx, state).Error(0)
}

type fakePresets map[string]reconcile.Set

var errNoPreset = errors.New("preset not found")

func (f fakePresets) Lookup(name string) (reconcile.Set, error) {
	s, ok := f[name]
	if !ok {
		return nil, errNoPreset
	}
	return s, nil
}

func newTestHub(uc reconcile.UseCase, r visibility.Reporter, p Presets) *Hub {
	return NewHub(log.NewNop(), Config{SendBuffer: 8}, uc, r, nil, p)
}

func readFrame(t *testing.T, c *Connection) ServerFrame {
	t.Helper()
	select {
	case data := <-c.send:
		var f ServerFrame
		require.NoError(t, json.Unmarshal(data, &f))
		return f
	default:
		t.Fatal("no frame queued")
		return ServerFrame{}
	}
}

// --- Tests ---

func TestRegisterFrameWithKeys(t *testing.T) {
	uc := &MockUseCase{}
	set := reconcile.Set{{"tasks", "c-42"}, {"check-ins", "c-42"}}
	uc.On("Register", set).Once()

	c := newConnection(newTestHub(uc, nil, nil), nil, "c-42")
	err := c.handleFrame(context.Background(), []byte(`{"type":"register","keys":[["tasks","c-42"],["check-ins","c-42"]]}`))
	require.NoError(t, err)

	assert.Equal(t, ServerFrame{Type: FrameRegistered, Keys: 2}, readFrame(t, c))
	assert.Equal(t, set, c.Set())
	assert.True(t, c.watches(reconcile.QueryKey{"check-ins", "c-42"}))
	uc.AssertExpectations(t)
}

func TestRegisterFrameReplacesPrevious(t *testing.T) {
	uc := &MockUseCase{}
	uc.On("Register", mock.Anything)

	c := newConnection(newTestHub(uc, nil, fakePresets{"dashboard": {{"tasks", "c-42"}}}), nil, "c-42")
	require.NoError(t, c.handleFrame(context.Background(), []byte(`{"type":"register","keys":[["a"]]}`)))
	require.NoError(t, c.handleFrame(context.Background(), []byte(`{"type":"register","preset":"dashboard"}`)))

	assert.EqualValues(t, 1, uc.cancels.Load(), "first registration must be released")
	assert.Equal(t, reconcile.Set{{"tasks", "c-42"}}, c.Set())

	c.release()
	c.release()
	assert.EqualValues(t, 2, uc.cancels.Load())
	assert.Empty(t, c.Set())
}

func TestRegisterAfterReleaseIsCancelled(t *testing.T) {
	uc := &MockUseCase{}
	uc.On("Register", mock.Anything)

	c := newConnection(newTestHub(uc, nil, nil), nil, "c-42")
	c.release()
	require.NoError(t, c.handleFrame(context.Background(), []byte(`{"type":"register","keys":[["a"]]}`)))

	assert.EqualValues(t, 1, uc.cancels.Load())
	assert.False(t, c.watches(reconcile.QueryKey{"a"}))
}

func TestRejectedFrames(t *testing.T) {
	tests := []struct {
		name    string
		frame   string
		presets Presets
		wantErr error
	}{
		{"not json", `{`, nil, ErrInvalidFrame},
		{"unknown type", `{"type":"subscribe"}`, nil, ErrUnknownFrame},
		{"keys and preset", `{"type":"register","keys":[["a"]],"preset":"x"}`, nil, ErrAmbiguousRegister},
		{"neither", `{"type":"register"}`, nil, ErrAmbiguousRegister},
		{"presets disabled", `{"type":"register","preset":"x"}`, nil, ErrPresetsDisabled},
		{"unknown preset", `{"type":"register","preset":"x"}`, fakePresets{}, errNoPreset},
		{"empty token", `{"type":"register","keys":[["tasks",""]]}`, nil, reconcile.ErrEmptyToken},
		{"bad state", `{"type":"visibility","state":"prerender"}`, nil, visibility.ErrInvalidState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &MockUseCase{}
			c := newConnection(newTestHub(uc, &MockReporter{}, tt.presets), nil, "c-42")

			err := c.handleFrame(context.Background(), []byte(tt.frame))
			assert.ErrorIs(t, err, tt.wantErr)
			uc.AssertNotCalled(t, "Register", mock.Anything)
		})
	}
}

func TestVisibilityFrameReports(t *testing.T) {
	r := &MockReporter{}
	r.On("Report", mock.Anything, visibility.Visible).Return(nil).Twice()

	c := newConnection(newTestHub(&MockUseCase{}, r, nil), nil, "c-42")
	for i := 0; i < 2; i++ {
		require.NoError(t, c.handleFrame(context.Background(), []byte(`{"type":"visibility","state":"visible"}`)))
	}
	r.AssertExpectations(t)
}

func TestHubPushesOnlyWatchedKeys(t *testing.T) {
	uc := &MockUseCase{}
	uc.On("Register", mock.Anything)
	h := newTestHub(uc, nil, nil)

	coach := newConnection(h, nil, "c-42")
	other := newConnection(h, nil, "c-42")
	h.registerConnection(coach)
	h.registerConnection(other)
	require.NoError(t, coach.handleFrame(context.Background(), []byte(`{"type":"register","keys":[["tasks","c-42"]]}`)))
	readFrame(t, coach)

	h.push(update{key: reconcile.QueryKey{"tasks", "c-42"}, data: json.RawMessage(`{"n":1}`)})
	h.push(update{key: reconcile.QueryKey{"tasks", "c-43"}, data: json.RawMessage(`{"n":2}`)})

	f := readFrame(t, coach)
	assert.Equal(t, FrameQueryUpdated, f.Type)
	assert.Equal(t, reconcile.QueryKey{"tasks", "c-42"}, f.QueryKey)
	assert.JSONEq(t, `{"n":1}`, string(f.Data))
	assert.Empty(t, coach.send)
	assert.Empty(t, other.send)
	assert.EqualValues(t, 1, h.GetStats().TotalPushed)

	h.unregisterConnection(coach)
	assert.EqualValues(t, 1, uc.cancels.Load())
	assert.Equal(t, 1, h.GetStats().ActiveConnections)
}
