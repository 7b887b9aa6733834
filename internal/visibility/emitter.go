package visibility

import (
	"context"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/log"
)

const defaultQueueSize = 64

type subscription struct {
	listener Listener
	active   atomic.Bool
	once     sync.Once
}

// Emitter is an in-process Source and Reporter. Reports are queued and a
// single Run loop delivers them one at a time, so listeners never run
// concurrently with each other.
//
// A panicking listener is logged with its position and stack and the round
// moves on to the next listener. The recovery only keeps the delivery loop
// alive; whatever the listener was doing when it panicked is not resumed.
type Emitter struct {
	mu        sync.RWMutex
	current   State
	listeners []*subscription

	events chan State
	logger log.Logger

	delivered atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewEmitter creates an Emitter whose Current state starts at initial.
func NewEmitter(logger log.Logger, initial State) *Emitter {
	ctx, cancel := context.WithCancel(context.Background())
	return &Emitter{
		current: initial,
		events:  make(chan State, defaultQueueSize),
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
}

// Run delivers queued notifications until Shutdown is called.
func (e *Emitter) Run() {
	defer close(e.done)

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Debug(context.Background(), "visibility emitter stopped")
			return
		case state := <-e.events:
			e.deliver(state)
		}
	}
}

// Report queues a notification. It blocks only while the queue is full.
func (e *Emitter) Report(ctx context.Context, state State) error {
	if _, err := ParseState(string(state)); err != nil {
		return err
	}

	select {
	case <-e.ctx.Done():
		return ErrEmitterClosed
	default:
	}

	select {
	case e.events <- state:
		return nil
	case <-e.ctx.Done():
		return ErrEmitterClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Current returns the most recently delivered state.
func (e *Emitter) Current() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// Subscribe adds l after all existing listeners.
func (e *Emitter) Subscribe(l Listener) func() {
	sub := &subscription{listener: l}
	sub.active.Store(true)

	e.mu.Lock()
	e.listeners = append(e.listeners, sub)
	e.mu.Unlock()

	return func() {
		sub.once.Do(func() {
			sub.active.Store(false)
			e.remove(sub)
		})
	}
}

// Listeners returns the number of live subscriptions.
func (e *Emitter) Listeners() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners)
}

// Delivered returns how many notifications have been fully dispatched to
// their listeners.
func (e *Emitter) Delivered() int64 {
	return e.delivered.Load()
}

// Shutdown stops the delivery loop. Queued notifications are dropped.
func (e *Emitter) Shutdown(ctx context.Context) error {
	e.cancel()

	select {
	case <-e.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Emitter) remove(sub *subscription) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, s := range e.listeners {
		if s == sub {
			e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
			return
		}
	}
}

func (e *Emitter) deliver(state State) {
	e.mu.Lock()
	e.current = state
	snapshot := append([]*subscription(nil), e.listeners...)
	e.mu.Unlock()

	e.logger.Debugf(e.ctx, "visibility: delivering %s to %d listeners", state, len(snapshot))
	defer e.delivered.Add(1)

	for i, sub := range snapshot {
		// A listener removed earlier in this round must not fire.
		if !sub.active.Load() {
			continue
		}
		e.invoke(i, sub, state)
	}
}

func (e *Emitter) invoke(pos int, sub *subscription, state State) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Errorf(e.ctx, "visibility listener %d panicked on %s: %v\n%s", pos, state, r, debug.Stack())
		}
	}()
	sub.listener(e.ctx, state)
}
