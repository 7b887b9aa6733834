package querycache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Yiling-J/theine-go"
	"golang.org/x/sync/singleflight"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/reconcile"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/log"
)

// Cache is the query cache the reconciliation trigger invalidates. Entries
// are keyed by the canonical QueryKey string.
type Cache struct {
	l       log.Logger
	fetcher Fetcher
	timeout time.Duration

	store *theine.Cache[string, entry]
	sf    singleflight.Group

	// gens counts writes per key. A fetch only stores its result if no
	// invalidation or push happened since it started.
	genMu sync.Mutex
	gens  map[string]uint64

	// lifecycle guards closed against wg.Add racing with Close.
	lifecycle sync.Mutex
	wg        sync.WaitGroup

	mu        sync.RWMutex
	observers map[int]Observer
	nextID    int

	ctx    context.Context
	cancel context.CancelFunc
	closed atomic.Bool
}

var _ reconcile.Invalidator = (*Cache)(nil)

// New creates a Cache backed by fetcher.
func New(l log.Logger, fetcher Fetcher, cfg Config) (*Cache, error) {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	if cfg.RefetchTimeout <= 0 {
		cfg.RefetchTimeout = DefaultRefetchTimeout
	}

	store, err := theine.NewBuilder[string, entry](cfg.MaxEntries).Build()
	if err != nil {
		return nil, fmt.Errorf("querycache: build store: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Cache{
		l:         l,
		fetcher:   fetcher,
		timeout:   cfg.RefetchTimeout,
		store:     store,
		observers: make(map[int]Observer),
		gens:      make(map[string]uint64),
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Get returns the cached value for key, fetching it on a miss. Concurrent
// misses for the same key share one fetch.
func (c *Cache) Get(ctx context.Context, key reconcile.QueryKey) (json.RawMessage, error) {
	if c.closed.Load() {
		return nil, ErrCacheClosed
	}
	if err := key.Validate(); err != nil {
		return nil, err
	}

	if e, ok := c.store.Get(key.String()); ok {
		hitCounter.Inc()
		return e.data, nil
	}

	k := key.String()
	v, err, _ := c.sf.Do(k, func() (interface{}, error) {
		return c.refresh(ctx, key, c.generation(k))
	})
	if err != nil {
		return nil, err
	}
	return v.(json.RawMessage), nil
}

// Invalidate drops the entry for key and schedules a background refetch.
// It never blocks and never reports failure; refetch errors are logged.
// A refetch already in flight is not joined: its result predates this
// invalidation and is discarded.
func (c *Cache) Invalidate(ctx context.Context, key reconcile.QueryKey) {
	if err := key.Validate(); err != nil {
		c.l.Warnf(ctx, "querycache: ignoring invalid key %v: %v", key, err)
		return
	}

	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()
	if c.closed.Load() {
		return
	}

	k := key.String()
	c.genMu.Lock()
	c.gens[k]++
	gen := c.gens[k]
	c.store.Delete(k)
	c.genMu.Unlock()
	c.sf.Forget(k)
	key = key.Clone()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		fetchCtx, cancel := context.WithTimeout(c.ctx, c.timeout)
		defer cancel()

		_, err, shared := c.sf.Do(k, func() (interface{}, error) {
			return c.refresh(fetchCtx, key, gen)
		})
		if err != nil && !shared {
			c.l.Warnf(fetchCtx, "querycache: refetch %s failed: %v", k, err)
		}
	}()
}

// Apply stores a pushed value for key without fetching.
func (c *Cache) Apply(ctx context.Context, key reconcile.QueryKey, data json.RawMessage) {
	if c.closed.Load() {
		return
	}
	if err := key.Validate(); err != nil {
		c.l.Warnf(ctx, "querycache: ignoring update for invalid key %v: %v", key, err)
		return
	}

	k := key.String()
	c.genMu.Lock()
	c.gens[k]++
	c.store.Set(k, entry{data: data, updatedAt: time.Now()}, 1)
	c.genMu.Unlock()
	applyCounter.Inc()
	c.notify(key, data)
}

// Watch adds an observer. The returned func removes it.
func (c *Cache) Watch(o Observer) (stop func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.observers[id] = o
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

// Peek returns the cached value and its last update time without fetching.
func (c *Cache) Peek(key reconcile.QueryKey) (json.RawMessage, time.Time, bool) {
	if c.closed.Load() {
		return nil, time.Time{}, false
	}
	e, ok := c.store.Get(key.String())
	if !ok {
		return nil, time.Time{}, false
	}
	return e.data, e.updatedAt, true
}

// Close cancels in-flight refetches, waits for them and releases the store.
func (c *Cache) Close() {
	c.lifecycle.Lock()
	if c.closed.Load() {
		c.lifecycle.Unlock()
		return
	}
	c.closed.Store(true)
	c.lifecycle.Unlock()

	c.cancel()
	c.wg.Wait()
	c.store.Close()
}

func (c *Cache) refresh(ctx context.Context, key reconcile.QueryKey, gen uint64) (json.RawMessage, error) {
	data, err := c.fetcher.Fetch(ctx, key)
	if err != nil {
		refetchCounter.WithLabelValues("error").Inc()
		return nil, err
	}

	if !c.storeIfCurrent(key.String(), gen, data) {
		refetchCounter.WithLabelValues("superseded").Inc()
		return data, nil
	}
	refetchCounter.WithLabelValues("ok").Inc()
	c.notify(key, data)
	return data, nil
}

func (c *Cache) generation(k string) uint64 {
	c.genMu.Lock()
	defer c.genMu.Unlock()
	return c.gens[k]
}

func (c *Cache) storeIfCurrent(k string, gen uint64, data json.RawMessage) bool {
	c.genMu.Lock()
	defer c.genMu.Unlock()
	if c.gens[k] != gen {
		return false
	}
	c.store.Set(k, entry{data: data, updatedAt: time.Now()}, 1)
	return true
}

func (c *Cache) notify(key reconcile.QueryKey, data json.RawMessage) {
	c.mu.RLock()
	observers := make([]Observer, 0, len(c.observers))
	for _, o := range c.observers {
		observers = append(observers, o)
	}
	c.mu.RUnlock()

	for _, o := range observers {
		o(key, data)
	}
}
