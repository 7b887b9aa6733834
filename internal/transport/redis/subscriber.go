package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	goredis "github.com/redis/go-redis/v9"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/channel"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/transport"
)

// Start subscribes to the exact names given, never to patterns, and begins
// routing messages. Every name must parse under the scheme.
func (s *subscriber) Start(ctx context.Context, names []channel.Name) error {
	if len(names) == 0 {
		return transport.ErrNoChannels
	}

	channels := make([]string, 0, len(names))
	subscribed := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, err := s.scheme.Parse(n); err != nil {
			return fmt.Errorf("transport.redis.Start: %w", err)
		}
		if _, dup := subscribed[n.String()]; dup {
			continue
		}
		subscribed[n.String()] = struct{}{}
		channels = append(channels, n.String())
	}

	listenCtx, cancel := context.WithCancel(context.Background())

	pubsub := s.client.Subscribe(listenCtx, channels...)
	// The first reply confirms the subscription.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		cancel()
		return fmt.Errorf("transport.redis.Start: subscribe: %w", err)
	}

	// ctx and cancel are only set once listen is about to run, so Shutdown
	// after a failed Start has nothing to wait for.
	s.mu.Lock()
	s.ctx, s.cancel = listenCtx, cancel
	s.pubsub = pubsub
	s.channels = channels
	s.subscribed = subscribed
	s.mu.Unlock()

	s.isActive.Store(true)
	s.l.Infof(ctx, "Redis subscriber started, listening on %d channels: %v", len(channels), channels)

	go s.listen()
	return nil
}

// listen routes messages until Shutdown, resubscribing whenever go-redis
// closes the message channel.
func (s *subscriber) listen() {
	defer close(s.done)

	ch := s.currentPubSub().Channel()
	for {
		select {
		case <-s.ctx.Done():
			s.l.Info(context.Background(), "Redis subscriber shutting down...")
			return

		case msg, ok := <-ch:
			if !ok {
				s.isActive.Store(false)
				s.l.Warn(s.ctx, "Redis pub/sub channel closed, resubscribing...")
				if err := s.resubscribe(); err != nil {
					// Only a cancelled context ends the retry loop.
					return
				}
				ch = s.currentPubSub().Channel()
				continue
			}

			s.handleMessage(s.ctx, msg)
		}
	}
}

func (s *subscriber) resubscribe() error {
	attempt := 1
	op := func() error {
		s.mu.Lock()
		old, channels := s.pubsub, s.channels
		s.mu.Unlock()
		if old != nil {
			_ = old.Close()
		}

		pubsub := s.client.Subscribe(s.ctx, channels...)
		if _, err := pubsub.Receive(s.ctx); err != nil {
			_ = pubsub.Close()
			return err
		}

		s.mu.Lock()
		s.pubsub = pubsub
		s.mu.Unlock()
		return nil
	}
	notify := func(err error, wait time.Duration) {
		s.l.Warnf(s.ctx, "Redis resubscribe attempt %d failed: %v, retrying in %s", attempt, err, wait)
		attempt++
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(s.newBackOff(), s.ctx), notify); err != nil {
		return err
	}

	s.resubscribes.Add(1)
	s.isActive.Store(true)
	s.l.Info(s.ctx, "Redis subscriber resubscribed")
	return nil
}

func (s *subscriber) currentPubSub() *goredis.PubSub {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pubsub
}

func (s *subscriber) HealthInfo() Health {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Health{
		Active:        s.isActive.Load(),
		LastMessageAt: s.lastMessageAt,
		Channels:      append([]string(nil), s.channels...),
		Resubscribes:  s.resubscribes.Load(),
	}
}

func (s *subscriber) Shutdown(ctx context.Context) error {
	s.isActive.Store(false)

	s.mu.RLock()
	cancel := s.cancel
	s.mu.RUnlock()
	if cancel == nil {
		return nil
	}
	cancel()

	if ps := s.currentPubSub(); ps != nil {
		if err := ps.Close(); err != nil {
			s.l.Errorf(context.Background(), "Error closing pub/sub: %v", err)
		}
	}

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
