package redis

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	goredis "github.com/redis/go-redis/v9"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/channel"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/transport"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/log"
)

// Subscriber listens on a session's derived channels and routes push
// messages to a transport.Handler.
type Subscriber interface {
	Start(ctx context.Context, names []channel.Name) error
	Shutdown(ctx context.Context) error
	HealthInfo() Health
}

// Publisher publishes push messages on derived channels.
type Publisher interface {
	Publish(ctx context.Context, name channel.Name, msg transport.Message) error
}

// Health is a point-in-time view of the subscriber.
type Health struct {
	Active        bool
	LastMessageAt time.Time
	Channels      []string
	Resubscribes  int64
}

// pubsubClient is the part of go-redis the subscriber needs.
type pubsubClient interface {
	Subscribe(ctx context.Context, channels ...string) *goredis.PubSub
}

// publishClient is the part of go-redis the publisher needs.
type publishClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *goredis.IntCmd
}

type subscriber struct {
	client  pubsubClient
	scheme  *channel.Scheme
	handler transport.Handler
	l       log.Logger

	mu            sync.RWMutex
	pubsub        *goredis.PubSub
	channels      []string
	subscribed    map[string]struct{}
	lastMessageAt time.Time

	isActive     atomic.Bool
	resubscribes atomic.Int64
	newBackOff   func() backoff.BackOff

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSubscriber creates a Subscriber. Nothing is subscribed until Start.
func NewSubscriber(client pubsubClient, scheme *channel.Scheme, handler transport.Handler, l log.Logger) Subscriber {
	return &subscriber{
		client:     client,
		scheme:     scheme,
		handler:    handler,
		l:          l,
		subscribed: make(map[string]struct{}),
		newBackOff: defaultBackOff,
		done:       make(chan struct{}),
	}
}

type publisher struct {
	client publishClient
	scheme *channel.Scheme
}

// NewPublisher creates a Publisher that only accepts names valid under scheme.
func NewPublisher(client publishClient, scheme *channel.Scheme) Publisher {
	return &publisher{client: client, scheme: scheme}
}

func defaultBackOff() backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = resubscribeInitialInterval
	policy.MaxInterval = resubscribeMaxInterval
	// Keep trying until Shutdown; a dropped transport is recovered by
	// visibility reconciliation in the meantime.
	policy.MaxElapsedTime = 0
	return policy
}
