package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/channel"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/transport"
)

// handleMessage validates the channel and payload, then routes the message.
// Invalid messages are logged and dropped.
func (s *subscriber) handleMessage(ctx context.Context, msg *goredis.Message) {
	s.mu.Lock()
	s.lastMessageAt = time.Now()
	_, member := s.subscribed[msg.Channel]
	s.mu.Unlock()

	desc, err := s.scheme.Parse(channel.Name(msg.Channel))
	if err != nil {
		messagesCounter.WithLabelValues("rejected").Inc()
		s.l.Warnf(ctx, "Dropping message on foreign channel: %v", err)
		return
	}
	if !member {
		messagesCounter.WithLabelValues("rejected").Inc()
		s.l.Warnf(ctx, "Dropping message: %v: %s", transport.ErrNotSubscribed, msg.Channel)
		return
	}

	m, err := transport.Decode([]byte(msg.Payload))
	if err != nil {
		messagesCounter.WithLabelValues("invalid").Inc()
		s.l.Warnf(ctx, "Dropping message on %s: %v", msg.Channel, err)
		return
	}

	transport.Route(ctx, s.handler, m)
	messagesCounter.WithLabelValues(string(m.Type)).Inc()
	s.l.Debugf(ctx, "Routed %s for %s (channel %s, owner %s)", m.Type, m.QueryKey, msg.Channel, desc.Owner)
}
