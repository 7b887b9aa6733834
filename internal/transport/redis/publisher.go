package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/channel"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/transport"
)

func (p *publisher) Publish(ctx context.Context, name channel.Name, msg transport.Message) error {
	if _, err := p.scheme.Parse(name); err != nil {
		return fmt.Errorf("transport.redis.Publish: %w", err)
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("transport.redis.Publish: %w", err)
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("transport.redis.Publish: marshal: %w", err)
	}

	if err := p.client.Publish(ctx, name.String(), payload).Err(); err != nil {
		return fmt.Errorf("transport.redis.Publish: %w", err)
	}
	return nil
}
