package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/channel"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/reconcile"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/transport"
	pkgRedis "github.com/HaokunYang123/routine-craft-bot-sub002/pkg/redis"
)

func newPublishCmd(d deps) *cobra.Command {
	var (
		name, msgType, key, data string
		redisCfg                 pkgRedis.Config
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a push message on a derived channel",
		RunE: func(cmd *cobra.Command, _ []string) error {
			qk, err := reconcile.ParseQueryKey(key)
			if err != nil {
				return fmt.Errorf("invalid --key: %w", err)
			}
			msg := transport.Message{Type: transport.MessageType(msgType), QueryKey: qk}
			if data != "" {
				if !json.Valid([]byte(data)) {
					return fmt.Errorf("invalid --data: not JSON")
				}
				msg.Data = json.RawMessage(data)
			}
			if err := msg.Validate(); err != nil {
				return err
			}
			if _, err := d.scheme.Parse(channel.Name(name)); err != nil {
				return err
			}

			pub, closeFn, err := d.newPublisher(cmd.Context(), redisCfg)
			if err != nil {
				return fmt.Errorf("connect redis: %w", err)
			}
			defer closeFn()

			if err := pub.Publish(cmd.Context(), channel.Name(name), msg); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "published %s on %s\n", msg.Type, name)
			return err
		},
	}
	cmd.Flags().StringVar(&name, "channel", "", "derived channel name")
	cmd.Flags().StringVar(&msgType, "type", string(transport.MessageQueryStale), "message type (query_stale or query_updated)")
	cmd.Flags().StringVar(&key, "key", "", `query key, "tasks,c-42" or ["tasks","c-42"]`)
	cmd.Flags().StringVar(&data, "data", "", "JSON payload for query_updated")
	cmd.Flags().StringVar(&redisCfg.Host, "redis-host", envOr("REDIS_HOST", "localhost"), "Redis host")
	cmd.Flags().IntVar(&redisCfg.Port, "redis-port", 6379, "Redis port")
	cmd.Flags().StringVar(&redisCfg.Password, "redis-password", "", "Redis password")
	_ = cmd.MarkFlagRequired("channel")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}
