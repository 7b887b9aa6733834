package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/channel"
	transportRedis "github.com/HaokunYang123/routine-craft-bot-sub002/internal/transport/redis"
	pkgRedis "github.com/HaokunYang123/routine-craft-bot-sub002/pkg/redis"
)

const (
	defaultAddr = "http://127.0.0.1:8090"
	apiPrefix   = "/api/v1"
)

type deps struct {
	scheme       *channel.Scheme
	newPublisher func(ctx context.Context, cfg pkgRedis.Config) (transportRedis.Publisher, func() error, error)
}

func defaultDeps() deps {
	return deps{
		scheme: channel.DefaultScheme(),
		newPublisher: func(ctx context.Context, cfg pkgRedis.Config) (transportRedis.Publisher, func() error, error) {
			client, err := pkgRedis.Dial(ctx, cfg)
			if err != nil {
				return nil, nil, err
			}
			return transportRedis.NewPublisher(client, channel.DefaultScheme()), client.Close, nil
		},
	}
}

type agentFlags struct {
	addr  string
	token string
}

func newRootCmd(d deps) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "syncctl",
		Short:         "Inspect and drive the realtime sync agent",
		Long:          "syncctl derives push channel names, publishes test messages to Redis, and reports visibility or manual reconciliations to a running sync agent.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	af := &agentFlags{}
	rootCmd.PersistentFlags().StringVar(&af.addr, "addr", envOr("SYNC_ADDR", defaultAddr), "sync agent base URL")
	rootCmd.PersistentFlags().StringVar(&af.token, "token", os.Getenv("SESSION_TOKEN"), "session bearer token")

	rootCmd.AddCommand(
		newChannelCmd(d),
		newPublishCmd(d),
		newVisibilityCmd(af),
		newReconcileCmd(af),
		newStatusCmd(af),
	)

	return rootCmd
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
