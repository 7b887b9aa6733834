package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/channel"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/transport"
)

// Run starts the HTTP server and all background services, then blocks until
// ctx is cancelled or the listener fails:
//  1. Map HTTP handlers and routes
//  2. Start the surface hub
//  3. Subscribe to the session's push channels, retrying while Redis is down
//  4. Serve HTTP until shutdown
func (srv *HTTPServer) Run(ctx context.Context) error {
	srv.startedAt = time.Now()

	// 1. Map handlers
	srv.mapHandlers()

	// 2. Start surface hub
	go srv.hub.Run()
	srv.logger.Info(ctx, "Surface hub started")

	// 3. Start Redis subscriber in the background
	subCtx, stopSub := context.WithCancel(ctx)
	subDone := make(chan struct{})
	if srv.subscriber != nil {
		go func() {
			defer close(subDone)
			srv.startSubscriber(subCtx)
		}()
	} else {
		close(subDone)
		srv.logger.Warn(ctx, "Push transport disabled, running on reconciliation only")
	}

	// 4. Start HTTP server in background
	httpSrv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", srv.host, srv.port),
		Handler:           srv.gin,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	srv.logger.Infof(ctx, "HTTP server started on %s", httpSrv.Addr)

	var runErr error
	select {
	case <-ctx.Done():
		srv.logger.Info(ctx, "Stopping sync agent...")
	case err := <-errCh:
		runErr = fmt.Errorf("http server: %w", err)
		srv.logger.Errorf(ctx, "HTTP server error: %v", err)
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), srv.shutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(shutdownCtx, "HTTP server shutdown error: %v", err)
	}
	if err := srv.hub.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(shutdownCtx, "Surface hub shutdown error: %v", err)
	}
	stopSub()
	<-subDone
	if srv.subscriber != nil {
		if err := srv.subscriber.Shutdown(shutdownCtx); err != nil {
			srv.logger.Errorf(shutdownCtx, "Redis subscriber shutdown error: %v", err)
		}
	}

	return runErr
}

// startSubscriber retries the initial subscription until it succeeds or ctx
// ends. Until then the agent runs on visibility reconciliation alone.
func (srv *HTTPServer) startSubscriber(ctx context.Context) {
	attempt := 1
	op := func() error {
		err := srv.subscriber.Start(ctx, srv.channels)
		if errors.Is(err, transport.ErrNoChannels) || errors.Is(err, channel.ErrUnknownChannel) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		srv.logger.Warnf(ctx, "Push transport unavailable (attempt %d): %v, retrying in %s", attempt, err, wait)
		attempt++
	}

	b := backoff.NewExponentialBackOff()
	b.MaxInterval = subscribeMaxInterval
	b.MaxElapsedTime = 0

	if err := backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify); err != nil {
		if ctx.Err() == nil {
			srv.logger.Errorf(ctx, "Push transport disabled: %v", err)
		}
		return
	}
	srv.logger.Infof(ctx, "Subscribed to %d push channels", len(srv.channels))
}
