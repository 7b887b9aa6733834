//go:build !unix

package visibility

import (
	"context"

	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/log"
)

// WatchSignals is unavailable on this platform; reconciliation then relies on
// HTTP or socket reports only.
func WatchSignals(ctx context.Context, _ Reporter, logger log.Logger) {
	logger.Warn(ctx, "visibility: signal reporting not supported on this platform")
	<-ctx.Done()
}
