//go:build unix

package visibility

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/log"
)

// signalStates maps process signals to visibility reports. SIGCONT arrives
// when a suspended process resumes; SIGUSR1/SIGUSR2 let a host shell report
// hidden/visible explicitly.
var signalStates = map[os.Signal]State{
	syscall.SIGCONT: Visible,
	syscall.SIGUSR2: Visible,
	syscall.SIGUSR1: Hidden,
}

// WatchSignals forwards mapped signals to r until ctx is done.
func WatchSignals(ctx context.Context, r Reporter, logger log.Logger) {
	ch := make(chan os.Signal, 4)
	signal.Notify(ch, syscall.SIGCONT, syscall.SIGUSR1, syscall.SIGUSR2)
	defer signal.Stop(ch)

	logger.Info(ctx, "visibility: watching SIGCONT/SIGUSR2 (visible) and SIGUSR1 (hidden)")

	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-ch:
			forwardSignal(ctx, r, logger, sig)
		}
	}
}

func forwardSignal(ctx context.Context, r Reporter, logger log.Logger, sig os.Signal) {
	state, ok := signalStates[sig]
	if !ok {
		return
	}
	if err := r.Report(ctx, state); err != nil {
		logger.Warnf(ctx, "visibility: report %s from %v failed: %v", state, sig, err)
	}
}
