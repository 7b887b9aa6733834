//go:build unix

package visibility

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/log"
)

type fakeReporter struct {
	states []State
	err    error
}

func (f *fakeReporter) Report(_ context.Context, s State) error {
	f.states = append(f.states, s)
	return f.err
}

func TestForwardSignal(t *testing.T) {
	r := &fakeReporter{}
	logger := log.NewNop()
	ctx := context.Background()

	for _, sig := range []os.Signal{syscall.SIGCONT, syscall.SIGUSR1, syscall.SIGUSR2, syscall.SIGHUP} {
		forwardSignal(ctx, r, logger, sig)
	}

	assert.Equal(t, []State{Visible, Hidden, Visible}, r.states)
}

func TestForwardSignalSwallowsReportError(t *testing.T) {
	r := &fakeReporter{err: errors.New("closed")}
	forwardSignal(context.Background(), r, log.NewNop(), syscall.SIGCONT)
	assert.Equal(t, []State{Visible}, r.states)
}
