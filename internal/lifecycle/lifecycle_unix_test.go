//go:build unix

// ABOUTME: Tests for the lifecycle signal watcher
// ABOUTME: Sends real SIGUSR1/SIGUSR2 to the test process
package lifecycle

import (
	"context"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/aerials-audio/acaudio/pkg/acaudio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []acaudio.Signal
}

func (r *recorder) Handle(sig acaudio.Signal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, sig)
	return nil
}

func (r *recorder) snapshot() []acaudio.Signal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]acaudio.Signal(nil), r.events...)
}

func TestWatchForwardsSignals(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rec := &recorder{}
	done := Watch(ctx, rec, nil)

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGUSR1))
	assert.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGUSR2))
	assert.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, []acaudio.Signal{acaudio.SignalDeactivated, acaudio.SignalActivated}, rec.snapshot())

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestMapping(t *testing.T) {
	assert.Equal(t, acaudio.SignalDeactivated, mapping[syscall.SIGUSR1])
	assert.Equal(t, acaudio.SignalActivated, mapping[syscall.SIGUSR2])
}
