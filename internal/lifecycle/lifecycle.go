// ABOUTME: Maps process signals onto activate and deactivate lifecycle events
// ABOUTME: Lets a headless player be backgrounded and resumed from outside
package lifecycle

import (
	"context"
	"os"
	"os/signal"

	"github.com/aerials-audio/acaudio/pkg/acaudio"
	"go.uber.org/zap"
)

// Handler receives lifecycle signals. *acaudio.Manager satisfies it.
type Handler interface {
	Handle(sig acaudio.Signal) error
}

// Watch registers for process signals and forwards them to h from a
// goroutine until ctx is done. Signals are registered before Watch returns.
// The returned channel closes once forwarding has stopped.
func Watch(ctx context.Context, h Handler, logger *zap.Logger) <-chan struct{} {
	if logger == nil {
		logger = zap.NewNop()
	}
	done := make(chan struct{})
	if len(mapping) == 0 {
		close(done)
		return done
	}

	sigs := make([]os.Signal, 0, len(mapping))
	for s := range mapping {
		sigs = append(sigs, s)
	}

	ch := make(chan os.Signal, 4)
	signal.Notify(ch, sigs...)

	go func() {
		defer close(done)
		defer signal.Stop(ch)

		for {
			select {
			case <-ctx.Done():
				return
			case s := <-ch:
				ev, ok := mapping[s]
				if !ok {
					continue
				}
				logger.Info("lifecycle signal", zap.Stringer("signal", s), zap.Stringer("event", ev))
				if err := h.Handle(ev); err != nil {
					logger.Warn("lifecycle handler failed", zap.Stringer("event", ev), zap.Error(err))
				}
			}
		}
	}()
	return done
}
