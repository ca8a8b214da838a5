// ABOUTME: Oto-based audio output implementation
// ABOUTME: Each voice is an oto player reading PCM from its own source
package output

import (
	"fmt"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
	"go.uber.org/zap"
)

// oto only allows one context per process
var (
	otoMu       sync.Mutex
	otoCtx      *oto.Context
	otoRate     int
	otoChannels int
)

// Oto output implementation using oto library
type Oto struct {
	ctx    *oto.Context
	logger *zap.Logger

	mu     sync.Mutex
	closed bool
}

// NewOto opens the process-wide oto context, or reuses it when already created
func NewOto(sampleRate, channels int, logger *zap.Logger) (*Oto, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	otoMu.Lock()
	defer otoMu.Unlock()

	if otoCtx != nil {
		// oto cannot be reinitialized, keep the existing format
		if otoRate != sampleRate || otoChannels != channels {
			logger.Warn("oto context already initialized with a different format, continuing with existing context",
				zap.Int("rate", otoRate), zap.Int("channels", otoChannels),
				zap.Int("requested_rate", sampleRate), zap.Int("requested_channels", channels))
		}
		if err := otoCtx.Resume(); err != nil {
			return nil, fmt.Errorf("failed to resume oto context: %w", err)
		}
		return &Oto{ctx: otoCtx, logger: logger}, nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	otoCtx = ctx
	otoRate = sampleRate
	otoChannels = channels

	logger.Info("audio output initialized",
		zap.String("backend", "oto"), zap.Int("rate", sampleRate), zap.Int("channels", channels))

	return &Oto{ctx: ctx, logger: logger}, nil
}

func (o *Oto) SampleRate() int { return otoRate }
func (o *Oto) Channels() int   { return otoChannels }

// NewVoice creates an oto player over src
func (o *Oto) NewVoice(src io.ReadSeeker) Voice {
	return o.ctx.NewPlayer(src)
}

// Close suspends the shared context; oto offers no way to destroy it
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return nil
	}
	o.closed = true
	if err := o.ctx.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend oto context: %w", err)
	}
	return nil
}
