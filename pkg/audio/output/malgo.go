// ABOUTME: Malgo-based audio output implementation
// ABOUTME: Renders the software mixer from the miniaudio playback callback
package output

import (
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"
	"go.uber.org/zap"
)

// Malgo output implementation using malgo/miniaudio library
type Malgo struct {
	*Mixer
	logger   *zap.Logger
	malgoCtx *malgo.AllocatedContext
	device   *malgo.Device

	mu     sync.Mutex
	buf    []int16
	closed bool
}

// NewMalgo initializes miniaudio and starts a 16-bit playback device
func NewMalgo(sampleRate, channels int, logger *zap.Logger) (*Malgo, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Malgo{Mixer: NewMixer(sampleRate, channels), logger: logger}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize malgo context: %w", err)
	}
	m.malgoCtx = ctx

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatS16
	deviceConfig.Playback.Channels = uint32(channels)
	deviceConfig.SampleRate = uint32(sampleRate)
	deviceConfig.Alsa.NoMMap = 1

	onSamples := func(pOutputSample, pInputSamples []byte, frameCount uint32) {
		m.dataCallback(pOutputSample, frameCount)
	}

	device, err := malgo.InitDevice(m.malgoCtx.Context, deviceConfig, malgo.DeviceCallbacks{Data: onSamples})
	if err != nil {
		m.freeContext()
		return nil, fmt.Errorf("failed to initialize playback device: %w", err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		m.freeContext()
		return nil, fmt.Errorf("failed to start device: %w", err)
	}
	m.device = device

	logger.Info("audio output initialized",
		zap.String("backend", "malgo"), zap.Int("rate", sampleRate), zap.Int("channels", channels))

	return m, nil
}

// dataCallback is called by malgo to fill the audio output buffer
func (m *Malgo) dataCallback(pOutput []byte, frameCount uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := int(frameCount) * m.Channels()
	if cap(m.buf) < total {
		m.buf = make([]int16, total)
	}
	samples := m.buf[:total]
	m.Render(samples)

	for i, s := range samples {
		pOutput[i*2] = byte(s)
		pOutput[i*2+1] = byte(s >> 8)
	}
}

// Close releases output resources
func (m *Malgo) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	if err := m.device.Stop(); err != nil {
		m.logger.Warn("device stop error", zap.Error(err))
	}
	m.device.Uninit()
	m.freeContext()
	return m.Mixer.Close()
}

func (m *Malgo) freeContext() {
	if err := m.malgoCtx.Uninit(); err != nil {
		m.logger.Warn("malgo context uninit error", zap.Error(err))
	}
	m.malgoCtx.Free()
}
