// ABOUTME: Tests for the audio engine
// ABOUTME: Plays generated WAV buffers on a null device with a manual clock
package engine

import (
	"errors"
	"testing"

	"github.com/aerials-audio/acaudio/pkg/audio/decode"
	"github.com/aerials-audio/acaudio/pkg/audio/encode"
	"github.com/aerials-audio/acaudio/pkg/audio/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRate = 48000

func newTestEngine(t *testing.T, chunkFrames int) (*Engine, *output.Null) {
	t.Helper()
	dev := output.NewNull(testRate, 2)
	eng, err := New(dev, Config{Name: "test", StreamChunkFrames: chunkFrames})
	require.NoError(t, err)
	return eng, dev
}

// rampWAV encodes a stereo ramp whose sample value is the frame index
func rampWAV(t *testing.T, rate, frames int) []byte {
	t.Helper()
	data, err := encode.WAVBytes(rate, 2, encode.Ramp(2, frames))
	require.NoError(t, err)
	return data
}

func TestNewRequiresDevice(t *testing.T) {
	_, err := New(nil, Config{})
	assert.Error(t, err)
}

func TestEagerDataSource(t *testing.T) {
	eng, _ := newTestEngine(t, 0)

	ds, err := eng.NewDataSource(rampWAV(t, testRate, 4800), DecodeEager)
	require.NoError(t, err)

	assert.True(t, ds.Decoded())
	assert.Equal(t, int64(4800), ds.Frames())
	assert.Equal(t, decode.CodecWAV, ds.Codec())
	assert.Equal(t, DecodeEager, ds.Mode())

	sources, _ := eng.Stats()
	assert.Equal(t, 1, sources)

	require.NoError(t, ds.Close())
	require.NoError(t, ds.Close())
	sources, _ = eng.Stats()
	assert.Equal(t, 0, sources)
}

func TestStreamedDataSource(t *testing.T) {
	eng, dev := newTestEngine(t, 256)

	ds, err := eng.NewDataSource(rampWAV(t, testRate, 4800), DecodeStreamed)
	require.NoError(t, err)
	assert.False(t, ds.Decoded())
	assert.Equal(t, int64(4800), ds.Frames(), "header estimate")

	snd, err := eng.NewSound(ds)
	require.NoError(t, err)
	require.NoError(t, snd.Start())

	out := dev.AdvanceFrames(5000)
	assert.Equal(t, int16(4799), out[4799*2])
	assert.Equal(t, int16(0), out[4800*2])
	assert.True(t, ds.Decoded())
	assert.Equal(t, int64(4800), ds.Frames())
	assert.False(t, snd.IsPlaying())
}

func TestDataSourceConvertsFormat(t *testing.T) {
	eng, dev := newTestEngine(t, 0)
	data, err := encode.WAVBytes(24000, 1, encode.Ramp(1, 100))
	require.NoError(t, err)

	ds, err := eng.NewDataSource(data, DecodeEager)
	require.NoError(t, err)
	assert.Equal(t, int64(199), ds.Frames())

	snd, err := eng.NewSound(ds)
	require.NoError(t, err)
	require.NoError(t, snd.Start())

	out := dev.AdvanceFrames(199)
	assert.Equal(t, int16(10), out[20*2])
	assert.Equal(t, int16(10), out[20*2+1], "mono is duplicated to both channels")
}

func TestDataSourceRejectsGarbage(t *testing.T) {
	eng, _ := newTestEngine(t, 0)

	_, err := eng.NewDataSource([]byte("not audio at all"), DecodeEager)
	assert.True(t, errors.Is(err, decode.ErrUnsupportedFormat))

	sources, _ := eng.Stats()
	assert.Equal(t, 0, sources)
}

func TestSoundPlayStop(t *testing.T) {
	eng, dev := newTestEngine(t, 0)
	ds, err := eng.NewDataSource(rampWAV(t, testRate, 1000), DecodeEager)
	require.NoError(t, err)
	snd, err := eng.NewSound(ds)
	require.NoError(t, err)

	assert.False(t, snd.IsPlaying())
	require.NoError(t, snd.Start())
	assert.True(t, snd.IsPlaying())

	out := dev.AdvanceFrames(100)
	assert.Equal(t, int16(99), out[99*2])
	assert.Equal(t, int64(100), snd.CursorFrames())

	require.NoError(t, snd.Stop())
	assert.False(t, snd.IsPlaying())
	dev.AdvanceFrames(100)
	assert.Equal(t, int64(100), snd.CursorFrames())

	require.NoError(t, snd.Start())
	out = dev.AdvanceFrames(1)
	assert.Equal(t, int16(100), out[0])
}

func TestSoundDrainsAndRestarts(t *testing.T) {
	eng, dev := newTestEngine(t, 0)
	ds, err := eng.NewDataSource(rampWAV(t, testRate, 100), DecodeEager)
	require.NoError(t, err)
	snd, err := eng.NewSound(ds)
	require.NoError(t, err)

	require.NoError(t, snd.Start())
	dev.AdvanceFrames(150)
	assert.False(t, snd.IsPlaying())
	assert.Equal(t, int64(100), snd.CursorFrames())

	// Starting at the end restarts from frame 0
	require.NoError(t, snd.Start())
	out := dev.AdvanceFrames(10)
	assert.Equal(t, int16(5), out[5*2])
	assert.True(t, snd.IsPlaying())
}

func TestSoundLooping(t *testing.T) {
	eng, dev := newTestEngine(t, 0)
	ds, err := eng.NewDataSource(rampWAV(t, testRate, 100), DecodeEager)
	require.NoError(t, err)
	snd, err := eng.NewSound(ds)
	require.NoError(t, err)

	snd.SetLooping(true)
	assert.True(t, snd.Looping())
	require.NoError(t, snd.Start())

	out := dev.AdvanceFrames(150)
	assert.Equal(t, int16(20), out[120*2])
	assert.True(t, snd.IsPlaying())
	assert.Equal(t, int64(50), snd.CursorFrames())
}

func TestSoundSeek(t *testing.T) {
	eng, dev := newTestEngine(t, 0)
	ds, err := eng.NewDataSource(rampWAV(t, testRate, 100), DecodeEager)
	require.NoError(t, err)
	snd, err := eng.NewSound(ds)
	require.NoError(t, err)

	require.NoError(t, snd.SeekToFrame(40))
	assert.Equal(t, int64(40), snd.CursorFrames())

	require.NoError(t, snd.Start())
	out := dev.AdvanceFrames(1)
	assert.Equal(t, int16(40), out[0])

	require.NoError(t, snd.SeekToFrame(-5))
	assert.Equal(t, int64(0), snd.CursorFrames())
}

func TestSoundsShareSource(t *testing.T) {
	eng, dev := newTestEngine(t, 0)
	ds, err := eng.NewDataSource(rampWAV(t, testRate, 100), DecodeEager)
	require.NoError(t, err)

	a, err := eng.NewSound(ds)
	require.NoError(t, err)
	b, err := eng.NewSound(ds)
	require.NoError(t, err)

	require.NoError(t, b.SeekToFrame(50))
	require.NoError(t, a.Start())
	dev.AdvanceFrames(10)

	assert.Equal(t, int64(10), a.CursorFrames())
	assert.Equal(t, int64(50), b.CursorFrames())
	assert.False(t, b.IsPlaying())
}

func TestSoundStartFailure(t *testing.T) {
	eng, dev := newTestEngine(t, 0)
	ds, err := eng.NewDataSource(rampWAV(t, testRate, 100), DecodeEager)
	require.NoError(t, err)
	snd, err := eng.NewSound(ds)
	require.NoError(t, err)

	boom := errors.New("device lost")
	dev.SetPlayError(boom)

	err = snd.Start()
	assert.ErrorIs(t, err, boom)
	assert.False(t, snd.IsPlaying())

	dev.SetPlayError(nil)
	require.NoError(t, snd.Start())
	assert.True(t, snd.IsPlaying())
}

func TestSoundClose(t *testing.T) {
	eng, _ := newTestEngine(t, 0)
	ds, err := eng.NewDataSource(rampWAV(t, testRate, 100), DecodeEager)
	require.NoError(t, err)
	snd, err := eng.NewSound(ds)
	require.NoError(t, err)

	_, sounds := eng.Stats()
	require.Equal(t, 1, sounds)

	require.NoError(t, snd.Close())
	require.NoError(t, snd.Close())
	_, sounds = eng.Stats()
	assert.Equal(t, 0, sounds)

	assert.ErrorIs(t, snd.Start(), ErrSoundClosed)
	assert.ErrorIs(t, snd.Stop(), ErrSoundClosed)
	assert.False(t, snd.IsPlaying())
}

func TestNewSoundOnClosedSource(t *testing.T) {
	eng, _ := newTestEngine(t, 0)
	ds, err := eng.NewDataSource(rampWAV(t, testRate, 100), DecodeEager)
	require.NoError(t, err)
	require.NoError(t, ds.Close())

	_, err = eng.NewSound(ds)
	assert.ErrorIs(t, err, ErrSourceClosed)
}

func TestNewSoundForeignSource(t *testing.T) {
	eng, _ := newTestEngine(t, 0)
	other, _ := newTestEngine(t, 0)
	ds, err := other.NewDataSource(rampWAV(t, testRate, 100), DecodeEager)
	require.NoError(t, err)

	_, err = eng.NewSound(ds)
	assert.Error(t, err)
}

func TestEngineClose(t *testing.T) {
	eng, _ := newTestEngine(t, 0)
	require.NoError(t, eng.Close())
	require.NoError(t, eng.Close())

	_, err := eng.NewDataSource(rampWAV(t, testRate, 100), DecodeEager)
	assert.ErrorIs(t, err, ErrEngineClosed)
}

func TestDecodeModeString(t *testing.T) {
	assert.Equal(t, "eager", DecodeEager.String())
	assert.Equal(t, "streamed", DecodeStreamed.String())
	assert.Equal(t, "DecodeMode(7)", DecodeMode(7).String())
}

func TestFramesMillis(t *testing.T) {
	eng, _ := newTestEngine(t, 0)
	assert.Equal(t, int64(1000), eng.FramesToMillis(48000))
	assert.Equal(t, int64(24000), eng.MillisToFrames(500))
}
