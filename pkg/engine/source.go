// ABOUTME: Data source decoding an encoded buffer to engine-format PCM
// ABOUTME: Eager sources decode at creation, streamed sources decode on demand
package engine

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/aerials-audio/acaudio/pkg/audio/decode"
	"github.com/aerials-audio/acaudio/pkg/audio/resample"
)

// DataSource holds decoded audio in the engine format
type DataSource struct {
	engine   *Engine
	mode     DecodeMode
	codec    string
	channels int

	mu        sync.Mutex
	data      []byte
	stream    decode.Stream
	inChans   int
	resampler *resample.Resampler
	estimate  int64
	pcm       []int16
	done      bool
	err       error
	closed    bool
	buf       []int16
	remixed   []int16
}

func newDataSource(e *Engine, data []byte, mode DecodeMode) (*DataSource, error) {
	stream, err := decode.Open(data)
	if err != nil {
		return nil, err
	}

	format := stream.Format()
	ds := &DataSource{
		engine:    e,
		mode:      mode,
		codec:     format.Codec,
		channels:  e.Channels(),
		data:      data,
		stream:    stream,
		inChans:   format.Channels,
		resampler: resample.New(format.SampleRate, e.SampleRate(), e.Channels()),
		estimate:  -1,
		buf:       make([]int16, e.chunkFrames*format.Channels),
	}
	if frames := stream.Frames(); frames >= 0 {
		ds.estimate = ds.resampler.OutputFrames(frames)
	}

	switch mode {
	case DecodeEager:
		for !ds.done {
			ds.decodeChunk()
		}
	case DecodeStreamed:
		// Creation waits for the first chunk only
		ds.decodeChunk()
	default:
		_ = stream.Close()
		return nil, fmt.Errorf("unknown decode mode %d", int(mode))
	}

	if ds.err != nil {
		ds.release()
		return nil, fmt.Errorf("%w: %s: %w", decode.ErrUnsupportedFormat, ds.codec, ds.err)
	}
	return ds, nil
}

// Mode returns the decode mode
func (ds *DataSource) Mode() DecodeMode { return ds.mode }

// Codec returns the detected codec name
func (ds *DataSource) Codec() string { return ds.codec }

// Frames returns the length in engine frames. It is exact once decoding has
// finished, a header estimate before that, and -1 when unknown.
func (ds *DataSource) Frames() int64 {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return ds.framesLocked()
}

// Decoded reports whether the whole buffer has been decoded
func (ds *DataSource) Decoded() bool {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return ds.done
}

// Close releases decoded audio and the retained buffer
func (ds *DataSource) Close() error {
	ds.mu.Lock()
	if ds.closed {
		ds.mu.Unlock()
		return nil
	}
	ds.closed = true
	ds.release()
	ds.mu.Unlock()

	ds.engine.release(&ds.engine.sources)
	return nil
}

func (ds *DataSource) isClosed() bool {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return ds.closed
}

func (ds *DataSource) framesLocked() int64 {
	if ds.done {
		return int64(len(ds.pcm) / ds.channels)
	}
	return ds.estimate
}

// release drops every buffer. Caller holds ds.mu or owns ds exclusively.
func (ds *DataSource) release() {
	if ds.stream != nil {
		_ = ds.stream.Close()
		ds.stream = nil
	}
	ds.done = true
	ds.data = nil
	ds.pcm = nil
	ds.buf = nil
	ds.remixed = nil
}

// decodeChunk decodes one chunk and appends it in engine format. Caller holds
// ds.mu or owns ds exclusively.
func (ds *DataSource) decodeChunk() {
	if ds.done {
		return
	}

	n, err := ds.stream.Read(ds.buf)
	if n > 0 {
		ds.remixed = resample.Remix(ds.remixed[:0], ds.buf[:n], ds.inChans, ds.channels)
		ds.pcm = ds.resampler.Resample(ds.pcm, ds.remixed)
	}

	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		ds.pcm = ds.resampler.Flush(ds.pcm)
		ds.finish()
	default:
		ds.err = err
		ds.finish()
	}
}

func (ds *DataSource) finish() {
	ds.done = true
	_ = ds.stream.Close()
	ds.stream = nil
	ds.buf = nil
	ds.remixed = nil
	ds.data = nil
}

// readSamples copies samples starting at sample offset off into dst, decoding
// further when needed. It returns io.EOF at the end of the audio.
func (ds *DataSource) readSamples(dst []int16, off int64) (int, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if ds.closed {
		return 0, ErrSourceClosed
	}
	for !ds.done && off+int64(len(dst)) > int64(len(ds.pcm)) {
		ds.decodeChunk()
	}

	if off >= int64(len(ds.pcm)) {
		if ds.err != nil {
			return 0, ds.err
		}
		return 0, io.EOF
	}
	return copy(dst, ds.pcm[off:]), nil
}

// atEnd reports whether sample offset off is at or past the end of the audio
func (ds *DataSource) atEnd(off int64) bool {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	for !ds.done && off >= int64(len(ds.pcm)) {
		ds.decodeChunk()
	}
	return ds.done && off >= int64(len(ds.pcm))
}

// totalSamples decodes to the end and returns the sample count
func (ds *DataSource) totalSamples() int64 {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	for !ds.done {
		ds.decodeChunk()
	}
	return int64(len(ds.pcm))
}
