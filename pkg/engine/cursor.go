// ABOUTME: Per-sound read cursor over a data source
// ABOUTME: Serves 16-bit little-endian PCM to a voice and wraps when looping
package engine

import (
	"encoding/binary"
	"errors"
	"io"
	"sync"

	"github.com/aerials-audio/acaudio/pkg/audio"
)

// cursor is the io.ReadSeeker a voice pulls from. Offsets are in bytes.
type cursor struct {
	ds *DataSource

	mu      sync.Mutex
	pos     int64
	looping bool
	tmp     []int16
}

func (c *cursor) Read(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	frameBytes := c.ds.engine.frameBytes()
	want := int64(len(p)) / frameBytes * frameBytes / audio.BytesPerSample
	if want == 0 {
		return 0, nil
	}
	if int64(cap(c.tmp)) < want {
		c.tmp = make([]int16, want)
	}

	filled := int64(0)
	wrapped := false
	for filled < want {
		n, err := c.ds.readSamples(c.tmp[:want-filled], c.pos/audio.BytesPerSample)
		for i := 0; i < n; i++ {
			binary.LittleEndian.PutUint16(p[(filled+int64(i))*2:], uint16(c.tmp[i]))
		}
		filled += int64(n)
		c.pos += int64(n) * audio.BytesPerSample
		if n > 0 {
			wrapped = false
		}

		if err == nil {
			continue
		}
		// Two wraps without progress means the source is empty
		if errors.Is(err, io.EOF) && c.looping && !wrapped {
			c.pos = 0
			wrapped = true
			continue
		}
		if filled > 0 {
			return int(filled * audio.BytesPerSample), nil
		}
		return 0, err
	}
	return int(filled * audio.BytesPerSample), nil
}

func (c *cursor) Seek(offset int64, whence int) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = c.pos + offset
	case io.SeekEnd:
		abs = c.ds.totalSamples()*audio.BytesPerSample + offset
	default:
		return 0, errors.New("invalid whence")
	}
	if abs < 0 {
		return 0, errors.New("negative position")
	}
	c.pos = abs
	return abs, nil
}

func (c *cursor) position() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos
}

func (c *cursor) setLooping(looping bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.looping = looping
}

func (c *cursor) isLooping() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.looping
}

func (c *cursor) atEnd() bool {
	return c.ds.atEnd(c.position() / audio.BytesPerSample)
}
