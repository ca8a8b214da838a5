// ABOUTME: Container and codec sniffing from magic bytes
// ABOUTME: Maps an encoded buffer to the codec name used by Open
package decode

import "bytes"

const (
	CodecWAV    = "wav"
	CodecAIFF   = "aiff"
	CodecMP3    = "mp3"
	CodecVorbis = "vorbis"
	CodecFLAC   = "flac"
	CodecOpus   = "opus"
)

// Detect returns the codec of an encoded buffer
func Detect(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyData
	}

	switch {
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return CodecWAV, nil
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("FORM")) &&
		(bytes.Equal(data[8:12], []byte("AIFF")) || bytes.Equal(data[8:12], []byte("AIFC"))):
		return CodecAIFF, nil
	case bytes.HasPrefix(data, []byte("fLaC")):
		return CodecFLAC, nil
	case bytes.HasPrefix(data, []byte("OggS")):
		return detectOgg(data)
	case bytes.HasPrefix(data, []byte("ID3")):
		return CodecMP3, nil
	case isMPEGAudioFrame(data):
		return CodecMP3, nil
	}
	return "", ErrUnsupportedFormat
}

// detectOgg inspects the first packet of the first Ogg page
func detectOgg(data []byte) (string, error) {
	packet := firstOggPacket(data)
	switch {
	case bytes.HasPrefix(packet, []byte("OpusHead")):
		return CodecOpus, nil
	case bytes.HasPrefix(packet, []byte("\x01vorbis")):
		return CodecVorbis, nil
	}
	return "", ErrUnsupportedFormat
}

func firstOggPacket(data []byte) []byte {
	// 27 byte page header followed by the segment table
	if len(data) < 27 {
		return nil
	}
	start := 27 + int(data[26])
	if start >= len(data) {
		return nil
	}
	return data[start:]
}

// isMPEGAudioFrame checks for an MPEG audio frame sync with a non-reserved layer.
// ADTS AAC shares the sync word but uses layer bits 00.
func isMPEGAudioFrame(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	if data[0] != 0xFF || data[1]&0xE0 != 0xE0 {
		return false
	}
	version := (data[1] >> 3) & 0x03
	layer := (data[1] >> 1) & 0x03
	bitrate := data[2] >> 4
	rate := (data[2] >> 2) & 0x03
	return version != 0x01 && layer != 0 && bitrate != 0x0F && rate != 0x03
}
