// ABOUTME: Tests for the preview slot
// ABOUTME: Covers replacement, looping and rollback on failure
package acaudio

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayPreview(t *testing.T) {
	m, dev := newTestManager(t)

	require.NoError(t, m.PlayPreview(clip(t, 1000), false))
	assert.True(t, m.PreviewActive())
	assert.True(t, m.Stats().PreviewActive)
	assert.True(t, m.CheckPreview())

	dev.Advance(100 * time.Millisecond)
	ms, ok := m.PreviewTime()
	require.True(t, ok)
	assert.Equal(t, int64(100), ms)

	// Previews never enter the resource or unit tables
	assert.Equal(t, 0, m.Stats().Resources)
	assert.Equal(t, 0, m.Stats().Units)
}

func TestPlayPreviewReplaces(t *testing.T) {
	m, dev := newTestManager(t)

	require.NoError(t, m.PlayPreview(clip(t, 1000), true))
	require.NoError(t, m.PlayPreview(clip(t, 1000), true))
	require.NoError(t, m.PlayPreview(clip(t, 1000), true))

	sources, sounds := m.previewEng.Stats()
	assert.Equal(t, 1, sources)
	assert.Equal(t, 1, sounds)
	assert.Equal(t, 1, dev.Voices())
}

func TestPlayPreviewFailureRollsBack(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.PlayPreview(clip(t, 100), false))

	err := m.PlayPreview([]byte("not audio"), false)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.False(t, m.PreviewActive())

	sources, sounds := m.previewEng.Stats()
	assert.Equal(t, 0, sources)
	assert.Equal(t, 0, sounds)

	assert.ErrorIs(t, m.PlayPreview(nil, false), ErrEmptyBuffer)
}

func TestPlayPreviewStartFailure(t *testing.T) {
	m, dev := newTestManager(t)
	dev.SetPlayError(errors.New("device unavailable"))

	err := m.PlayPreview(clip(t, 100), false)
	assert.ErrorIs(t, err, ErrStartFailed)
	assert.False(t, m.PreviewActive())

	sources, sounds := m.previewEng.Stats()
	assert.Equal(t, 0, sources)
	assert.Equal(t, 0, sounds)
	assert.Equal(t, 0, dev.Voices())
}

func TestStopPreviewIdempotent(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.StopPreview())
	assert.False(t, m.PreviewActive())

	require.NoError(t, m.PlayPreview(clip(t, 100), false))
	require.NoError(t, m.StopPreview())
	require.NoError(t, m.StopPreview())
	assert.False(t, m.PreviewActive())

	_, ok := m.PreviewTime()
	assert.False(t, ok)
	assert.False(t, m.CheckPreview())
}

func TestPreviewFinishes(t *testing.T) {
	m, dev := newTestManager(t)
	require.NoError(t, m.PlayPreview(clip(t, 100), false))

	dev.Advance(200 * time.Millisecond)
	assert.False(t, m.CheckPreview())
	assert.True(t, m.PreviewActive(), "a finished preview stays loaded until replaced")
}
