// ABOUTME: Resource table holding decoded data sources on the player engine
// ABOUTME: Resources are reference counted by the units created from them
package acaudio

import (
	"fmt"

	"github.com/aerials-audio/acaudio/pkg/engine"
	"github.com/aerials-audio/acaudio/pkg/slot"
	"go.uber.org/zap"
)

type resource struct {
	ds   *engine.DataSource
	refs int
}

// ResourceInfo describes a live resource
type ResourceInfo struct {
	Handle   ResourceHandle
	Codec    string
	Mode     engine.DecodeMode
	Frames   int64
	LengthMs int64
	Refs     int
}

// CreateResource copies data and decodes it on the player engine. The caller
// may reuse data as soon as this returns.
func (m *Manager) CreateResource(data []byte) (ResourceHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkOpen(); err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, ErrEmptyBuffer
	}

	owned := make([]byte, len(data))
	copy(owned, data)

	ds, err := m.player.NewDataSource(owned, engine.DecodeEager)
	if err != nil {
		m.logger.Debug("resource rejected", zap.Int("bytes", len(data)), zap.Error(err))
		return 0, fmt.Errorf("failed to create resource: %w", err)
	}

	h := ResourceHandle(m.resources.Insert(&resource{ds: ds}))
	m.logger.Debug("resource created",
		zap.Stringer("resource", h), zap.String("codec", ds.Codec()), zap.Int64("frames", ds.Frames()))
	return h, nil
}

// ReleaseResource uninitializes the data source and frees its buffer. It
// fails with ErrResourceInUse while units still reference the resource.
func (m *Manager) ReleaseResource(h ResourceHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkOpen(); err != nil {
		return err
	}
	r, ok := m.resources.Get(slot.Key(h))
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownResource, h)
	}
	if r.refs > 0 {
		return fmt.Errorf("%w: %s has %d units", ErrResourceInUse, h, r.refs)
	}

	m.resources.Remove(slot.Key(h))
	if err := r.ds.Close(); err != nil {
		m.logger.Warn("data source close failed", zap.Stringer("resource", h), zap.Error(err))
	}
	m.logger.Debug("resource released", zap.Stringer("resource", h))
	return nil
}

// Resource describes a live resource
func (m *Manager) Resource(h ResourceHandle) (ResourceInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkOpen(); err != nil {
		return ResourceInfo{}, err
	}
	r, ok := m.resources.Get(slot.Key(h))
	if !ok {
		return ResourceInfo{}, fmt.Errorf("%w: %s", ErrUnknownResource, h)
	}
	return m.resourceInfo(h, r), nil
}

// Resources lists live resources in table order
func (m *Manager) Resources() []ResourceInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	var infos []ResourceInfo
	m.resources.Each(func(k slot.Key, r *resource) bool {
		infos = append(infos, m.resourceInfo(ResourceHandle(k), r))
		return true
	})
	return infos
}

func (m *Manager) resourceInfo(h ResourceHandle, r *resource) ResourceInfo {
	frames := r.ds.Frames()
	return ResourceInfo{
		Handle:   h,
		Codec:    r.ds.Codec(),
		Mode:     r.ds.Mode(),
		Frames:   frames,
		LengthMs: m.player.FramesToMillis(frames),
		Refs:     r.refs,
	}
}
