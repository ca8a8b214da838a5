// ABOUTME: Audio engine built on a shared output device
// ABOUTME: Provides data sources over encoded buffers and sounds that play them
// Package engine turns encoded audio buffers into playable sounds.
//
// An Engine wraps an output.Device. Data sources decode their buffer to the
// device format, either all at once (DecodeEager) or as playback reads
// (DecodeStreamed). A Sound plays a data source through its own cursor, so
// many sounds can share one source.
//
// Example:
//
//	eng, err := engine.New(dev, engine.Config{Name: "player"})
//	ds, err := eng.NewDataSource(data, engine.DecodeEager)
//	snd, err := eng.NewSound(ds)
//	err = snd.Start()
package engine
