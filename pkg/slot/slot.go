// ABOUTME: Generation-checked arena keyed by index and generation
// ABOUTME: Freed slots are reused with a new generation so stale keys miss
// Package slot provides an arena whose keys detect use after free.
package slot

import "fmt"

// Key identifies an arena entry. The high 32 bits are the slot index, the
// low 32 bits the generation. The zero Key is never issued.
type Key uint64

func makeKey(index, gen uint32) Key {
	return Key(uint64(index)<<32 | uint64(gen))
}

// Index returns the slot index
func (k Key) Index() uint32 { return uint32(k >> 32) }

// Generation returns the slot generation
func (k Key) Generation() uint32 { return uint32(k) }

// IsZero reports whether k is the zero Key
func (k Key) IsZero() bool { return k == 0 }

func (k Key) String() string {
	return fmt.Sprintf("%d.%d", k.Index(), k.Generation())
}

type entry[T any] struct {
	value    T
	gen      uint32
	occupied bool
}

// Arena stores values under generation-checked keys. It is not safe for
// concurrent use.
type Arena[T any] struct {
	entries []entry[T]
	free    []uint32
	count   int
}

// Insert stores value and returns its key
func (a *Arena[T]) Insert(value T) Key {
	var index uint32
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		index = uint32(len(a.entries))
		a.entries = append(a.entries, entry[T]{})
	}

	e := &a.entries[index]
	e.gen++
	if e.gen == 0 {
		// Generation zero is reserved so index 0 never yields Key 0
		e.gen = 1
	}
	e.value = value
	e.occupied = true
	a.count++
	return makeKey(index, e.gen)
}

// Get returns the value stored under k
func (a *Arena[T]) Get(k Key) (T, bool) {
	e := a.lookup(k)
	if e == nil {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Remove deletes the value stored under k and returns it
func (a *Arena[T]) Remove(k Key) (T, bool) {
	var zero T
	e := a.lookup(k)
	if e == nil {
		return zero, false
	}
	value := e.value
	e.value = zero
	e.occupied = false
	a.free = append(a.free, k.Index())
	a.count--
	return value, true
}

// Contains reports whether k is live
func (a *Arena[T]) Contains(k Key) bool {
	return a.lookup(k) != nil
}

// Len returns the number of live entries
func (a *Arena[T]) Len() int {
	return a.count
}

// Each calls fn for every live entry in index order until fn returns false
func (a *Arena[T]) Each(fn func(Key, T) bool) {
	for i := range a.entries {
		e := &a.entries[i]
		if !e.occupied {
			continue
		}
		if !fn(makeKey(uint32(i), e.gen), e.value) {
			return
		}
	}
}

// Keys returns the live keys in index order
func (a *Arena[T]) Keys() []Key {
	keys := make([]Key, 0, a.count)
	a.Each(func(k Key, _ T) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

func (a *Arena[T]) lookup(k Key) *entry[T] {
	if k.IsZero() {
		return nil
	}
	index := k.Index()
	if int(index) >= len(a.entries) {
		return nil
	}
	e := &a.entries[index]
	if !e.occupied || e.gen != k.Generation() {
		return nil
	}
	return e
}
