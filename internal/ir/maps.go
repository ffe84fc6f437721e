package ir

import "ssacore/internal/entity"

// PrimaryMap is a dense vector that owns the data for each handle. Push
// allocates the next index; Get/GetPtr resolve a handle back to its data.
type PrimaryMap[H entity.Handle, V any] struct {
	items []V
}

// Push allocates the next handle and stores v under it.
func (m *PrimaryMap[H, V]) Push(v V) H {
	idx := uint32(len(m.items))
	m.items = append(m.items, v)
	return H(idx)
}

// Get returns the data owned by h.
func (m *PrimaryMap[H, V]) Get(h H) V { return m.items[uint32(h)] }

// GetPtr returns a pointer to the data owned by h, for in-place mutation.
func (m *PrimaryMap[H, V]) GetPtr(h H) *V { return &m.items[uint32(h)] }

// Set overwrites the data owned by h.
func (m *PrimaryMap[H, V]) Set(h H, v V) { m.items[uint32(h)] = v }

// Len returns the number of handles allocated so far.
func (m *PrimaryMap[H, V]) Len() int { return len(m.items) }

// IsValid reports whether h was allocated by this map.
func (m *PrimaryMap[H, V]) IsValid(h H) bool { return uint32(h) < uint32(len(m.items)) }

// Keys returns every handle allocated so far, in allocation order.
func (m *PrimaryMap[H, V]) Keys() []H {
	keys := make([]H, len(m.items))
	for i := range m.items {
		keys[i] = H(uint32(i))
	}
	return keys
}

// SecondaryMap is keyed by the same handle space as a PrimaryMap but is
// separately owned and sparse-capable: indices beyond what has been written
// resolve to a caller-supplied default value instead of panicking.
type SecondaryMap[H entity.Handle, V any] struct {
	items []V
	def   V
}

// NewSecondaryMap creates a secondary map whose unset entries read as def.
func NewSecondaryMap[H entity.Handle, V any](def V) *SecondaryMap[H, V] {
	return &SecondaryMap[H, V]{def: def}
}

// Get returns the value stored at h, or the map's default if h is beyond the
// range ever written.
func (m *SecondaryMap[H, V]) Get(h H) V {
	i := uint32(h)
	if i >= uint32(len(m.items)) {
		return m.def
	}
	return m.items[i]
}

// Set stores v at h, growing the backing slice (filling new slots with the
// default) as needed.
func (m *SecondaryMap[H, V]) Set(h H, v V) {
	i := uint32(h)
	m.growTo(i + 1)
	m.items[i] = v
}

func (m *SecondaryMap[H, V]) growTo(n uint32) {
	for uint32(len(m.items)) < n {
		m.items = append(m.items, m.def)
	}
}
