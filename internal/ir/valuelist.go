package ir

import "ssacore/internal/entity"

// ValueList is a handle into the function's shared value-list pool. The
// zero ValueList (index 0) denotes the empty list and is never allocated a
// backing block.
type ValueList entity.Value

// sizeClasses are the capacities the pool allocates at, each a power of two.
// A list's first pool slot stores its current length; the remaining
// capacity-1 slots hold elements, so class k holds up to sizeClasses[k]-1 values.
var sizeClasses = [...]int{4, 8, 16, 32, 64, 128, 256}

func sizeClassFor(n int) int {
	for i, c := range sizeClasses {
		if n < c {
			return i
		}
	}
	panic("ir: value list grew beyond the largest size class")
}

// ValueListPool is the shared, size-classed, pooled backing store for every
// ValueList in a Function (spec.md §3 "Value-list pool"). Values in an
// instruction's argument list or a block's parameter list are stored here,
// indexed by a 4-byte ValueList handle.
type ValueListPool struct {
	data      []entity.Value // flat storage, organized into size-classed blocks
	freeLists [len(sizeClasses)][]int // free block start offsets per size class
}

// NewValueListPool creates an empty pool. Index 0 is reserved for the empty
// list and never resolves to a real block.
func NewValueListPool() *ValueListPool {
	return &ValueListPool{data: make([]entity.Value, 1)}
}

func (p *ValueListPool) allocBlock(class int) int {
	cap := sizeClasses[class]
	if free := p.freeLists[class]; len(free) > 0 {
		off := free[len(free)-1]
		p.freeLists[class] = free[:len(free)-1]
		return off
	}
	off := len(p.data)
	p.data = append(p.data, make([]entity.Value, cap)...)
	return off
}

func (p *ValueListPool) freeBlock(class, off int) {
	p.freeLists[class] = append(p.freeLists[class], off)
}

// NewValueList constructs a ValueList containing vs.
func (p *ValueListPool) NewValueList(vs ...entity.Value) ValueList {
	if len(vs) == 0 {
		return ValueList(0)
	}
	class := sizeClassFor(len(vs))
	off := p.allocBlock(class)
	p.data[off] = entity.Value(len(vs))
	copy(p.data[off+1:off+1+len(vs)], vs)
	return ValueList(off)
}

// Len returns the number of elements in vl.
func (p *ValueListPool) Len(vl ValueList) int {
	if vl == 0 {
		return 0
	}
	return int(p.data[int(vl)])
}

// AsSlice returns the live elements of vl. The returned slice aliases pool
// storage and must not be retained past the next mutation of vl.
func (p *ValueListPool) AsSlice(vl ValueList) []entity.Value {
	if vl == 0 {
		return nil
	}
	n := p.Len(vl)
	off := int(vl)
	return p.data[off+1 : off+1+n]
}

// Get returns the i'th element of vl.
func (p *ValueListPool) Get(vl ValueList, i int) entity.Value {
	return p.data[int(vl)+1+i]
}

// Set overwrites the i'th element of vl.
func (p *ValueListPool) Set(vl ValueList, i int, v entity.Value) {
	p.data[int(vl)+1+i] = v
}

// Push appends v to vl, growing into a fresh size class (and freeing the old
// block) if the current class is full. Returns the possibly-new handle.
func (p *ValueListPool) Push(vl ValueList, v entity.Value) ValueList {
	n := p.Len(vl)
	if vl != 0 {
		class := sizeClassFor(n)
		if n+1 < sizeClasses[class] {
			p.data[int(vl)] = entity.Value(n + 1)
			p.data[int(vl)+1+n] = v
			return vl
		}
	}
	old := p.AsSlice(vl)
	next := make([]entity.Value, n+1)
	copy(next, old)
	next[n] = v
	if vl != 0 {
		p.freeBlock(sizeClassFor(n), int(vl))
	}
	return p.NewValueList(next...)
}

// Extend appends vs to vl, returning the possibly-new handle.
func (p *ValueListPool) Extend(vl ValueList, vs []entity.Value) ValueList {
	for _, v := range vs {
		vl = p.Push(vl, v)
	}
	return vl
}

// Remove deletes the i'th element of vl in place (shifting later elements
// down), returning the (unchanged) handle.
func (p *ValueListPool) Remove(vl ValueList, i int) ValueList {
	n := p.Len(vl)
	off := int(vl)
	copy(p.data[off+1+i:off+n], p.data[off+2+i:off+1+n])
	p.data[off] = entity.Value(n - 1)
	return vl
}

// Truncate shrinks vl to n elements in place.
func (p *ValueListPool) Truncate(vl ValueList, n int) {
	if vl == 0 {
		return
	}
	p.data[int(vl)] = entity.Value(n)
}

// Clone duplicates vl into a freshly allocated block (or the shared empty
// sentinel if vl is empty).
func (p *ValueListPool) Clone(vl ValueList) ValueList {
	return p.NewValueList(p.AsSlice(vl)...)
}
