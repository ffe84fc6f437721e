package ir

import "ssacore/internal/entity"

// valueTag discriminates the packed 64-bit encoding of a Value's definition
// (spec.md §3 "Packed value table").
type valueTag uint64

const (
	tagInst  valueTag = 0 // result index (x) + defining inst index (y)
	tagParam valueTag = 1 // param index (x) + owning block index (y)
	tagAlias valueTag = 2 // original value index (y); x unused
	tagUnion valueTag = 3 // two value indices (x, y) — e-graph representation
)

const (
	tagBits  = 2
	typeBits = 14
	xBits    = 24
	yBits    = 24

	tagShift  = 0
	typeShift = tagBits
	xShift    = tagBits + typeBits
	yShift    = tagBits + typeBits + xBits

	tagMask  = (1 << tagBits) - 1
	typeMask = (1 << typeBits) - 1
	xMask    = (1 << xBits) - 1
	yMask    = (1 << yBits) - 1
)

// packedValue is the 64-bit on-disk encoding of a single Value's def-site.
type packedValue uint64

func encodeValue(tag valueTag, ty Type, x, y uint32) packedValue {
	if uint64(tag) > tagMask {
		panic("ir: value tag out of range")
	}
	if uint32(ty) > typeMask {
		panic("ir: type index out of range for packed value")
	}
	if x > xMask || y > yMask {
		panic("ir: value payload index out of range for packed value")
	}
	return packedValue(uint64(tag)<<tagShift |
		uint64(ty)<<typeShift |
		uint64(x)<<xShift |
		uint64(y)<<yShift)
}

func (p packedValue) tag() valueTag { return valueTag((uint64(p) >> tagShift) & tagMask) }
func (p packedValue) ty() Type      { return Type((uint64(p) >> typeShift) & typeMask) }
func (p packedValue) x() uint32     { return uint32((uint64(p) >> xShift) & xMask) }
func (p packedValue) y() uint32     { return uint32((uint64(p) >> yShift) & yMask) }

// ValueDef describes how a Value is defined: as an instruction result, a
// block parameter, an alias of another value, or a union of two values
// (a kind that nothing in internal/ir or internal/egraph creates).
type ValueDef struct {
	Kind  ValueDefKind
	Inst  entity.Inst  // Kind == DefResult
	Num   int          // Kind == DefResult (result index) or DefParam (param index)
	Block entity.Block // Kind == DefParam
	Alias entity.Value // Kind == DefAlias
	V1    entity.Value // Kind == DefUnion
	V2    entity.Value // Kind == DefUnion
}

// ValueDefKind discriminates ValueDef.
type ValueDefKind int

const (
	DefResult ValueDefKind = iota
	DefParam
	DefAlias
	DefUnion
)

func decodeValue(p packedValue) ValueDef {
	switch p.tag() {
	case tagInst:
		return ValueDef{Kind: DefResult, Inst: entity.Inst(p.y()), Num: int(p.x())}
	case tagParam:
		return ValueDef{Kind: DefParam, Block: entity.Block(p.y()), Num: int(p.x())}
	case tagAlias:
		return ValueDef{Kind: DefAlias, Alias: entity.Value(p.y())}
	case tagUnion:
		return ValueDef{Kind: DefUnion, V1: entity.Value(p.x()), V2: entity.Value(p.y())}
	default:
		panic("ir: corrupt packed value tag")
	}
}
