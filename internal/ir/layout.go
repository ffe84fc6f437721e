package ir

import "ssacore/internal/entity"

// Layout imposes a linear order on blocks and the instructions within each
// block, independent of allocation order (spec.md §3 "Layout"). Order is
// tracked with intrusive doubly-linked side tables rather than slices, so
// inserting or removing an instruction anywhere in a block is O(1) and never
// invalidates a Value or Inst handle held elsewhere.
type Layout struct {
	blocks  SecondaryMap[entity.Block, layoutBlockNode]
	insts   SecondaryMap[entity.Inst, layoutInstNode]
	first   entity.Block
	last    entity.Block
	hasAny  bool
	blockOf SecondaryMap[entity.Inst, entity.Block]
}

type layoutBlockNode struct {
	prev, next       entity.Block
	hasPrev, hasNext bool
	firstInst        entity.Inst
	lastInst         entity.Inst
	hasInsts         bool
}

type layoutInstNode struct {
	prev, next       entity.Inst
	hasPrev, hasNext bool
}

// NewLayout creates an empty layout.
func NewLayout() *Layout {
	return &Layout{
		blocks:  *NewSecondaryMap[entity.Block, layoutBlockNode](layoutBlockNode{}),
		insts:   *NewSecondaryMap[entity.Inst, layoutInstNode](layoutInstNode{}),
		blockOf: *NewSecondaryMap[entity.Inst, entity.Block](entity.Nil[entity.Block]()),
	}
}

// IsBlockInserted reports whether block has been placed in the layout.
func (l *Layout) IsBlockInserted(block entity.Block) bool {
	if !l.hasAny {
		return false
	}
	for b, ok := l.first, l.hasAny; ok; b, ok = l.nextBlock(b) {
		if b == block {
			return true
		}
	}
	return false
}

func (l *Layout) nextBlock(b entity.Block) (entity.Block, bool) {
	node := l.blocks.Get(b)
	return node.next, node.hasNext
}

// AppendBlock inserts block at the end of the layout.
func (l *Layout) AppendBlock(block entity.Block) {
	node := layoutBlockNode{}
	if l.hasAny {
		node.hasPrev = true
		node.prev = l.last
		last := l.blocks.Get(l.last)
		last.hasNext = true
		last.next = block
		l.blocks.Set(l.last, last)
	} else {
		l.first = block
	}
	l.blocks.Set(block, node)
	l.last = block
	l.hasAny = true
}

// InsertBlockAfter places block immediately after after in the layout.
func (l *Layout) InsertBlockAfter(block, after entity.Block) {
	afterNode := l.blocks.Get(after)
	node := layoutBlockNode{hasPrev: true, prev: after}
	if afterNode.hasNext {
		node.hasNext = true
		node.next = afterNode.next
		nextNode := l.blocks.Get(afterNode.next)
		nextNode.prev = block
		l.blocks.Set(afterNode.next, nextNode)
	} else {
		l.last = block
	}
	afterNode.hasNext = true
	afterNode.next = block
	l.blocks.Set(after, afterNode)
	l.blocks.Set(block, node)
}

// Blocks returns every block in layout order.
func (l *Layout) Blocks() []entity.Block {
	if !l.hasAny {
		return nil
	}
	var out []entity.Block
	for b, ok := l.first, true; ok; {
		out = append(out, b)
		b, ok = l.nextBlock(b)
	}
	return out
}

// FirstBlock returns the entry block, if any.
func (l *Layout) FirstBlock() (entity.Block, bool) {
	return l.first, l.hasAny
}

// NextBlockOf returns the block following b, if any.
func (l *Layout) NextBlockOf(b entity.Block) (entity.Block, bool) {
	return l.nextBlock(b)
}

// AppendInst appends inst to the end of block.
func (l *Layout) AppendInst(inst entity.Inst, block entity.Block) {
	bn := l.blocks.Get(block)
	in := layoutInstNode{}
	if bn.hasInsts {
		in.hasPrev = true
		in.prev = bn.lastInst
		prevNode := l.insts.Get(bn.lastInst)
		prevNode.hasNext = true
		prevNode.next = inst
		l.insts.Set(bn.lastInst, prevNode)
	} else {
		bn.firstInst = inst
	}
	bn.lastInst = inst
	bn.hasInsts = true
	l.blocks.Set(block, bn)
	l.insts.Set(inst, in)
	l.blockOf.Set(inst, block)
}

// InsertInstBefore places inst immediately before before within before's
// block.
func (l *Layout) InsertInstBefore(inst, before entity.Inst) {
	block := l.blockOf.Get(before)
	beforeNode := l.insts.Get(before)
	node := layoutInstNode{hasNext: true, next: before}
	if beforeNode.hasPrev {
		node.hasPrev = true
		node.prev = beforeNode.prev
		prevNode := l.insts.Get(beforeNode.prev)
		prevNode.next = inst
		l.insts.Set(beforeNode.prev, prevNode)
	} else {
		bn := l.blocks.Get(block)
		bn.firstInst = inst
		l.blocks.Set(block, bn)
	}
	beforeNode.hasPrev = true
	beforeNode.prev = inst
	l.insts.Set(before, beforeNode)
	l.insts.Set(inst, node)
	l.blockOf.Set(inst, block)
}

// BlockInsts returns every instruction of block in layout order.
func (l *Layout) BlockInsts(block entity.Block) []entity.Inst {
	bn := l.blocks.Get(block)
	if !bn.hasInsts {
		return nil
	}
	var out []entity.Inst
	for i, ok := bn.firstInst, true; ok; {
		out = append(out, i)
		node := l.insts.Get(i)
		i, ok = node.next, node.hasNext
	}
	return out
}

// LastInst returns the final instruction of block (its terminator), if any.
func (l *Layout) LastInst(block entity.Block) (entity.Inst, bool) {
	bn := l.blocks.Get(block)
	return bn.lastInst, bn.hasInsts
}

// BlockOf returns the block inst was placed into.
func (l *Layout) BlockOf(inst entity.Inst) entity.Block {
	return l.blockOf.Get(inst)
}

// RemoveInst detaches inst from its block's instruction chain. The
// instruction's data is left allocated in the DFG; only its position in
// program order is forgotten, matching the teacher's "dead code stays
// addressable until GC" convention.
func (l *Layout) RemoveInst(inst entity.Inst) {
	block := l.blockOf.Get(inst)
	node := l.insts.Get(inst)
	bn := l.blocks.Get(block)
	if node.hasPrev {
		prevNode := l.insts.Get(node.prev)
		prevNode.hasNext, prevNode.next = node.hasNext, node.next
		l.insts.Set(node.prev, prevNode)
	} else {
		bn.firstInst = node.next
	}
	if node.hasNext {
		nextNode := l.insts.Get(node.next)
		nextNode.hasPrev, nextNode.prev = node.hasPrev, node.prev
		l.insts.Set(node.next, nextNode)
	} else {
		bn.lastInst = node.prev
	}
	if !node.hasPrev && !node.hasNext {
		bn.hasInsts = false
	}
	l.blocks.Set(block, bn)
}
