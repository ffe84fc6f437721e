package ir

import "ssacore/internal/entity"

// SSABuilder incrementally constructs SSA form while a function is still
// being built from a structured source AST or bytecode stream, without a
// separate mem2reg pass: reads and writes of named variables are converted
// to value uses and phi (block-parameter) insertion on the fly, following
// Braun et al.'s "Simple and Efficient Construction of Static Single
// Assignment Form." The teacher's Builder tracked the same three pieces of
// state (variableStack, incompletePhis, sealedBlocks) for its EVM locals;
// this generalizes them to arbitrary IR values keyed by entity.Block.
type SSABuilder struct {
	b *Builder

	// variableStack holds, for each source-level variable name, the current
	// definition in every block that has one. A block not present for a
	// given variable has never been asked to define or read it.
	variableStack map[string]map[entity.Block]entity.Value

	// incompletePhis holds block parameters created speculatively (as
	// placeholders) in an unsealed block, to be wired up once the block's
	// predecessor set is final. Keyed by block, then by variable name.
	incompletePhis map[entity.Block]map[string]entity.Value

	varTypes map[string]Type

	sealedBlocks map[entity.Block]bool

	// preds records, per block, the edges that jump or branch to it —
	// both the predecessor block and the terminator instruction that
	// carries the BlockCall, so addPhiOperands can thread a resolved phi
	// value into that BlockCall's argument list once it's known.
	// Populated by RecordPredecessor as the caller lays out control flow.
	preds map[entity.Block][]predEdge
}

// predEdge is one control-flow edge feeding into a block: from is the
// predecessor, via is the terminator instruction (Jump/Branch/BrTable) in
// from whose BlockCall(s) target the successor.
type predEdge struct {
	from entity.Block
	via  entity.Inst
}

// NewSSABuilder wraps b with Braun-style variable tracking.
func NewSSABuilder(b *Builder) *SSABuilder {
	return &SSABuilder{
		b:              b,
		variableStack:  make(map[string]map[entity.Block]entity.Value),
		incompletePhis: make(map[entity.Block]map[string]entity.Value),
		varTypes:       make(map[string]Type),
		sealedBlocks:   make(map[entity.Block]bool),
		preds:          make(map[entity.Block][]predEdge),
	}
}

// RecordPredecessor notes that from's terminator via jumps or branches to
// to. Must be called for every control-flow edge before to is sealed, so
// that any phi resolved for to can be threaded back into via's BlockCall.
func (s *SSABuilder) RecordPredecessor(from entity.Block, via entity.Inst, to entity.Block) {
	s.preds[to] = append(s.preds[to], predEdge{from: from, via: via})
}

// DefVar records that variable now holds value within block.
func (s *SSABuilder) DefVar(variable string, block entity.Block, value entity.Value) {
	if s.variableStack[variable] == nil {
		s.variableStack[variable] = make(map[entity.Block]entity.Value)
	}
	s.variableStack[variable][block] = value
	if _, ok := s.varTypes[variable]; !ok {
		s.varTypes[variable] = s.b.Func.DFG.ValueType(value)
	}
}

// UseVar resolves variable's current value as observed from block, recursing
// through predecessors and inserting block parameters (phis) as needed.
func (s *SSABuilder) UseVar(variable string, block entity.Block) entity.Value {
	if v, ok := s.variableStack[variable][block]; ok {
		return v
	}
	return s.readVarRecursive(variable, block)
}

func (s *SSABuilder) readVarRecursive(variable string, block entity.Block) entity.Value {
	var value entity.Value
	if !s.sealedBlocks[block] {
		// Block isn't sealed yet: its predecessor set may still grow.
		// Speculatively add a block parameter and remember it as
		// incomplete; SealBlock will wire its real operands in later.
		ty := s.varTypes[variable]
		value = s.b.AppendBlockParam(block, ty)
		if s.incompletePhis[block] == nil {
			s.incompletePhis[block] = make(map[string]entity.Value)
		}
		s.incompletePhis[block][variable] = value
	} else if preds := s.preds[block]; len(preds) == 1 {
		// Exactly one predecessor: no phi needed, just forward its value.
		value = s.UseVar(variable, preds[0].from)
	} else {
		// Zero or multiple predecessors: add a block parameter up front to
		// break reference cycles in loops, then fill it in.
		ty := s.varTypes[variable]
		value = s.b.AppendBlockParam(block, ty)
		s.DefVar(variable, block, value)
		value = s.addPhiOperands(variable, block, value)
	}
	s.DefVar(variable, block, value)
	return value
}

// addPhiOperands resolves variable's value along each of block's recorded
// predecessor edges and threads it into that edge's terminator BlockCall,
// at param's position among block's parameters — recovered from
// DFG.ValueDef(param).Num rather than relying on append order, since
// SealBlock iterates incompletePhis in unspecified map order.
func (s *SSABuilder) addPhiOperands(variable string, block entity.Block, param entity.Value) entity.Value {
	preds := s.preds[block]
	index := s.b.Func.DFG.ValueDef(param).Num
	incoming := make([]entity.Value, 0, len(preds))
	for _, pred := range preds {
		v := s.UseVar(variable, pred.from)
		incoming = append(incoming, v)
		s.b.ThreadBlockCallArg(pred.via, block, index, v)
	}
	return s.tryRemoveTrivialPhi(param, incoming)
}

// tryRemoveTrivialPhi collapses param to its single non-self incoming value
// if every predecessor agrees (Braun et al. §3.2), eliminating redundant
// phis as construction proceeds rather than in a separate cleanup pass. A
// self-reference (param appearing among its own incoming values, from a
// loop back-edge) is ignored when checking agreement. Does not propagate
// the collapse to earlier uses of param recorded before this call returns;
// those still resolve correctly through DFG.ResolveAliases.
func (s *SSABuilder) tryRemoveTrivialPhi(param entity.Value, incoming []entity.Value) entity.Value {
	var same entity.Value
	hasSame := false
	for _, v := range incoming {
		if v == param {
			continue
		}
		if hasSame && v != same {
			return param
		}
		same = v
		hasSame = true
	}
	if !hasSame {
		return param
	}
	s.b.Func.DFG.ChangeToAlias(param, same)
	return same
}

// SealBlock marks block's predecessor set as final, resolving any block
// parameters that were speculatively inserted for it while it was
// unsealed.
func (s *SSABuilder) SealBlock(block entity.Block) {
	for variable, param := range s.incompletePhis[block] {
		s.addPhiOperands(variable, block, param)
	}
	s.sealedBlocks[block] = true
}

// IsSealed reports whether block has been sealed.
func (s *SSABuilder) IsSealed(block entity.Block) bool {
	return s.sealedBlocks[block]
}
