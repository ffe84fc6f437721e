package rewrite

import "ssacore/internal/ir"

// Identities returns the additive/multiplicative/bitwise identity rules:
// x+0=x, x*1=x, x*0=0, x-0=x, x^0=x, x|0=x, x&-1=x (spec.md §4.8 "algebraic
// identities").
func Identities() []Rule {
	x := V("x")
	zero := C(0)
	one := C(1)
	allOnes := C(-1)
	return []Rule{
		{Name: "iadd-zero", LHS: Op(ir.OpIadd, x, zero), RHS: x},
		{Name: "isub-zero", LHS: Op(ir.OpIsub, x, zero), RHS: x},
		{Name: "imul-one", LHS: Op(ir.OpImul, x, one), RHS: x},
		{Name: "imul-zero", LHS: Op(ir.OpImul, x, zero), RHS: zero},
		{Name: "bxor-zero", LHS: Op(ir.OpBxor, x, zero), RHS: x},
		{Name: "bor-zero", LHS: Op(ir.OpBor, x, zero), RHS: x},
		{Name: "band-allones", LHS: Op(ir.OpBand, x, allOnes), RHS: x},
	}
}

// Absorbing returns the rules where one operand determines the whole
// result regardless of the other: x&0=0, x|-1=-1.
func Absorbing() []Rule {
	x := V("x")
	zero := C(0)
	allOnes := C(-1)
	return []Rule{
		{Name: "band-zero", LHS: Op(ir.OpBand, x, zero), RHS: zero},
		{Name: "bor-allones", LHS: Op(ir.OpBor, x, allOnes), RHS: allOnes},
	}
}

// Idempotence returns x op x = x for the self-absorbing bitwise ops, plus
// x-x=0 and x^x=0.
func Idempotence() []Rule {
	x := V("x")
	return []Rule{
		{Name: "band-self", LHS: Op(ir.OpBand, x, x), RHS: x},
		{Name: "bor-self", LHS: Op(ir.OpBor, x, x), RHS: x},
		{Name: "isub-self", LHS: Op(ir.OpIsub, x, x), RHS: C(0)},
		{Name: "bxor-self", LHS: Op(ir.OpBxor, x, x), RHS: C(0)},
	}
}

// Commutativity returns x op y -> y op x for every binary opcode
// ir.Opcode.IsCommutative reports true for. Both orientations end up in the
// same e-class once the driver merges them, so one direction per opcode is
// enough to saturate.
func Commutativity() []Rule {
	x, y := V("x"), V("y")
	var rules []Rule
	for _, op := range commutativeOpcodes {
		rules = append(rules, Rule{
			Name: op.String() + "-commute",
			LHS:  Op(op, x, y),
			RHS:  Op(op, y, x),
		})
	}
	return rules
}

// Associativity returns (x op y) op z -> x op (y op z) for every opcode
// ir.Opcode.IsAssociative reports true for.
func Associativity() []Rule {
	x, y, z := V("x"), V("y"), V("z")
	var rules []Rule
	for _, op := range associativeOpcodes {
		rules = append(rules, Rule{
			Name: op.String() + "-reassociate",
			LHS:  Op(op, Op(op, x, y), z),
			RHS:  Op(op, x, Op(op, y, z)),
		})
	}
	return rules
}

// StrengthReduction rewrites multiply/divide/remainder-by-power-of-two
// shaped expressions into shifts and masks (spec.md §4.8: "x*2ⁿ -> x<<n,
// udiv/urem by 2ⁿ"). These rules cover only the literal n=1 case (x*2, x/2,
// x%2): C(value) matches one specific constant, so multiplying, dividing or
// taking the remainder by a larger power of two is not rewritten, here or
// anywhere else in this module — see SPEC_FULL.md's KNOWN SCOPE LIMITS.
func StrengthReduction() []Rule {
	x := V("x")
	return []Rule{
		{Name: "imul-two-to-shift", LHS: Op(ir.OpImul, x, C(2)), RHS: Op(ir.OpIshl, x, C(1))},
		{Name: "udiv-two-to-shift", LHS: Op(ir.OpUdiv, x, C(2)), RHS: Op(ir.OpUshr, x, C(1))},
		{Name: "urem-two-to-mask", LHS: Op(ir.OpUrem, x, C(2)), RHS: Op(ir.OpBand, x, C(1))},
	}
}

// Distributivity returns x*(y+z) -> x*y + x*z, letting further constant
// folding and CSE rules collapse it back down where that's actually
// cheaper; the extractor's cost model is what ultimately decides whether
// this form wins.
func Distributivity() []Rule {
	x, y, z := V("x"), V("y"), V("z")
	return []Rule{
		{
			Name: "imul-distribute-over-iadd",
			LHS:  Op(ir.OpImul, x, Op(ir.OpIadd, y, z)),
			RHS:  Op(ir.OpIadd, Op(ir.OpImul, x, y), Op(ir.OpImul, x, z)),
		},
	}
}

// DeMorgan returns the two De Morgan dualities over band/bor/bnot.
func DeMorgan() []Rule {
	x, y := V("x"), V("y")
	return []Rule{
		{
			Name: "demorgan-and",
			LHS:  Op(ir.OpBnot, Op(ir.OpBand, x, y)),
			RHS:  Op(ir.OpBor, Op(ir.OpBnot, x), Op(ir.OpBnot, y)),
		},
		{
			Name: "demorgan-or",
			LHS:  Op(ir.OpBnot, Op(ir.OpBor, x, y)),
			RHS:  Op(ir.OpBand, Op(ir.OpBnot, x), Op(ir.OpBnot, y)),
		},
	}
}

// DoubleNegation returns bnot(bnot(x))=x and ineg(ineg(x))=x.
func DoubleNegation() []Rule {
	x := V("x")
	return []Rule{
		{Name: "double-bnot", LHS: Op(ir.OpBnot, Op(ir.OpBnot, x)), RHS: x},
		{Name: "double-ineg", LHS: Op(ir.OpIneg, Op(ir.OpIneg, x)), RHS: x},
	}
}

// ComparisonSelfReflection folds icmp against an identical operand on both
// sides to its constant truth value: eq/sle/sge/ule/uge are always true of
// x compared to itself, ne/slt/sgt/ult/ugt are always false.
func ComparisonSelfReflection() []Rule {
	x := V("x")
	var rules []Rule
	for cond, isTrue := range selfComparisonTruth {
		result := int64(0)
		if isTrue {
			result = 1
		}
		rules = append(rules, Rule{
			Name: cond.String() + "-self-compare",
			LHS:  CondOp(ir.OpIcmp, int64(cond), x, x),
			RHS:  C(result),
		})
	}
	return rules
}

var commutativeOpcodes = []ir.Opcode{ir.OpIadd, ir.OpImul, ir.OpBand, ir.OpBor, ir.OpBxor, ir.OpFadd, ir.OpFmul}

var associativeOpcodes = []ir.Opcode{ir.OpIadd, ir.OpImul, ir.OpBand, ir.OpBor, ir.OpBxor}

var selfComparisonTruth = map[ir.IntCC]bool{
	ir.IntEqual:                     true,
	ir.IntNotEqual:                  false,
	ir.IntSignedLessThan:            false,
	ir.IntSignedLessThanOrEqual:     true,
	ir.IntSignedGreaterThan:         false,
	ir.IntSignedGreaterThanOrEqual:  true,
	ir.IntUnsignedLessThan:          false,
	ir.IntUnsignedLessThanOrEqual:   true,
	ir.IntUnsignedGreaterThan:       false,
	ir.IntUnsignedGreaterThanOrEqual: true,
}

// BuiltinRules returns the full set of rule families this package ships,
// in the order a saturation run typically wants them applied (cheap
// structural rules first, expansive ones like distributivity last so the
// node-limit safety valve trips on the rule most likely to blow up first).
func BuiltinRules() []Rule {
	var all []Rule
	all = append(all, Identities()...)
	all = append(all, Absorbing()...)
	all = append(all, Idempotence()...)
	all = append(all, Commutativity()...)
	all = append(all, Associativity()...)
	all = append(all, DoubleNegation()...)
	all = append(all, DeMorgan()...)
	all = append(all, ComparisonSelfReflection()...)
	all = append(all, StrengthReduction()...)
	all = append(all, Distributivity()...)
	return all
}
