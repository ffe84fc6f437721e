// Package rangeanalysis implements a forward dataflow analysis tracking,
// for every SSA value, an interval of possible integer values (spec.md
// §4.9). It's new relative to the teacher, but follows the teacher's
// per-value analysis-fact shape (Loop.Invariant in internal/ir/types.go
// attaches one fact per value via a dataflow pass) generalized from a
// single boolean fact to a signed-integer interval lattice.
package rangeanalysis

import "math"

// NegInf and PosInf stand in for unbounded ends of an interval; ordinary
// arithmetic on them saturates rather than wrapping, so a computation that
// touches infinity stays infinite instead of silently becoming a huge
// finite (and wrong) number.
const (
	NegInf = int64(math.MinInt64)
	PosInf = int64(math.MaxInt64)
)

// Interval is a closed range [Low, High], or the empty set when Empty is
// set (the bottom of the lattice — "this value is dead code" or "this
// intersection proved impossible").
type Interval struct {
	Low, High int64
	Empty     bool
}

// EmptyInterval is the lattice bottom.
func EmptyInterval() Interval { return Interval{Empty: true} }

// FullInterval is the lattice top: every representable value is possible.
func FullInterval() Interval { return Interval{Low: NegInf, High: PosInf} }

// Exact returns the single-value interval [v, v].
func Exact(v int64) Interval { return Interval{Low: v, High: v} }

// Range returns [lo, hi], or the empty interval if lo > hi.
func Range(lo, hi int64) Interval {
	if lo > hi {
		return EmptyInterval()
	}
	return Interval{Low: lo, High: hi}
}

// IsFull reports whether i covers every representable value.
func (i Interval) IsFull() bool { return !i.Empty && i.Low == NegInf && i.High == PosInf }

// Contains reports whether v falls within i.
func (i Interval) Contains(v int64) bool { return !i.Empty && i.Low <= v && v <= i.High }

// Equal reports whether i and j denote the same set.
func (i Interval) Equal(j Interval) bool {
	if i.Empty || j.Empty {
		return i.Empty == j.Empty
	}
	return i.Low == j.Low && i.High == j.High
}

// Join is the dataflow lattice's combine-at-merge operator: the smallest
// interval containing both i and j (their convex hull), used wherever
// control flow joins — a block parameter's interval is the join of every
// predecessor's corresponding argument interval.
func (i Interval) Join(j Interval) Interval {
	if i.Empty {
		return j
	}
	if j.Empty {
		return i
	}
	return Interval{Low: minI64(i.Low, j.Low), High: maxI64(i.High, j.High)}
}

// Meet is the intersection of i and j. Analyze does not call it: a branch
// condition such as `x slt 10` does not narrow x's interval on either side.
func (i Interval) Meet(j Interval) Interval {
	if i.Empty || j.Empty {
		return EmptyInterval()
	}
	return Range(maxI64(i.Low, j.Low), minI64(i.High, j.High))
}

// Widen extrapolates from the old interval i to the newly computed next,
// jumping straight to the unbounded side whenever next has grown past i —
// the standard widening operator that forces interval dataflow over loops
// to converge in a bounded number of steps instead of incrementing by one
// element per iteration.
func (i Interval) Widen(next Interval) Interval {
	if i.Empty {
		return next
	}
	if next.Empty {
		return i
	}
	lo, hi := i.Low, i.High
	if next.Low < i.Low {
		lo = NegInf
	}
	if next.High > i.High {
		hi = PosInf
	}
	return Interval{Low: lo, High: hi}
}

// Add returns the interval of every possible a+b.
func (i Interval) Add(j Interval) Interval {
	if i.Empty || j.Empty {
		return EmptyInterval()
	}
	return Interval{Low: satAdd(i.Low, j.Low), High: satAdd(i.High, j.High)}
}

// Sub returns the interval of every possible a-b.
func (i Interval) Sub(j Interval) Interval {
	if i.Empty || j.Empty {
		return EmptyInterval()
	}
	return Interval{Low: satSub(i.Low, j.High), High: satSub(i.High, j.Low)}
}

// Mul returns the interval of every possible a*b, considering all four
// corner products since sign can flip the extremes.
func (i Interval) Mul(j Interval) Interval {
	if i.Empty || j.Empty {
		return EmptyInterval()
	}
	corners := [4]int64{
		satMul(i.Low, j.Low), satMul(i.Low, j.High),
		satMul(i.High, j.Low), satMul(i.High, j.High),
	}
	lo, hi := corners[0], corners[0]
	for _, c := range corners[1:] {
		lo, hi = minI64(lo, c), maxI64(hi, c)
	}
	return Interval{Low: lo, High: hi}
}

// Neg returns the interval of every possible -a.
func (i Interval) Neg() Interval {
	if i.Empty {
		return i
	}
	return Interval{Low: satNeg(i.High), High: satNeg(i.Low)}
}

func minI64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func maxI64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func satAdd(a, b int64) int64 {
	if a == NegInf || b == NegInf {
		return NegInf
	}
	if a == PosInf || b == PosInf {
		return PosInf
	}
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		if b > 0 {
			return PosInf
		}
		return NegInf
	}
	return sum
}

func satSub(a, b int64) int64 {
	if b == NegInf {
		if a == NegInf {
			return NegInf
		}
		return PosInf
	}
	if b == PosInf {
		if a == PosInf {
			return PosInf
		}
		return NegInf
	}
	return satAdd(a, -b)
}

func satNeg(a int64) int64 {
	if a == NegInf {
		return PosInf
	}
	if a == PosInf {
		return NegInf
	}
	return -a
}

func satMul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a == NegInf || a == PosInf || b == NegInf || b == PosInf {
		if (a < 0) != (b < 0) {
			return NegInf
		}
		return PosInf
	}
	hi, lo := mulOverflows(a, b)
	if hi {
		return PosInf
	}
	if lo {
		return NegInf
	}
	return a * b
}

// mulOverflows reports, for finite a and b, whether a*b overflows past
// PosInf (hi) or under NegInf (lo).
func mulOverflows(a, b int64) (hi, lo bool) {
	product := a * b
	if a != 0 && product/a != b {
		if (a < 0) == (b < 0) {
			return true, false
		}
		return false, true
	}
	return false, false
}
