package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"ssacore/internal/ir"
)

func TestPatternConstructors(t *testing.T) {
	v := V("x")
	assert.Equal(t, "x", v.Var)

	c := C(7)
	assert.True(t, c.IsConst)
	assert.Equal(t, int64(7), c.Const)

	op := Op(ir.OpIadd, v, c)
	assert.Equal(t, ir.OpIadd, op.Op)
	assert.Len(t, op.Children, 2)
	assert.False(t, op.HasCond)

	cond := CondOp(ir.OpIcmp, int64(ir.IntEqual), v, v)
	assert.True(t, cond.HasCond)
	assert.Equal(t, int64(ir.IntEqual), cond.Cond)
}
