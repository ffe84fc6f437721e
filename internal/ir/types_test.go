package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScalarTypeBits(t *testing.T) {
	assert.Equal(t, 8, I8.Bits())
	assert.Equal(t, 32, I32.Bits())
	assert.Equal(t, 64, F64.Bits())
	assert.Equal(t, 1, Bool.Bits())
}

func TestVectorOfRoundTrip(t *testing.T) {
	v := VectorOf(I32, 4)
	assert.True(t, v.IsVector())
	assert.False(t, v.IsDynamicVector())
	assert.Equal(t, I32, v.LaneType())
	assert.Equal(t, 4, v.LaneCount())
	assert.Equal(t, 128, v.Bits())
}

func TestDynamicVectorOf(t *testing.T) {
	v := DynamicVectorOf(F32)
	assert.True(t, v.IsDynamicVector())
	assert.False(t, v.IsVector())
	assert.Equal(t, F32, v.LaneType())
}

func TestVectorOfRejectsNonPowerOfTwo(t *testing.T) {
	assert.Panics(t, func() { VectorOf(I8, 3) })
}

func TestAsTruthy(t *testing.T) {
	assert.Equal(t, Bool, I32.AsTruthy())
	assert.Equal(t, VectorOf(Bool, 4), VectorOf(I32, 4).AsTruthy())
}

func TestHalfAndDoubleWidth(t *testing.T) {
	half, ok := I32.HalfWidth()
	assert.True(t, ok)
	assert.Equal(t, I16, half)

	double, ok := I32.DoubleWidth()
	assert.True(t, ok)
	assert.Equal(t, I64, double)

	_, ok = I128.DoubleWidth()
	assert.False(t, ok)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "i32", I32.String())
	assert.Equal(t, "i32x4", VectorOf(I32, 4).String())
	assert.Equal(t, "f32xN", DynamicVectorOf(F32).String())
}
