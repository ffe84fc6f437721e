package riscv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMvExpandsToAddiZeroOffset(t *testing.T) {
	assert.Equal(t, Addi(A0, A1, 0), Mv(A0, A1))
}

func TestNopIsAddiZeroZeroZero(t *testing.T) {
	assert.Equal(t, Addi(Zero, Zero, 0), Nop())
}

func TestRetIsJalrZeroRaZero(t *testing.T) {
	assert.Equal(t, Jalr(Zero, Ra, 0), Ret())
}

func TestUdfIsAllZeroBits(t *testing.T) {
	assert.Equal(t, uint32(0), Udf())
}

func TestLiSmallImmediateIsSingleAddi(t *testing.T) {
	words := Li(A0, 42)
	assert.Equal(t, []uint32{Addi(A0, Zero, 42)}, words)
}

func TestLiNegativeSmallImmediateIsSingleAddi(t *testing.T) {
	words := Li(A0, -1)
	assert.Equal(t, []uint32{Addi(A0, Zero, -1)}, words)
}

func TestLiMidRangeImmediateUsesLuiAddiPair(t *testing.T) {
	words := Li(A0, 100000)
	assert.Len(t, words, 2)
	assert.Equal(t, uint32(opLui), words[0]&0x7F)
	assert.Equal(t, uint32(opImm), words[1]&0x7F)
}

func TestLiWideImmediateTerminatesAndReconstructsValue(t *testing.T) {
	words := Li(A0, 0x123456789ABCDEF)
	assert.NotEmpty(t, words)
	// Simulate execution: last op is always slli or addi building on rd.
	var acc int64
	for _, w := range words {
		opcode := w & 0x7F
		rs1 := Reg((w >> 15) & 0x1F)
		switch opcode {
		case opImm:
			funct3 := (w >> 12) & 0x7
			imm := int32(w) >> 20
			if funct3 == f3Sll {
				shamt := (w >> 20) & 0x3F
				acc = acc << shamt
			} else if rs1 == Zero {
				acc = int64(imm)
			} else {
				acc = acc + int64(imm)
			}
		case opLui:
			acc = int64(int32(w&0xFFFFF000))
		}
	}
	assert.Equal(t, int64(0x123456789ABCDEF), acc)
}

func TestCallDirectExpandsToJal(t *testing.T) {
	word := CallDirect(0x1000)
	assert.Equal(t, uint32(opJal), word&0x7F)
	assert.Equal(t, Jal(Ra, 0x1000), word)
}

func TestCallIndirectExpandsToJalr(t *testing.T) {
	assert.Equal(t, Jalr(Ra, T0, 0), CallIndirect(T0))
}
