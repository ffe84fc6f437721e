package riscv

import "encoding/binary"

// MachBuffer accumulates encoded instruction words into a little-endian
// byte stream ready to be written out as raw machine code.
type MachBuffer struct {
	data []byte
}

// NewMachBuffer returns an empty buffer.
func NewMachBuffer() *MachBuffer { return &MachBuffer{} }

// PutU32LE appends a single 32-bit instruction word.
func (b *MachBuffer) PutU32LE(word uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], word)
	b.data = append(b.data, tmp[:]...)
}

// PutData appends a run of instruction words in order.
func (b *MachBuffer) PutData(words []uint32) {
	for _, w := range words {
		b.PutU32LE(w)
	}
}

// Len reports the number of bytes emitted so far.
func (b *MachBuffer) Len() int { return len(b.data) }

// Bytes returns the accumulated machine code.
func (b *MachBuffer) Bytes() []byte { return b.data }
