package riscv

// Funct3 values shared by OP/OP-IMM/branch/load/store families.
const (
	f3Add  = 0b000
	f3Sll  = 0b001
	f3Slt  = 0b010
	f3Sltu = 0b011
	f3Xor  = 0b100
	f3Srl  = 0b101 // also Sra, distinguished by funct7
	f3Or   = 0b110
	f3And  = 0b111

	f3Beq  = 0b000
	f3Bne  = 0b001
	f3Blt  = 0b100
	f3Bge  = 0b101
	f3Bltu = 0b110
	f3Bgeu = 0b111

	f3LB  = 0b000
	f3LH  = 0b001
	f3LW  = 0b010
	f3LD  = 0b011
	f3LBU = 0b100
	f3LHU = 0b101
	f3LWU = 0b110

	f3Jalr = 0b000
)

const (
	funct7Base   = 0b0000000
	funct7AltOp  = 0b0100000 // sub, sra, sraw
	funct7Mulext = 0b0000001 // M-extension (mul/div/rem family)
)

// R-type base integer ops.
func Add(rd Reg, rs1, rs2 Reg) uint32  { return EncodeR(opOp, rd, f3Add, rs1, rs2, funct7Base) }
func Sub(rd Reg, rs1, rs2 Reg) uint32  { return EncodeR(opOp, rd, f3Add, rs1, rs2, funct7AltOp) }
func Sll(rd Reg, rs1, rs2 Reg) uint32  { return EncodeR(opOp, rd, f3Sll, rs1, rs2, funct7Base) }
func Slt(rd Reg, rs1, rs2 Reg) uint32  { return EncodeR(opOp, rd, f3Slt, rs1, rs2, funct7Base) }
func Sltu(rd Reg, rs1, rs2 Reg) uint32 { return EncodeR(opOp, rd, f3Sltu, rs1, rs2, funct7Base) }
func Xor(rd Reg, rs1, rs2 Reg) uint32  { return EncodeR(opOp, rd, f3Xor, rs1, rs2, funct7Base) }
func Srl(rd Reg, rs1, rs2 Reg) uint32  { return EncodeR(opOp, rd, f3Srl, rs1, rs2, funct7Base) }
func Sra(rd Reg, rs1, rs2 Reg) uint32  { return EncodeR(opOp, rd, f3Srl, rs1, rs2, funct7AltOp) }
func Or(rd Reg, rs1, rs2 Reg) uint32   { return EncodeR(opOp, rd, f3Or, rs1, rs2, funct7Base) }
func And(rd Reg, rs1, rs2 Reg) uint32  { return EncodeR(opOp, rd, f3And, rs1, rs2, funct7Base) }

// RV64 word (32-bit result) variants.
func Addw(rd Reg, rs1, rs2 Reg) uint32 { return EncodeR(opOp32, rd, f3Add, rs1, rs2, funct7Base) }
func Subw(rd Reg, rs1, rs2 Reg) uint32 { return EncodeR(opOp32, rd, f3Add, rs1, rs2, funct7AltOp) }
func Sllw(rd Reg, rs1, rs2 Reg) uint32 { return EncodeR(opOp32, rd, f3Sll, rs1, rs2, funct7Base) }
func Srlw(rd Reg, rs1, rs2 Reg) uint32 { return EncodeR(opOp32, rd, f3Srl, rs1, rs2, funct7Base) }
func Sraw(rd Reg, rs1, rs2 Reg) uint32 { return EncodeR(opOp32, rd, f3Srl, rs1, rs2, funct7AltOp) }

// M-extension: multiply/divide/remainder.
const (
	f3Mul    = 0b000
	f3Mulh   = 0b001
	f3Mulhsu = 0b010
	f3Mulhu  = 0b011
	f3Div    = 0b100
	f3Divu   = 0b101
	f3Rem    = 0b110
	f3Remu   = 0b111
)

func Mul(rd Reg, rs1, rs2 Reg) uint32    { return EncodeR(opOp, rd, f3Mul, rs1, rs2, funct7Mulext) }
func Mulh(rd Reg, rs1, rs2 Reg) uint32   { return EncodeR(opOp, rd, f3Mulh, rs1, rs2, funct7Mulext) }
func Mulhsu(rd Reg, rs1, rs2 Reg) uint32 { return EncodeR(opOp, rd, f3Mulhsu, rs1, rs2, funct7Mulext) }
func Mulhu(rd Reg, rs1, rs2 Reg) uint32  { return EncodeR(opOp, rd, f3Mulhu, rs1, rs2, funct7Mulext) }
func Div(rd Reg, rs1, rs2 Reg) uint32    { return EncodeR(opOp, rd, f3Div, rs1, rs2, funct7Mulext) }
func Divu(rd Reg, rs1, rs2 Reg) uint32   { return EncodeR(opOp, rd, f3Divu, rs1, rs2, funct7Mulext) }
func Rem(rd Reg, rs1, rs2 Reg) uint32    { return EncodeR(opOp, rd, f3Rem, rs1, rs2, funct7Mulext) }
func Remu(rd Reg, rs1, rs2 Reg) uint32   { return EncodeR(opOp, rd, f3Remu, rs1, rs2, funct7Mulext) }
func Mulw(rd Reg, rs1, rs2 Reg) uint32   { return EncodeR(opOp32, rd, f3Mul, rs1, rs2, funct7Mulext) }
func Divw(rd Reg, rs1, rs2 Reg) uint32   { return EncodeR(opOp32, rd, f3Div, rs1, rs2, funct7Mulext) }
func Divuw(rd Reg, rs1, rs2 Reg) uint32  { return EncodeR(opOp32, rd, f3Divu, rs1, rs2, funct7Mulext) }
func Remw(rd Reg, rs1, rs2 Reg) uint32   { return EncodeR(opOp32, rd, f3Rem, rs1, rs2, funct7Mulext) }
func Remuw(rd Reg, rs1, rs2 Reg) uint32  { return EncodeR(opOp32, rd, f3Remu, rs1, rs2, funct7Mulext) }

// I-type base integer-immediate ops.
func Addi(rd, rs1 Reg, imm int32) uint32  { return EncodeI(opImm, rd, f3Add, rs1, imm) }
func Slti(rd, rs1 Reg, imm int32) uint32  { return EncodeI(opImm, rd, f3Slt, rs1, imm) }
func Sltiu(rd, rs1 Reg, imm int32) uint32 { return EncodeI(opImm, rd, f3Sltu, rs1, imm) }
func Xori(rd, rs1 Reg, imm int32) uint32  { return EncodeI(opImm, rd, f3Xor, rs1, imm) }
func Ori(rd, rs1 Reg, imm int32) uint32   { return EncodeI(opImm, rd, f3Or, rs1, imm) }
func Andi(rd, rs1 Reg, imm int32) uint32  { return EncodeI(opImm, rd, f3And, rs1, imm) }
func Addiw(rd, rs1 Reg, imm int32) uint32 { return EncodeI(opImm32, rd, f3Add, rs1, imm) }

// Shift-immediates: rv64 full-width (6-bit shamt) and the 32-bit word
// variants (5-bit shamt, on the OP-IMM-32 opcode).
func Slli(rd, rs1 Reg, shamt uint32) uint32 {
	return EncodeIShift64(opImm, rd, f3Sll, rs1, shamt, funct7Base>>1)
}
func Srli(rd, rs1 Reg, shamt uint32) uint32 {
	return EncodeIShift64(opImm, rd, f3Srl, rs1, shamt, funct7Base>>1)
}
func Srai(rd, rs1 Reg, shamt uint32) uint32 {
	return EncodeIShift64(opImm, rd, f3Srl, rs1, shamt, funct7AltOp>>1)
}
func Slliw(rd, rs1 Reg, shamt uint32) uint32 {
	return EncodeIShift32(opImm32, rd, f3Sll, rs1, shamt, funct7Base)
}
func Srliw(rd, rs1 Reg, shamt uint32) uint32 {
	return EncodeIShift32(opImm32, rd, f3Srl, rs1, shamt, funct7Base)
}
func Sraiw(rd, rs1 Reg, shamt uint32) uint32 {
	return EncodeIShift32(opImm32, rd, f3Srl, rs1, shamt, funct7AltOp)
}

// Loads (I-type) and stores (S-type).
func Lb(rd, rs1 Reg, offset int32) uint32  { return EncodeI(opLoad, rd, f3LB, rs1, offset) }
func Lh(rd, rs1 Reg, offset int32) uint32  { return EncodeI(opLoad, rd, f3LH, rs1, offset) }
func Lw(rd, rs1 Reg, offset int32) uint32  { return EncodeI(opLoad, rd, f3LW, rs1, offset) }
func Ld(rd, rs1 Reg, offset int32) uint32  { return EncodeI(opLoad, rd, f3LD, rs1, offset) }
func Lbu(rd, rs1 Reg, offset int32) uint32 { return EncodeI(opLoad, rd, f3LBU, rs1, offset) }
func Lhu(rd, rs1 Reg, offset int32) uint32 { return EncodeI(opLoad, rd, f3LHU, rs1, offset) }
func Lwu(rd, rs1 Reg, offset int32) uint32 { return EncodeI(opLoad, rd, f3LWU, rs1, offset) }

func Sb(rs1, rs2 Reg, offset int32) uint32 { return EncodeS(opStore, f3LB, rs1, rs2, offset) }
func Sh(rs1, rs2 Reg, offset int32) uint32 { return EncodeS(opStore, f3LH, rs1, rs2, offset) }
func Sw(rs1, rs2 Reg, offset int32) uint32 { return EncodeS(opStore, f3LW, rs1, rs2, offset) }
func Sd(rs1, rs2 Reg, offset int32) uint32 { return EncodeS(opStore, f3LD, rs1, rs2, offset) }

// Branches (B-type). disp is the byte displacement from the branch
// instruction to its target.
func Beq(rs1, rs2 Reg, disp int32) uint32  { return EncodeB(opBranch, f3Beq, rs1, rs2, disp) }
func Bne(rs1, rs2 Reg, disp int32) uint32  { return EncodeB(opBranch, f3Bne, rs1, rs2, disp) }
func Blt(rs1, rs2 Reg, disp int32) uint32  { return EncodeB(opBranch, f3Blt, rs1, rs2, disp) }
func Bge(rs1, rs2 Reg, disp int32) uint32  { return EncodeB(opBranch, f3Bge, rs1, rs2, disp) }
func Bltu(rs1, rs2 Reg, disp int32) uint32 { return EncodeB(opBranch, f3Bltu, rs1, rs2, disp) }
func Bgeu(rs1, rs2 Reg, disp int32) uint32 { return EncodeB(opBranch, f3Bgeu, rs1, rs2, disp) }

// Upper-immediate (U-type) and jumps (J/I-type).
func Lui(rd Reg, imm20 uint32) uint32   { return EncodeU(opLui, rd, imm20) }
func Auipc(rd Reg, imm20 uint32) uint32 { return EncodeU(opAuipc, rd, imm20) }
func Jal(rd Reg, disp int32) uint32     { return EncodeJ(opJal, rd, disp) }
func Jalr(rd, rs1 Reg, offset int32) uint32 {
	return EncodeI(opJalr, rd, f3Jalr, rs1, offset)
}

// System instructions and memory fences.
func Ecall() uint32  { return EncodeI(opSystem, Zero, 0, Zero, 0) }
func Ebreak() uint32 { return EncodeI(opSystem, Zero, 0, Zero, 1) }
func Fence(pred, succ uint32) uint32 { return EncodeFence(pred, succ, 0) }
func FenceI() uint32                 { return EncodeI(opMiscMem, Zero, 0b001, Zero, 0) }
