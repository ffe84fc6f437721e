package riscv

// F/D-extension funct7 selectors. The low two bits of funct7 are the "fmt"
// field, which distinguishes single (00) from double (01) precision for
// most of these.
const (
	funct7FaddS = 0b0000000
	funct7FsubS = 0b0000100
	funct7FmulS = 0b0001000
	funct7FdivS = 0b0001100
	funct7FsqrtS = 0b0101100
	funct7FsgnjS = 0b0010000
	funct7FminmaxS = 0b0010100
	funct7FcmpS  = 0b1010000
	funct7Fcvt_W_S  = 0b1100000
	funct7Fcvt_S_W  = 0b1101000
	funct7Fmv_X_W   = 0b1110000
	funct7Fmv_W_X   = 0b1111000
	funct7FclassS   = 0b1110000

	funct7FaddD = 0b0000001
	funct7FsubD = 0b0000101
	funct7FmulD = 0b0001001
	funct7FdivD = 0b0001101
	funct7FsqrtD = 0b0101101
	funct7FsgnjD = 0b0010001
	funct7FminmaxD = 0b0010101
	funct7FcmpD  = 0b1010001
	funct7Fcvt_W_D  = 0b1100001
	funct7Fcvt_D_W  = 0b1101001
	funct7Fcvt_S_D  = 0b0100000
	funct7Fcvt_D_S  = 0b0100001
	funct7Fmv_X_D   = 0b1110001
	funct7Fmv_D_X   = 0b1111001

	rmRNE = 0b000 // round to nearest, ties to even (the only rounding mode this encoder exposes)
)

func FaddS(rd, rs1, rs2 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), rmRNE, uint32(rs1), uint32(rs2), funct7FaddS)
}
func FsubS(rd, rs1, rs2 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), rmRNE, uint32(rs1), uint32(rs2), funct7FsubS)
}
func FmulS(rd, rs1, rs2 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), rmRNE, uint32(rs1), uint32(rs2), funct7FmulS)
}
func FdivS(rd, rs1, rs2 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), rmRNE, uint32(rs1), uint32(rs2), funct7FdivS)
}
func FsqrtS(rd, rs1 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), rmRNE, uint32(rs1), 0, funct7FsqrtS)
}
func FaddD(rd, rs1, rs2 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), rmRNE, uint32(rs1), uint32(rs2), funct7FaddD)
}
func FsubD(rd, rs1, rs2 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), rmRNE, uint32(rs1), uint32(rs2), funct7FsubD)
}
func FmulD(rd, rs1, rs2 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), rmRNE, uint32(rs1), uint32(rs2), funct7FmulD)
}
func FdivD(rd, rs1, rs2 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), rmRNE, uint32(rs1), uint32(rs2), funct7FdivD)
}
func FsqrtD(rd, rs1 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), rmRNE, uint32(rs1), 0, funct7FsqrtD)
}

// Fsgnj-family selects sign-injection; funct3 distinguishes J / JN / JX.
func FsgnjS(rd, rs1, rs2 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), 0b000, uint32(rs1), uint32(rs2), funct7FsgnjS)
}
func FsgnjnS(rd, rs1, rs2 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), 0b001, uint32(rs1), uint32(rs2), funct7FsgnjS)
}
func FsgnjxS(rd, rs1, rs2 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), 0b010, uint32(rs1), uint32(rs2), funct7FsgnjS)
}

// Fmin/Fmax select via funct3 on the fminmax funct7.
func FminS(rd, rs1, rs2 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), 0b000, uint32(rs1), uint32(rs2), funct7FminmaxS)
}
func FmaxS(rd, rs1, rs2 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), 0b001, uint32(rs1), uint32(rs2), funct7FminmaxS)
}
func FminD(rd, rs1, rs2 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), 0b000, uint32(rs1), uint32(rs2), funct7FminmaxD)
}
func FmaxD(rd, rs1, rs2 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), 0b001, uint32(rs1), uint32(rs2), funct7FminmaxD)
}

// Compares produce an integer result in rd (funct3 selects eq/lt/le).
func FeqS(rd Reg, rs1, rs2 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), 0b010, uint32(rs1), uint32(rs2), funct7FcmpS)
}
func FltS(rd Reg, rs1, rs2 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), 0b001, uint32(rs1), uint32(rs2), funct7FcmpS)
}
func FleS(rd Reg, rs1, rs2 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), 0b000, uint32(rs1), uint32(rs2), funct7FcmpS)
}
func FeqD(rd Reg, rs1, rs2 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), 0b010, uint32(rs1), uint32(rs2), funct7FcmpD)
}
func FltD(rd Reg, rs1, rs2 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), 0b001, uint32(rs1), uint32(rs2), funct7FcmpD)
}
func FleD(rd Reg, rs1, rs2 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), 0b000, uint32(rs1), uint32(rs2), funct7FcmpD)
}

// Conversions. rs2 in the funct7's rs2 slot selects the integer width/sign
// (0=w, 1=wu for 32-bit; 2=l, 3=lu for 64-bit), per the ISA manual table.
const (
	cvtW  = 0b00000
	cvtWU = 0b00001
	cvtL  = 0b00010
	cvtLU = 0b00011
)

func FcvtWS(rd Reg, rs1 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), rmRNE, uint32(rs1), cvtW, funct7Fcvt_W_S)
}
func FcvtWuS(rd Reg, rs1 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), rmRNE, uint32(rs1), cvtWU, funct7Fcvt_W_S)
}
func FcvtSW(rd FReg, rs1 Reg) uint32 {
	return EncodeFPR(opFP, uint32(rd), rmRNE, uint32(rs1), cvtW, funct7Fcvt_S_W)
}
func FcvtSWu(rd FReg, rs1 Reg) uint32 {
	return EncodeFPR(opFP, uint32(rd), rmRNE, uint32(rs1), cvtWU, funct7Fcvt_S_W)
}
func FcvtLS(rd Reg, rs1 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), rmRNE, uint32(rs1), cvtL, funct7Fcvt_W_S)
}
func FcvtSL(rd FReg, rs1 Reg) uint32 {
	return EncodeFPR(opFP, uint32(rd), rmRNE, uint32(rs1), cvtL, funct7Fcvt_S_W)
}
func FcvtWD(rd Reg, rs1 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), rmRNE, uint32(rs1), cvtW, funct7Fcvt_W_D)
}
func FcvtDW(rd FReg, rs1 Reg) uint32 {
	return EncodeFPR(opFP, uint32(rd), rmRNE, uint32(rs1), cvtW, funct7Fcvt_D_W)
}
func FcvtLD(rd Reg, rs1 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), rmRNE, uint32(rs1), cvtL, funct7Fcvt_W_D)
}
func FcvtDL(rd FReg, rs1 Reg) uint32 {
	return EncodeFPR(opFP, uint32(rd), rmRNE, uint32(rs1), cvtL, funct7Fcvt_D_W)
}
func FcvtSD(rd, rs1 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), rmRNE, uint32(rs1), 0b00001, funct7Fcvt_S_D)
}
func FcvtDS(rd, rs1 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), rmRNE, uint32(rs1), 0, funct7Fcvt_D_S)
}

// Register-file moves and classification (funct3 0 vs 1 distinguishes
// fmv.x.w from fclass.s at the same funct7).
func FmvXW(rd Reg, rs1 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), 0b000, uint32(rs1), 0, funct7Fmv_X_W)
}
func FclassS(rd Reg, rs1 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), 0b001, uint32(rs1), 0, funct7FclassS)
}
func FmvWX(rd FReg, rs1 Reg) uint32 {
	return EncodeFPR(opFP, uint32(rd), 0b000, uint32(rs1), 0, funct7Fmv_W_X)
}
func FmvXD(rd Reg, rs1 FReg) uint32 {
	return EncodeFPR(opFP, uint32(rd), 0b000, uint32(rs1), 0, funct7Fmv_X_D)
}
func FmvDX(rd FReg, rs1 Reg) uint32 {
	return EncodeFPR(opFP, uint32(rd), 0b000, uint32(rs1), 0, funct7Fmv_D_X)
}

// Loads/stores (I-type / S-type on the dedicated FP opcodes).
func Flw(rd FReg, rs1 Reg, offset int32) uint32 {
	return field(uint32(offset), 12)<<20 | rs1.check()<<15 | 0b010<<12 | rd.check()<<7 | field(opLoadFP, 7)
}
func Fld(rd FReg, rs1 Reg, offset int32) uint32 {
	return field(uint32(offset), 12)<<20 | rs1.check()<<15 | 0b011<<12 | rd.check()<<7 | field(opLoadFP, 7)
}
func Fsw(rs1 Reg, rs2 FReg, offset int32) uint32 {
	u := uint32(offset)
	return field(u>>5, 7)<<25 | rs2.check()<<20 | rs1.check()<<15 | 0b010<<12 | field(u, 5)<<7 | field(opStoreFP, 7)
}
func Fsd(rs1 Reg, rs2 FReg, offset int32) uint32 {
	u := uint32(offset)
	return field(u>>5, 7)<<25 | rs2.check()<<20 | rs1.check()<<15 | 0b011<<12 | field(u, 5)<<7 | field(opStoreFP, 7)
}

// Fmadd/Fmsub/Fnmsub/Fnmadd: fused multiply-add family (R4-type), with
// funct2 selecting single (0) vs double (1) precision.
func FmaddS(rd, rs1, rs2, rs3 FReg) uint32 { return EncodeR4(opMadd, Reg(rd), rmRNE, rs1, rs2, rs3, 0) }
func FmsubS(rd, rs1, rs2, rs3 FReg) uint32 { return EncodeR4(opMsub, Reg(rd), rmRNE, rs1, rs2, rs3, 0) }
func FnmsubS(rd, rs1, rs2, rs3 FReg) uint32 {
	return EncodeR4(opNmsub, Reg(rd), rmRNE, rs1, rs2, rs3, 0)
}
func FnmaddS(rd, rs1, rs2, rs3 FReg) uint32 {
	return EncodeR4(opNmadd, Reg(rd), rmRNE, rs1, rs2, rs3, 0)
}
func FmaddD(rd, rs1, rs2, rs3 FReg) uint32 { return EncodeR4(opMadd, Reg(rd), rmRNE, rs1, rs2, rs3, 1) }
func FmsubD(rd, rs1, rs2, rs3 FReg) uint32 { return EncodeR4(opMsub, Reg(rd), rmRNE, rs1, rs2, rs3, 1) }
func FnmsubD(rd, rs1, rs2, rs3 FReg) uint32 {
	return EncodeR4(opNmsub, Reg(rd), rmRNE, rs1, rs2, rs3, 1)
}
func FnmaddD(rd, rs1, rs2, rs3 FReg) uint32 {
	return EncodeR4(opNmadd, Reg(rd), rmRNE, rs1, rs2, rs3, 1)
}
