package arm

import "github.com/gba-core/gba/hardware/cpu/registers"

// isMultiply reports whether instr is MUL/MLA (bits 27-22 zero, bits 7-4
// == 1001).
func isMultiply(instr uint32) bool {
	return (instr>>22)&0x3F == 0 && (instr>>4)&0xF == 0x9
}

// isMultiplyLong reports whether instr is one of the four long-multiply
// forms (bits 27-23 == 00001, bits 7-4 == 1001).
func isMultiplyLong(instr uint32) bool {
	return (instr>>23)&0x1F == 0x1 && (instr>>4)&0xF == 0x9
}

// multiply executes MUL and MLA: Rd = Rm * Rs (+ Rn if accumulate is set).
// The ARM7TDMI leaves C undefined here; this implementation leaves it
// untouched, matching the reference manual's "unpredictable" wording as
// "don't change it" rather than inventing a value.
func multiply(instr uint32, regs *registers.File) {
	rd := int((instr >> 16) & 0xF)
	rn := int((instr >> 12) & 0xF)
	rs := int((instr >> 8) & 0xF)
	rm := int(instr & 0xF)
	sBit := instr&(1<<20) != 0
	accumulate := instr&(1<<21) != 0

	result := regs.R(rm) * regs.R(rs)
	if accumulate {
		result += regs.R(rn)
	}
	regs.SetR(rd, result)

	if sBit {
		regs.SetCPSR(regs.CPSR().WithNZ(result))
	}
}

// multiplyLong executes UMULL/UMLAL/SMULL/SMLAL: a 64-bit product (or
// product-plus-accumulate) split across RdHi:RdLo.
func multiplyLong(instr uint32, regs *registers.File) {
	rdHi := int((instr >> 16) & 0xF)
	rdLo := int((instr >> 12) & 0xF)
	rs := int((instr >> 8) & 0xF)
	rm := int(instr & 0xF)
	signed := instr&(1<<22) != 0
	accumulate := instr&(1<<21) != 0
	sBit := instr&(1<<20) != 0

	var result uint64
	if signed {
		result = uint64(int64(int32(regs.R(rm))) * int64(int32(regs.R(rs))))
	} else {
		result = uint64(regs.R(rm)) * uint64(regs.R(rs))
	}
	if accumulate {
		result += uint64(regs.R(rdHi))<<32 | uint64(regs.R(rdLo))
	}

	lo, hi := uint32(result), uint32(result>>32)
	regs.SetR(rdLo, lo)
	regs.SetR(rdHi, hi)

	if sBit {
		cpsr := regs.CPSR().WithZ(result == 0).WithN(hi&0x8000_0000 != 0)
		regs.SetCPSR(cpsr)
	}
}
