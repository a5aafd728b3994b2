package arm

import (
	"github.com/gba-core/gba/hardware/cpu/registers"
	"github.com/gba-core/gba/hardware/cpu/shifter"
)

// operand2 decodes a data-processing instruction's second operand: either
// an 8-bit immediate rotated right by twice a 4-bit amount, or a register
// optionally shifted by an immediate or by the bottom byte of another
// register.
func operand2(instr uint32, regs *registers.File) (value uint32, carryOut bool) {
	carryIn := regs.CPSR().C()
	if instr&(1<<25) != 0 {
		imm := instr & 0xFF
		rot := (instr >> 8) & 0xF * 2
		if rot == 0 {
			return imm, carryIn
		}
		return shifter.Shift(imm, shifter.ROR, rot, true, carryIn)
	}

	rm := regs.R(int(instr & 0xF))
	kind := shifter.Type((instr >> 5) & 0x3)
	if instr&(1<<4) != 0 {
		// Register-specified shift amount: only the bottom byte of Rs is
		// used. A zero amount here always leaves value and carry alone,
		// which shifter.Shift already implements via its immediate flag.
		rs := regs.R(int((instr >> 8) & 0xF))
		amount := rs & 0xFF
		if instr&0xF == 0xF {
			rm += 4 // Rm == PC read during a register-shifted operand sees +12, not +8.
		}
		return shifter.Shift(rm, kind, amount, false, carryIn)
	}

	amount := (instr >> 7) & 0x1F
	return shifter.Shift(rm, kind, amount, true, carryIn)
}

// offset12 decodes a single-data-transfer or block-adjacent 12-bit
// immediate offset, or a shifted-register offset when instr's bit 25 is
// set, applying the U bit's sign.
func offset12(instr uint32, regs *registers.File) uint32 {
	var mag uint32
	if instr&(1<<25) != 0 {
		rm := regs.R(int(instr & 0xF))
		kind := shifter.Type((instr >> 5) & 0x3)
		amount := (instr >> 7) & 0x1F
		mag, _ = shifter.Shift(rm, kind, amount, true, regs.CPSR().C())
	} else {
		mag = instr & 0xFFF
	}
	if instr&(1<<23) == 0 {
		return uint32(-int32(mag))
	}
	return mag
}

// offset8 decodes a half-word/signed-byte transfer's 8-bit split immediate
// offset (bits 11-8 : bits 3-0) or register offset, applying the U bit.
func offset8(instr uint32, regs *registers.File) uint32 {
	var mag uint32
	if instr&(1<<22) != 0 {
		mag = (instr>>4)&0xF0 | instr&0xF
	} else {
		mag = regs.R(int(instr & 0xF))
	}
	if instr&(1<<23) == 0 {
		return uint32(-int32(mag))
	}
	return mag
}
