package arm

import (
	"github.com/gba-core/gba/hardware/cpu/registers"
	"github.com/gba-core/gba/hardware/cpu/shifter"
)

// isPSRTransfer reports whether instr is MRS/MSR/MSRF rather than a
// data-processing opcode that happens to share their top-level bit shape:
// the four opcodes that discard their result (TST/TEQ/CMP/CMN, bits 24-23
// of 0b10) are only really data processing when S is set: without S the
// result goes nowhere, so the architecture repurposes the encoding for PSR
// transfer instead.
func isPSRTransfer(instr uint32) bool {
	return (instr>>23)&0x3 == 0x2 && instr&(1<<20) == 0
}

// psrTransfer executes MRS, MSR and MSR-flags-only.
func psrTransfer(instr uint32, regs *registers.File) {
	useSPSR := instr&(1<<22) != 0
	if instr&(1<<21) == 0 {
		// MRS: transfer PSR to a register.
		rd := int((instr >> 12) & 0xF)
		if useSPSR {
			regs.SetR(rd, uint32(regs.SPSR()))
		} else {
			regs.SetR(rd, uint32(regs.CPSR()))
		}
		return
	}

	// MSR / MSR-flags-only: transfer a value into the selected byte fields
	// of CPSR or SPSR, as chosen by the 4-bit field mask at bits 19-16
	// (f: bits 31-24, s: 23-16, x: 15-8, c: 7-0).
	var src uint32
	if instr&(1<<25) != 0 {
		imm := instr & 0xFF
		rot := (instr >> 8) & 0xF * 2
		if rot == 0 {
			src = imm
		} else {
			src, _ = shifter.Shift(imm, shifter.ROR, rot, true, false)
		}
	} else {
		src = regs.R(int(instr & 0xF))
	}

	var mask uint32
	if instr&(1<<19) != 0 {
		mask |= 0xFF00_0000
	}
	if instr&(1<<18) != 0 {
		mask |= 0x00FF_0000
	}
	if instr&(1<<17) != 0 {
		mask |= 0x0000_FF00
	}
	if instr&(1<<16) != 0 {
		mask |= 0x0000_00FF
	}

	if useSPSR {
		old := uint32(regs.SPSR())
		regs.SetSPSR(registers.Status((old &^ mask) | (src & mask)))
		return
	}
	old := uint32(regs.CPSR())
	regs.SetCPSR(registers.Status((old &^ mask) | (src & mask)))
}
