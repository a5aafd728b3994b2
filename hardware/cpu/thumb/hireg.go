package thumb

import (
	"github.com/gba-core/gba/hardware/cpu/registers"
	"github.com/gba-core/gba/hardware/cpu/shifter"
)

// execHiRegisterOps implements format 5: ADD/CMP/MOV that can reach r8-r15,
// and branch-exchange. Returns true if it wrote r15.
func execHiRegisterOps(opcode uint16, regs *registers.File) bool {
	op := (opcode & 0x0300) >> 8
	h1 := opcode&0x0080 != 0
	h2 := opcode&0x0040 != 0
	rs := int((opcode & 0x0038) >> 3)
	rd := int(opcode & 0x0007)
	if h2 {
		rs += 8
	}
	if h1 {
		rd += 8
	}

	switch op {
	case 0x0: // ADD
		result := regs.R(rd) + regs.R(rs)
		regs.SetR(rd, result)
		if rd == 15 {
			regs.SetPC(result &^ 1)
			return true
		}
	case 0x1: // CMP, updates flags like the 32-bit CMP
		result, carry, overflow := shifter.Sub(regs.R(rd), regs.R(rs))
		regs.SetCPSR(regs.CPSR().WithNZ(result).WithC(carry).WithV(overflow))
	case 0x2: // MOV
		value := regs.R(rs)
		regs.SetR(rd, value)
		if rd == 15 {
			regs.SetPC(value &^ 1)
			return true
		}
	default: // BX
		target := regs.R(rs)
		thumb := target&1 != 0
		regs.SetCPSR(regs.CPSR().WithT(thumb))
		if thumb {
			regs.SetPC(target &^ 1)
		} else {
			regs.SetPC(target &^ 3)
		}
		return true
	}
	return false
}
