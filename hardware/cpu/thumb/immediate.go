package thumb

import (
	"github.com/gba-core/gba/hardware/cpu/registers"
	"github.com/gba-core/gba/hardware/cpu/shifter"
)

// execMovCmpAddSubImm implements format 3: MOV/CMP/ADD/SUB Rd, #Offset8.
// MOV only sets N and Z (C and V untouched); CMP/ADD/SUB set all four.
func execMovCmpAddSubImm(opcode uint16, regs *registers.File) {
	op := (opcode & 0x1800) >> 11
	rd := int((opcode & 0x0700) >> 8)
	imm := uint32(opcode & 0x00FF)

	switch op {
	case 0: // MOV
		regs.SetR(rd, imm)
		regs.SetCPSR(regs.CPSR().WithNZ(imm))
	case 1: // CMP
		result, carry, overflow := shifter.Sub(regs.R(rd), imm)
		regs.SetCPSR(regs.CPSR().WithNZ(result).WithC(carry).WithV(overflow))
	case 2: // ADD
		result, carry, overflow := shifter.Add(regs.R(rd), imm)
		regs.SetR(rd, result)
		regs.SetCPSR(regs.CPSR().WithNZ(result).WithC(carry).WithV(overflow))
	default: // SUB
		result, carry, overflow := shifter.Sub(regs.R(rd), imm)
		regs.SetR(rd, result)
		regs.SetCPSR(regs.CPSR().WithNZ(result).WithC(carry).WithV(overflow))
	}
}
