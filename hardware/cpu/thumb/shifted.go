package thumb

import (
	"github.com/gba-core/gba/hardware/cpu/registers"
	"github.com/gba-core/gba/hardware/cpu/shifter"
)

// execMoveShiftedRegister implements format 1: LSL/LSR/ASR Rd, Rs, #Offset5.
// Always updates N, Z and C; V is left alone.
func execMoveShiftedRegister(opcode uint16, regs *registers.File) {
	op := (opcode & 0x1800) >> 11
	amount := uint32((opcode & 0x07C0) >> 6)
	rs := int((opcode & 0x0038) >> 3)
	rd := int(opcode & 0x0007)

	carryIn := regs.CPSR().C()
	var kind shifter.Type
	switch op {
	case 0:
		kind = shifter.LSL
	case 1:
		kind = shifter.LSR
	default:
		kind = shifter.ASR
	}

	result, carryOut := shifter.Shift(regs.R(rs), kind, amount, true, carryIn)
	regs.SetR(rd, result)
	regs.SetCPSR(regs.CPSR().WithNZ(result).WithC(carryOut))
}

// execAddSubtract implements format 2: ADD/SUB Rd, Rs, Rn or Rd, Rs, #Offset3.
func execAddSubtract(opcode uint16, regs *registers.File) {
	immediate := opcode&0x0400 != 0
	subtract := opcode&0x0200 != 0
	rnOrImm := uint32((opcode & 0x01C0) >> 6)
	rs := int((opcode & 0x0038) >> 3)
	rd := int(opcode & 0x0007)

	operand := rnOrImm
	if !immediate {
		operand = regs.R(int(rnOrImm))
	}

	var result uint32
	var carry, overflow bool
	if subtract {
		result, carry, overflow = shifter.Sub(regs.R(rs), operand)
	} else {
		result, carry, overflow = shifter.Add(regs.R(rs), operand)
	}
	regs.SetR(rd, result)
	regs.SetCPSR(regs.CPSR().WithNZ(result).WithC(carry).WithV(overflow))
}
