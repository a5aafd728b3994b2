package thumb

import (
	"github.com/gba-core/gba/hardware/cpu/registers"
	"github.com/gba-core/gba/hardware/cpu/shifter"
)

// execALUOperations implements format 4: the sixteen two-operand ALU ops,
// Rd always the destination and (with MUL as the one exception where
// order doesn't matter) the first operand.
func execALUOperations(opcode uint16, regs *registers.File) {
	op := (opcode & 0x03C0) >> 6
	rs := int((opcode & 0x0038) >> 3)
	rd := int(opcode & 0x0007)

	dst := regs.R(rd)
	src := regs.R(rs)
	cpsr := regs.CPSR()

	switch op {
	case 0x0: // AND
		result := dst & src
		regs.SetR(rd, result)
		regs.SetCPSR(cpsr.WithNZ(result))
	case 0x1: // EOR
		result := dst ^ src
		regs.SetR(rd, result)
		regs.SetCPSR(cpsr.WithNZ(result))
	case 0x2: // LSL
		result, carry := shifter.Shift(dst, shifter.LSL, src&0xFF, false, cpsr.C())
		regs.SetR(rd, result)
		regs.SetCPSR(cpsr.WithNZ(result).WithC(carry))
	case 0x3: // LSR
		result, carry := shifter.Shift(dst, shifter.LSR, src&0xFF, false, cpsr.C())
		regs.SetR(rd, result)
		regs.SetCPSR(cpsr.WithNZ(result).WithC(carry))
	case 0x4: // ASR
		result, carry := shifter.Shift(dst, shifter.ASR, src&0xFF, false, cpsr.C())
		regs.SetR(rd, result)
		regs.SetCPSR(cpsr.WithNZ(result).WithC(carry))
	case 0x5: // ADC
		result, carry, overflow := shifter.Adc(dst, src, cpsr.C())
		regs.SetR(rd, result)
		regs.SetCPSR(cpsr.WithNZ(result).WithC(carry).WithV(overflow))
	case 0x6: // SBC
		result, carry, overflow := shifter.Sbc(dst, src, cpsr.C())
		regs.SetR(rd, result)
		regs.SetCPSR(cpsr.WithNZ(result).WithC(carry).WithV(overflow))
	case 0x7: // ROR
		result, carry := shifter.Shift(dst, shifter.ROR, src&0xFF, false, cpsr.C())
		regs.SetR(rd, result)
		regs.SetCPSR(cpsr.WithNZ(result).WithC(carry))
	case 0x8: // TST
		result := dst & src
		regs.SetCPSR(cpsr.WithNZ(result))
	case 0x9: // NEG
		result, carry, overflow := shifter.Rsb(src, 0)
		regs.SetR(rd, result)
		regs.SetCPSR(cpsr.WithNZ(result).WithC(carry).WithV(overflow))
	case 0xA: // CMP
		result, carry, overflow := shifter.Sub(dst, src)
		regs.SetCPSR(cpsr.WithNZ(result).WithC(carry).WithV(overflow))
	case 0xB: // CMN
		result, carry, overflow := shifter.Add(dst, src)
		regs.SetCPSR(cpsr.WithNZ(result).WithC(carry).WithV(overflow))
	case 0xC: // ORR
		result := dst | src
		regs.SetR(rd, result)
		regs.SetCPSR(cpsr.WithNZ(result))
	case 0xD: // MUL
		result := dst * src
		regs.SetR(rd, result)
		regs.SetCPSR(cpsr.WithNZ(result))
	case 0xE: // BIC
		result := dst &^ src
		regs.SetR(rd, result)
		regs.SetCPSR(cpsr.WithNZ(result))
	default: // MVN
		result := ^src
		regs.SetR(rd, result)
		regs.SetCPSR(cpsr.WithNZ(result))
	}
}
