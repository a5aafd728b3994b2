package arm

import (
	"github.com/gba-core/gba/hardware/cpu/registers"
	"github.com/gba-core/gba/hardware/cpu/shifter"
)

// dataProcessing executes AND/EOR/SUB/RSB/ADD/ADC/SBC/RSC/TST/TEQ/CMP/CMN/
// ORR/MOV/BIC/MVN. Returns true if it wrote r15, so the caller reloads the
// pipeline.
func dataProcessing(instr uint32, regs *registers.File) bool {
	op := (instr >> 21) & 0xF
	sBit := instr&(1<<20) != 0
	rn := regs.R(int((instr >> 16) & 0xF))
	rd := int((instr >> 12) & 0xF)
	op2, shiftCarry := operand2(instr, regs)

	var result uint32
	var carry, overflow bool
	writesRd := true

	switch op {
	case 0x0: // AND
		result = rn & op2
		carry, overflow = shiftCarry, regs.CPSR().V()
	case 0x1: // EOR
		result = rn ^ op2
		carry, overflow = shiftCarry, regs.CPSR().V()
	case 0x2: // SUB
		result, carry, overflow = shifter.Sub(rn, op2)
	case 0x3: // RSB
		result, carry, overflow = shifter.Rsb(rn, op2)
	case 0x4: // ADD
		result, carry, overflow = shifter.Add(rn, op2)
	case 0x5: // ADC
		result, carry, overflow = shifter.Adc(rn, op2, regs.CPSR().C())
	case 0x6: // SBC
		result, carry, overflow = shifter.Sbc(rn, op2, regs.CPSR().C())
	case 0x7: // RSC
		result, carry, overflow = shifter.Rsc(rn, op2, regs.CPSR().C())
	case 0x8: // TST
		result = rn & op2
		carry, overflow = shiftCarry, regs.CPSR().V()
		writesRd = false
	case 0x9: // TEQ
		result = rn ^ op2
		carry, overflow = shiftCarry, regs.CPSR().V()
		writesRd = false
	case 0xA: // CMP
		result, carry, overflow = shifter.Sub(rn, op2)
		writesRd = false
	case 0xB: // CMN
		result, carry, overflow = shifter.Add(rn, op2)
		writesRd = false
	case 0xC: // ORR
		result = rn | op2
		carry, overflow = shiftCarry, regs.CPSR().V()
	case 0xD: // MOV
		result = op2
		carry, overflow = shiftCarry, regs.CPSR().V()
	case 0xE: // BIC
		result = rn &^ op2
		carry, overflow = shiftCarry, regs.CPSR().V()
	case 0xF: // MVN
		result = ^op2
		carry, overflow = shiftCarry, regs.CPSR().V()
	}

	wroteR15 := false
	if writesRd {
		regs.SetR(rd, result)
		wroteR15 = rd == 15
	}

	if sBit {
		if wroteR15 {
			// Writing r15 with S set restores CPSR from the current mode's
			// SPSR - the mechanism SWI/IRQ return sequences rely on.
			regs.SetCPSR(regs.SPSR())
		} else {
			regs.SetCPSR(regs.CPSR().WithNZ(result).WithC(carry).WithV(overflow))
		}
	}

	return wroteR15
}
