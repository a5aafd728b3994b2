package thumb

import "github.com/gba-core/gba/hardware/cpu/registers"

// evalCondition mirrors arm.EvalCondition's sixteen-way table over the
// same N/Z/C/V predicates; kept local rather than imported from the arm
// package so that thumb has no dependency on it, matching the fact that
// every other Thumb format is unconditional.
func evalCondition(cond uint32, cpsr registers.Status) bool {
	n, z, c, v := cpsr.N(), cpsr.Z(), cpsr.C(), cpsr.V()
	switch cond {
	case 0x0:
		return z
	case 0x1:
		return !z
	case 0x2:
		return c
	case 0x3:
		return !c
	case 0x4:
		return n
	case 0x5:
		return !n
	case 0x6:
		return v
	case 0x7:
		return !v
	case 0x8:
		return c && !z
	case 0x9:
		return !c || z
	case 0xA:
		return n == v
	case 0xB:
		return n != v
	case 0xC:
		return !z && n == v
	case 0xD:
		return z || n != v
	case 0xE:
		return true
	default:
		return false
	}
}

func signExtend(value uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(value<<shift) >> shift
}

// execConditionalBranch implements format 16. Returns true if the branch
// was taken.
func execConditionalBranch(opcode uint16, regs *registers.File) bool {
	cond := uint32((opcode & 0x0F00) >> 8)
	if !evalCondition(cond, regs.CPSR()) {
		return false
	}
	offset := signExtend(uint32(opcode&0x00FF), 8) << 1
	regs.SetPC(uint32(int32(regs.PC()) + offset))
	return true
}

// execSoftwareInterrupt implements format 17: switch to Supervisor mode,
// bank out r14 and SPSR, disable IRQ, clear T and jump to the fixed SWI
// vector. regs.PC() already reads as this instruction's address plus 4,
// so the return address is PC()-2.
func execSoftwareInterrupt(regs *registers.File) {
	ret := regs.PC() - 2
	regs.EnterMode(registers.Supervisor)
	regs.SetR(14, ret)
	regs.SetCPSR(regs.CPSR().WithI(true).WithT(false))
	regs.SetPC(0x0000_0008)
}

// execUnconditionalBranch implements format 18: PC = PC + SignExtend(
// Offset11)<<1.
func execUnconditionalBranch(opcode uint16, regs *registers.File) {
	offset := signExtend(uint32(opcode&0x07FF), 11) << 1
	regs.SetPC(uint32(int32(regs.PC()) + offset))
}

// execLongBranchWithLink implements format 19: BL, assembled from two
// consecutive halfwords. The first (H=0) stashes PC + (offset<<12) in r14;
// the second (H=1) adds offset<<1 to r14 to form the call target, and
// overwrites r14 with the return address. Returns true only for the
// second half, since the first writes r14 but never r15.
func execLongBranchWithLink(opcode uint16, regs *registers.File) bool {
	h := opcode&0x0800 != 0
	offset11 := uint32(opcode & 0x07FF)

	if !h {
		high := signExtend(offset11, 11) << 12
		regs.SetR(14, uint32(int32(regs.PC())+high))
		return false
	}

	target := regs.R(14) + offset11<<1
	ret := (regs.PC() - 2) | 1
	regs.SetR(14, ret)
	regs.SetPC(target)
	return true
}
