package arm

import "github.com/gba-core/gba/hardware/cpu/registers"

// branch executes B and BL. regs.PC() already reads as the branch
// instruction's own address plus 8 (see package doc), which is exactly the
// base the 24-bit signed word offset is added to.
func branch(instr uint32, regs *registers.File) {
	offset := instr & 0x00FF_FFFF
	var signed int32
	if offset&0x0080_0000 != 0 {
		signed = int32(offset | 0xFF00_0000)
	} else {
		signed = int32(offset)
	}

	if instr&(1<<24) != 0 {
		// BL: the return address is the instruction after this one,
		// which is regs.PC()-4 relative to the +8 convention above.
		regs.SetR(14, regs.PC()-4)
	}
	regs.SetPC(uint32(int32(regs.PC()) + signed<<2))
}

// branchExchange executes BX: jump to the address in Rm, switching to
// Thumb if its bit 0 is set.
func branchExchange(instr uint32, regs *registers.File) {
	target := regs.R(int(instr & 0xF))
	thumb := target&1 != 0
	regs.SetCPSR(regs.CPSR().WithT(thumb))
	if thumb {
		regs.SetPC(target &^ 1)
	} else {
		regs.SetPC(target &^ 3)
	}
}

// isBranchExchange reports whether instr is BX: bits 27-4 fixed at
// 0x12FFF1, with Rn in bits 3-0 and the condition code in bits 31-28.
func isBranchExchange(instr uint32) bool {
	return instr&0x0FFF_FFF0 == 0x012F_FF10
}
