package arm

import "github.com/gba-core/gba/hardware/cpu/registers"

// softwareInterrupt executes SWI: switch to Supervisor mode, save the
// return address and CPSR, disable IRQ and jump to the fixed SWI vector.
// regs.PC() already reads as this instruction's address plus 8, so the
// return address (the instruction after the SWI) is PC()-4.
func softwareInterrupt(regs *registers.File) {
	ret := regs.PC() - 4
	regs.EnterMode(registers.Supervisor)
	regs.SetR(14, ret)
	regs.SetCPSR(regs.CPSR().WithI(true).WithT(false))
	regs.SetPC(0x0000_0008)
}

// undefinedInstruction traps to Undefined mode, mirroring softwareInterrupt
// but vectoring to 0x00000004.
func undefinedInstruction(regs *registers.File) {
	ret := regs.PC() - 4
	regs.EnterMode(registers.Undefined)
	regs.SetR(14, ret)
	regs.SetCPSR(regs.CPSR().WithI(true).WithT(false))
	regs.SetPC(0x0000_0004)
}
