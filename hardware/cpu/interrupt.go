package cpu

import "github.com/gba-core/gba/hardware/cpu/registers"

// irqVector is the fixed address the ARM7TDMI jumps to on IRQ entry.
const irqVector = 0x0000_0018

// pollInterrupt is the instruction-boundary IRQ check: real hardware
// samples IRQ between instructions, never mid-decode, so RunFor calls this
// once per Step rather than the executors checking it themselves.
func (c *CPU) pollInterrupt() {
	if c.regs.CPSR().I() {
		return
	}
	flags := c.mem.IO().IRQ()
	if !flags.Master || flags.Enable&flags.Flag == 0 {
		return
	}
	c.enterIRQ()
}

// enterIRQ performs exception entry: bank to IRQ mode, save the return
// address and CPSR, disable further IRQs, force ARM state and jump to the
// vector. The return address stored in r14_irq is the address of the
// instruction that would have run next plus 4 - the same "PC+4" convention
// the BIOS interrupt handler expects to undo with "SUB LR,LR,#4", derived
// here from whichever width (2 or 4) the interrupted state was actually
// running in rather than assuming ARM.
func (c *CPU) enterIRQ() {
	width := c.instrWidth()
	nextInstrAddr := c.regs.PC() - width
	ret := nextInstrAddr + 4

	c.regs.EnterMode(registers.IRQ)
	c.regs.SetR(14, ret)
	c.regs.SetCPSR(c.regs.CPSR().WithI(true).WithT(false))
	c.regs.SetPC(irqVector)
	c.primePipeline()
}
