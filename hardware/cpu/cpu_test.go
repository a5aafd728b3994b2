package cpu_test

import (
	"testing"

	"github.com/gba-core/gba/hardware/cpu"
	"github.com/gba-core/gba/hardware/cpu/registers"
	"github.com/gba-core/gba/hardware/dma"
	"github.com/gba-core/gba/hardware/memory"
)

type noIRQ struct{}

func (noIRQ) RequestDMA(int) {}

const iwramBase = 0x0300_0000
const ioBase = 0x0400_0000

func newCPU() (*cpu.CPU, *memory.Bank) {
	dmaCtrl := dma.NewController(noIRQ{})
	mem := memory.NewBank(dmaCtrl)
	c := cpu.NewCPU(mem, dmaCtrl, nil)
	return c, mem
}

func TestStepRunsArithmeticSequence(t *testing.T) {
	c, mem := newCPU()
	// MOV r0,#1 ; MOV r1,#2 ; ADD r2,r0,r1
	mem.Write32(iwramBase+0, 0xE3A00001)
	mem.Write32(iwramBase+4, 0xE3A01002)
	mem.Write32(iwramBase+8, 0xE0802001)
	c.Reset(iwramBase)

	for i := 0; i < 3; i++ {
		if _, err := c.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
	if got := c.Regs().R(2); got != 3 {
		t.Fatalf("r2 = %d, want 3", got)
	}
}

func TestRunForDrainsBudgetAroundBranchToSelf(t *testing.T) {
	c, mem := newCPU()
	mem.Write32(iwramBase+0, 0xE3A00001)  // MOV r0,#1
	mem.Write32(iwramBase+4, 0xE3A01002)  // MOV r1,#2
	mem.Write32(iwramBase+8, 0xE0802001)  // ADD r2,r0,r1
	mem.Write32(iwramBase+12, 0xEAFF_FFFE) // B . (branch to self)
	c.Reset(iwramBase)

	if _, err := c.RunFor(10); err != nil {
		t.Fatalf("RunFor: %v", err)
	}
	if got := c.Regs().R(2); got != 3 {
		t.Fatalf("r2 = %d, want 3", got)
	}
	if got := c.Regs().PC(); got != iwramBase+16 {
		t.Fatalf("PC = %#x, want the branch-to-self instruction still latched (%#x)", got, iwramBase+16)
	}
}

func TestPipelineReloadOnTakenBranchSkipsToTarget(t *testing.T) {
	c, mem := newCPU()
	// B #8 (skip the next instruction)
	mem.Write32(iwramBase+0, 0xEA00_0000)
	// MOV r0,#99 (skipped)
	mem.Write32(iwramBase+4, 0xE3A00063)
	// MOV r0,#42 (branch target)
	mem.Write32(iwramBase+8, 0xE3A0002A)
	c.Reset(iwramBase)

	if _, err := c.Step(); err != nil { // the branch
		t.Fatalf("Step (branch): %v", err)
	}
	if _, err := c.Step(); err != nil { // MOV r0,#42
		t.Fatalf("Step (target): %v", err)
	}
	if got := c.Regs().R(0); got != 42 {
		t.Fatalf("r0 = %d, want 42 (the skipped MOV #99 must never have run)", got)
	}
}

func TestBranchExchangeToThumbThenRunsThumbCode(t *testing.T) {
	c, mem := newCPU()
	mem.Write32(iwramBase+0, 0xE12F_FF12) // BX r2
	// LSL r0, r1, #3 in Thumb at the branch target, matching the thumb
	// package's own fixture so the reload lands on a real instruction.
	mem.Write16(iwramBase+8, 0x00C8)
	c.Reset(iwramBase)
	c.Regs().SetR(1, 4)
	c.Regs().SetR(2, (iwramBase+8)|1) // odd target -> Thumb

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step (BX): %v", err)
	}
	if !c.Regs().CPSR().T() {
		t.Fatal("BX to an odd address should set CPSR.T")
	}
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step (thumb LSL): %v", err)
	}
	if got := c.Regs().R(0); got != 32 {
		t.Fatalf("r0 = %d, want 32 (4 << 3)", got)
	}
}

func TestInterruptDispatchVectorsWhenEnabled(t *testing.T) {
	c, mem := newCPU()
	mem.Write32(iwramBase+0, 0xE1A0_0000) // NOP (MOV r0,r0)
	c.Reset(iwramBase)
	// Reset leaves CPSR.I set, as real hardware does; clear it the way
	// startup code would before anything can fire.
	c.Regs().SetCPSR(c.Regs().CPSR().WithI(false))

	mem.Write16(ioBase+0x208, 0x0001) // IME = 1
	mem.Write16(ioBase+0x200, 0x0001) // IE = VBlank
	mem.IO().RequestIRQ(0x0001)       // IF |= VBlank

	if _, err := c.RunFor(1); err != nil {
		t.Fatalf("RunFor: %v", err)
	}
	if c.Regs().CPSR().Mode() != registers.IRQ {
		t.Fatalf("mode = %s, want IRQ", c.Regs().CPSR().Mode())
	}
	if c.Regs().PC() != 0x0000_0018+4 {
		t.Fatalf("PC = %#x, want the IRQ vector latched (%#x)", c.Regs().PC(), 0x0000_0018+4)
	}
	if !c.Regs().CPSR().I() {
		t.Fatal("IRQ entry should set the I bit")
	}
	if got := c.Regs().R(14); got != iwramBase+8 {
		t.Fatalf("r14_irq = %#x, want the return address %#x", got, iwramBase+8)
	}
}

func TestInterruptNotDispatchedWhenMasterDisabled(t *testing.T) {
	c, mem := newCPU()
	mem.Write32(iwramBase+0, 0xE1A0_0000) // NOP
	mem.Write32(iwramBase+4, 0xE1A0_0000) // NOP
	c.Reset(iwramBase)
	c.Regs().SetCPSR(c.Regs().CPSR().WithI(false))

	mem.Write16(ioBase+0x200, 0x0001) // IE = VBlank, IME left at 0
	mem.IO().RequestIRQ(0x0001)

	if _, err := c.RunFor(1); err != nil {
		t.Fatalf("RunFor: %v", err)
	}
	if c.Regs().CPSR().Mode() != registers.System {
		t.Fatalf("mode = %s, want System (no IRQ should have fired)", c.Regs().CPSR().Mode())
	}
}
