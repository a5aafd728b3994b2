package cpu

import (
	gbaerrors "github.com/gba-core/gba/errors"
	"github.com/gba-core/gba/hardware/cpu/arm"
	"github.com/gba-core/gba/hardware/cpu/registers"
	"github.com/gba-core/gba/hardware/cpu/thumb"
	"github.com/gba-core/gba/hardware/dma"
	"github.com/gba-core/gba/hardware/memory"
	"github.com/gba-core/gba/hardware/preferences"
	"github.com/gba-core/gba/logger"
)

// unitCycles is the flat per-instruction cost RunFor charges against its
// budget. original_source carries no cycle-cost table at all (core_step
// just decodes and executes, the host loop counts frames rather than
// cycles), so a cycle-visible budget here means charging every instruction
// the same and letting DMA burst costs (which the controller does
// compute, per channel width and count) add on top - closer to the
// original's granularity than inventing a per-instruction S/N-cycle table
// with no source to ground it on.
const unitCycles = 1

// CPU is the pipeline and scheduling glue (component I): the register
// file, a memory bank and a DMA controller wired into one fetch-decode-
// execute loop with a two-stage prefetch latch and an IRQ poll at every
// instruction boundary.
type CPU struct {
	regs  *registers.File
	mem   *memory.Bank
	dma   *dma.Controller
	prefs *preferences.CPU

	latch uint32
}

// NewCPU wires mem and dmaCtrl into a CPU. prefs may be nil, in which case
// HaltOnUnimplemented behaves as if false (the release-mode default: trap
// into the guest rather than stop the host loop).
func NewCPU(mem *memory.Bank, dmaCtrl *dma.Controller, prefs *preferences.CPU) *CPU {
	return &CPU{mem: mem, dma: dmaCtrl, prefs: prefs}
}

// Reset builds a fresh register file with r15 at entry and primes the
// pipeline so the first Step executes the instruction at entry.
func (c *CPU) Reset(entry uint32) {
	c.regs = registers.NewFile(entry)
	c.primePipeline()
}

// Regs exposes the register file for host-facing register access
// (Core.ReadRegister/WriteRegister/ReadCPSR) and for tests.
func (c *CPU) Regs() *registers.File { return c.regs }

// Clone returns an independent copy of c wired to a different memory bank
// and DMA controller - used by Core.Snapshot. The register file copies by
// value (it holds no pointers), so the clone can run forward independently
// of the original from the same prefetch state.
func (c *CPU) Clone(mem *memory.Bank, dmaCtrl *dma.Controller) *CPU {
	regsCopy := *c.regs
	return &CPU{
		regs:  &regsCopy,
		mem:   mem,
		dma:   dmaCtrl,
		prefs: c.prefs,
		latch: c.latch,
	}
}

func (c *CPU) instrWidth() uint32 {
	if c.regs.CPSR().T() {
		return 2
	}
	return 4
}

func (c *CPU) fetch(addr uint32) uint32 {
	var v uint32
	if c.regs.CPSR().T() {
		v = uint32(c.mem.Read16(addr))
	} else {
		v = c.mem.Read32(addr)
	}
	c.mem.SetLastPrefetch(v)
	return v
}

// primePipeline fetches the instruction at the current PC into latch and
// advances PC by one instruction width, establishing the invariant Step
// relies on: PC reads as latch's address plus one width. It is used both
// at reset and after any pipeline reload (a taken branch, BX, an
// exception vector, or a Thumb/ARM state switch).
func (c *CPU) primePipeline() {
	width := c.instrWidth()
	c.latch = c.fetch(c.regs.PC())
	c.regs.SetPC(c.regs.PC() + width)
}

// Step executes exactly one instruction and reports the cycle cost,
// including any DMA burst the instruction's memory side effects armed and
// immediately triggered. Entering Step, regs.PC() already reads as the
// latched instruction's address plus one width; Step takes that latch,
// refills it with the following word, advances PC by another width (so
// arm.Execute/thumb.Execute see the PC+8/PC+4 they expect) and only then
// runs the instruction.
func (c *CPU) Step() (int, error) {
	width := c.instrWidth()
	instr := c.latch
	c.latch = c.fetch(c.regs.PC())
	c.regs.SetPC(c.regs.PC() + width)

	var reload bool
	var err error
	if c.regs.CPSR().T() {
		var res thumb.Result
		res, err = thumb.Execute(uint16(instr), c.regs, c.mem)
		reload = res.PipelineReload
	} else {
		var res arm.Result
		res, err = arm.Execute(instr, c.regs, c.mem)
		reload = res.PipelineReload
	}

	if err != nil {
		if !c.trap(err) {
			return unitCycles, err
		}
		reload = true
	}

	if reload {
		c.primePipeline()
	}

	cycles := unitCycles + c.dma.RunImmediate(c.mem)
	return cycles, nil
}

// trap handles a decode/execute error according to
// preferences.CPU.HaltOnUnimplemented: in development mode (true) it
// reports false so the caller halts and surfaces the error; otherwise it
// vectors the guest to the Undefined exception, exactly as real hardware
// would for an instruction it can't decode, and reports true so Step
// treats it as handled.
func (c *CPU) trap(err error) bool {
	gbaErr, ok := err.(gbaerrors.GBAError)
	if !ok {
		return false
	}
	switch gbaErr.Errno {
	case gbaerrors.UnimplementedInstruction, gbaerrors.UndefinedCoprocessorInstruction:
	default:
		return false
	}

	if c.prefs != nil && c.prefs.HaltOnUnimplemented.Get().(bool) {
		return false
	}

	if c.prefs != nil && c.prefs.ExtendedFaultLogging.Get().(bool) {
		logger.Logf(logger.Allow, "cpu", "trapping %v at pc=%#08x, cpsr=%s", err, c.regs.PC(), c.regs.CPSR())
	} else {
		logger.Logf(logger.Allow, "cpu", "trapping %v", err)
	}

	arm.TrapUndefined(c.regs)
	return true
}

// RunFor executes instructions until at least cycles have been charged,
// checking for a pending, enabled interrupt at every instruction boundary.
// It returns the number of cycles actually consumed, which may exceed
// cycles by however much the final instruction (and any DMA burst it
// triggered) overran the budget - GBA's core never preempts an
// instruction or a DMA burst partway through.
func (c *CPU) RunFor(cycles int) (int, error) {
	spent := 0
	for spent < cycles {
		stepCycles, err := c.Step()
		spent += stepCycles
		if err != nil {
			return spent, err
		}
		c.pollInterrupt()
	}
	return spent, nil
}
