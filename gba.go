// Package gba is the module's external interface: Core wires the memory
// bank, the DMA controller and the CPU pipeline into one owned value and
// exposes the host-facing calls a debugger, test harness or eventual
// PPU/audio/input collaborator needs - init, reset, run-for-N-cycles,
// register peek/poke and interrupt injection. There is no global state;
// every call goes through a *Core a caller constructed itself.
package gba

import (
	gbaerrors "github.com/gba-core/gba/errors"
	"github.com/gba-core/gba/hardware/cpu"
	"github.com/gba-core/gba/hardware/dma"
	"github.com/gba-core/gba/hardware/memory"
	"github.com/gba-core/gba/hardware/preferences"
)

// entryPoint is where the CPU starts fetching after reset: the fixed
// cartridge ROM entry address every GBA boots to once the BIOS hands off.
const entryPoint = 0x0800_0000

// irqAdapter satisfies dma.IRQLine by forwarding a DMA channel's completion
// to the I/O register file's IF latch. dma.NewController needs an IRQLine
// before memory.NewBank (which owns the *io.Registers the adapter forwards
// into) can exist, so the adapter is built with a nil bank pointer and
// backfilled once the bank is constructed - the one circular piece of this
// wiring, kept here rather than inside hardware/dma or hardware/memory so
// neither package needs to know about the other's construction order.
type irqAdapter struct {
	mem *memory.Bank
}

// dmaIRQBase is the bit position of DMA0's interrupt source; channels 1-3
// sit at the next three bits up, per the GBA's IE/IF register layout.
const dmaIRQBase = 8

func (a *irqAdapter) RequestDMA(channel int) {
	a.mem.IO().RequestIRQ(1 << (dmaIRQBase + channel))
}

// Core owns every emulated component: the memory bank, the DMA controller
// and the CPU pipeline. A Core is only usable after Reset; Init alone
// leaves it loaded but not running (spec.md/SPEC_FULL.md's NotRunning
// distinction between the two calls).
type Core struct {
	mem     *memory.Bank
	dmaCtrl *dma.Controller
	cpu     *cpu.CPU
	prefs   *preferences.CPU

	running bool
}

// Init builds a Core from a BIOS image and a cartridge ROM image and loads
// both into the memory bank. The returned Core is not yet running; call
// Reset before RunFor.
func Init(bios, rom []byte) (*Core, error) {
	irq := &irqAdapter{}
	dmaCtrl := dma.NewController(irq)
	mem := memory.NewBank(dmaCtrl)
	irq.mem = mem

	if err := mem.LoadBIOS(bios); err != nil {
		return nil, err
	}
	if err := mem.LoadROM(rom); err != nil {
		return nil, err
	}

	prefs, err := preferences.NewCPU("")
	if err != nil {
		return nil, err
	}

	c := &Core{
		mem:     mem,
		dmaCtrl: dmaCtrl,
		prefs:   prefs,
	}
	c.cpu = cpu.NewCPU(mem, dmaCtrl, prefs)
	return c, nil
}

// Reset emulates the reset line: PC = 0x08000000, CPSR mode System, T
// clear, every register zeroed (registers.NewFile's reset state), and the
// DMA controller's channels returned to idle.
func (c *Core) Reset() {
	c.dmaCtrl.Reset()
	c.cpu.Reset(entryPoint)
	c.running = true
}

// RunFor executes instructions (and any DMA bursts they trigger) until the
// accumulated cycle count reaches cycles, then returns the cycles actually
// spent. It returns NotRunning if the core has not been reset yet.
func (c *Core) RunFor(cycles int) (int, error) {
	if !c.running {
		return 0, gbaerrors.New(gbaerrors.NotRunning)
	}
	return c.cpu.RunFor(cycles)
}

// ReadRegister returns r0-r15 (index 0-15) for debugger integration.
func (c *Core) ReadRegister(index int) (uint32, error) {
	if index < 0 || index > 15 {
		return 0, gbaerrors.New(gbaerrors.InvalidRegisterIndex, index)
	}
	return c.cpu.Regs().R(index), nil
}

// WriteRegister overwrites r0-r15 directly, exactly as a debugger's
// register-edit command would. Writing r15 does not reload the pipeline:
// the next Step still executes the instruction already in the prefetch
// latch, and fetching continues from the new PC. Reset restarts at the
// cartridge entry point and so discards a written PC.
func (c *Core) WriteRegister(index int, value uint32) error {
	if index < 0 || index > 15 {
		return gbaerrors.New(gbaerrors.InvalidRegisterIndex, index)
	}
	c.cpu.Regs().SetR(index, value)
	return nil
}

// ReadCPSR returns the current program status word as a raw 32-bit value.
func (c *Core) ReadCPSR() uint32 {
	return uint32(c.cpu.Regs().CPSR())
}

// RaiseIRQ ORs sourceBits into the IF register. The core checks IME/IE/IF
// at the next instruction boundary, exactly as real hardware would for an
// interrupt signalled by an external PPU, timer or input collaborator.
func (c *Core) RaiseIRQ(sourceBits uint16) {
	c.mem.IO().RequestIRQ(sourceBits)
}

// Snapshot returns a cheap value copy of the emulated state for debugger
// or rewind integration - mirroring the teacher's own CPU.Snapshot/Plumb
// seam, which this core carries as an ambient concern even though
// spec.md/SPEC_FULL.md's external interface only asks for register
// read/write. Mutating the copy's registers never affects the original;
// the two share no pointers into mutable state other than the loaded
// ROM/BIOS bytes, which Init never mutates after loading.
func (c *Core) Snapshot() *Core {
	snap := &Core{prefs: c.prefs, running: c.running}

	snapIRQ := &irqAdapter{}
	snap.dmaCtrl = c.dmaCtrl.Clone(snapIRQ)
	snap.mem = c.mem.Clone(snap.dmaCtrl)
	snapIRQ.mem = snap.mem
	snap.cpu = c.cpu.Clone(snap.mem, snap.dmaCtrl)

	return snap
}
