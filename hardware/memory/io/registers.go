package io

import "github.com/gba-core/gba/hardware/dma"

// Descriptor is one byte-addressable slot of the I/O window: a read-mask
// and write-mask - every write passes through the write-mask so read-only
// bits are preserved and write-only bits clear on readback - plus optional
// side-effect callbacks. Unmapped offsets have no Descriptor and read as
// zero.
type Descriptor struct {
	ReadMask  uint8
	WriteMask uint8
	OnRead    func(shadow uint8) uint8
	OnWrite   func(old, v uint8)
}

// IRQFlags exposes the interrupt-flag/master-enable state that the CPU's
// pipeline glue polls at each instruction boundary.
type IRQFlags struct {
	Enable uint16
	Flag   uint16
	Master bool
}

// Registers is the 1 KiB memory-mapped I/O window (component C). It owns a
// byte shadow of every mapped register plus a sparse descriptor table, and
// delegates DMA register accesses to a *dma.Controller so that the 0->1
// enable-bit transition the DMA state machine needs is visible exactly
// where the CPU/bus writes it.
type Registers struct {
	shadow      [1024]byte
	descriptors map[uint32]*Descriptor
	dma         *dma.Controller
	irq         IRQFlags
	vcount      uint8
}

// Register offsets, relative to the base of the I/O window
// (original_source/include/memory.h's enum io_regs).
const (
	offDISPCNT  = 0x000
	offDISPSTAT = 0x004
	offVCOUNT   = 0x006
	offDMABase  = 0x0B0 // through 0x0DF, four 12-byte channel blocks
	offDMAEnd   = 0x0E0
	offTM0CNT_L = 0x100
	offTM3CNT_H = 0x10F
	offKEYINPUT = 0x130
	offSIOCNT   = 0x128
	offSIODATA  = 0x12A
	offIE       = 0x200
	offIF       = 0x202
	offIME      = 0x208
)

// NewRegisters builds the I/O register file wired to the given DMA
// controller, since writes to DMA enable bits trigger side effects in the
// channel state machine.
func NewRegisters(dmaCtrl *dma.Controller) *Registers {
	r := &Registers{dma: dmaCtrl, descriptors: make(map[uint32]*Descriptor)}
	r.registerDisplay()
	r.registerInterrupts()
	r.registerMisc()
	return r
}

func (r *Registers) register(offset uint32, d *Descriptor) {
	r.descriptors[offset] = d
}

func (r *Registers) registerDisplay() {
	// DISPCNT: fully read/write, no side effects modelled here - the PPU
	// collaborator reads it directly from the shadow array; the PPU is
	// external, reached through narrow interfaces only for DMA triggers.
	r.register(offDISPCNT+0, &Descriptor{ReadMask: 0xFF, WriteMask: 0xFF})
	r.register(offDISPCNT+1, &Descriptor{ReadMask: 0xFF, WriteMask: 0xFF})

	// DISPSTAT: bits 0-2 (VBlank/HBlank/VCount flags) are read-only from the
	// CPU's perspective - the write mask preserves them, and Registers has
	// no setter for them.
	r.register(offDISPSTAT+0, &Descriptor{ReadMask: 0xFF, WriteMask: 0xF8})
	r.register(offDISPSTAT+1, &Descriptor{ReadMask: 0xFF, WriteMask: 0xFF})

	// VCOUNT is entirely read-only; the PPU collaborator writes it through
	// SetVCount, never through the bus.
	r.register(offVCOUNT+0, &Descriptor{
		ReadMask: 0xFF,
		OnRead:   func(uint8) uint8 { return r.vcount },
	})
	r.register(offVCOUNT+1, &Descriptor{ReadMask: 0xFF})
}

func (r *Registers) registerInterrupts() {
	ieLo := &Descriptor{ReadMask: 0xFF, WriteMask: 0xFF,
		OnWrite: func(_, v uint8) { r.irq.Enable = (r.irq.Enable &^ 0xFF) | uint16(v) },
		OnRead:  func(uint8) uint8 { return uint8(r.irq.Enable) },
	}
	ieHi := &Descriptor{ReadMask: 0xFF, WriteMask: 0xFF,
		OnWrite: func(_, v uint8) { r.irq.Enable = (r.irq.Enable &^ 0xFF00) | uint16(v)<<8 },
		OnRead:  func(uint8) uint8 { return uint8(r.irq.Enable >> 8) },
	}
	r.register(offIE+0, ieLo)
	r.register(offIE+1, ieHi)

	// IF is write-1-to-clear: writing a bit clears it if set,
	// leaves it alone if already zero. Reads return the live flag byte.
	ifLo := &Descriptor{ReadMask: 0xFF, WriteMask: 0xFF,
		OnWrite: func(_, v uint8) { r.irq.Flag &^= uint16(v) },
		OnRead:  func(uint8) uint8 { return uint8(r.irq.Flag) },
	}
	ifHi := &Descriptor{ReadMask: 0xFF, WriteMask: 0xFF,
		OnWrite: func(_, v uint8) { r.irq.Flag &^= uint16(v) << 8 },
		OnRead:  func(uint8) uint8 { return uint8(r.irq.Flag >> 8) },
	}
	r.register(offIF+0, ifLo)
	r.register(offIF+1, ifHi)

	r.register(offIME+0, &Descriptor{ReadMask: 0x01, WriteMask: 0x01,
		OnWrite: func(_, v uint8) { r.irq.Master = v&0x01 != 0 },
		OnRead:  func(uint8) uint8 { if r.irq.Master { return 1 }; return 0 },
	})
}

// registerMisc wires the timer, keypad and serial stubs. Timer countdown
// itself is a PPU/audio-adjacent collaborator outside this core's scope;
// the registers are simply accepted and stored.
func (r *Registers) registerMisc() {
	for off := offTM0CNT_L; off <= offTM3CNT_H; off++ {
		r.register(uint32(off), &Descriptor{ReadMask: 0xFF, WriteMask: 0xFF})
	}
	// KEYINPUT is active-low and read-only from the CPU; the input
	// collaborator writes through the shadow directly via SetKeys.
	r.register(offKEYINPUT+0, &Descriptor{ReadMask: 0xFF})
	r.register(offKEYINPUT+1, &Descriptor{ReadMask: 0x03})
	r.register(offSIOCNT+0, &Descriptor{ReadMask: 0xFF, WriteMask: 0xFF})
	r.register(offSIOCNT+1, &Descriptor{ReadMask: 0xFF, WriteMask: 0xFF})
	r.register(offSIODATA+0, &Descriptor{ReadMask: 0xFF, WriteMask: 0xFF})
	r.register(offSIODATA+1, &Descriptor{ReadMask: 0xFF, WriteMask: 0xFF})
}

// Clone returns an independent copy of r wired to a different DMA
// controller - used by Bank.Clone/Core.Snapshot, since the copy's DMA
// register writes must reach the snapshot's own controller, not the
// original's.
func (r *Registers) Clone(dmaCtrl *dma.Controller) *Registers {
	clone := NewRegisters(dmaCtrl)
	clone.shadow = r.shadow
	clone.irq = r.irq
	clone.vcount = r.vcount
	return clone
}

// SetVCount lets the PPU collaborator advance the read-only VCOUNT
// register.
func (r *Registers) SetVCount(v uint8) { r.vcount = v }

// SetKeys lets the input collaborator drive the active-low KEYINPUT
// register.
func (r *Registers) SetKeys(v uint16) {
	r.shadow[offKEYINPUT] = uint8(v)
	r.shadow[offKEYINPUT+1] = uint8(v >> 8)
}

// RequestIRQ ORs source bits into IF, mirroring the host-facing raise_irq
// contract.
func (r *Registers) RequestIRQ(sourceBits uint16) { r.irq.Flag |= sourceBits }

// IRQ returns the current interrupt state for the CPU's boundary check.
func (r *Registers) IRQ() IRQFlags { return r.irq }

// isDMAOffset reports whether offset falls within the DMA register block.
func isDMAOffset(offset uint32) bool { return offset >= offDMABase && offset < offDMAEnd }

// Read8 reads one byte from the I/O window. Unmapped offsets read as zero.
func (r *Registers) Read8(offset uint32) uint8 {
	if offset >= uint32(len(r.shadow)) {
		return 0
	}
	if isDMAOffset(offset) {
		if v, ok := r.dma.ReadByte(offset); ok {
			return v
		}
	}
	d, ok := r.descriptors[offset]
	if !ok {
		return 0
	}
	v := r.shadow[offset]
	if d.OnRead != nil {
		v = d.OnRead(v)
	}
	return v & d.ReadMask
}

// Write8 writes one byte into the I/O window, masking off read-only bits
// per the descriptor's write-mask before storing.
func (r *Registers) Write8(offset uint32, v uint8) {
	if offset >= uint32(len(r.shadow)) {
		return
	}
	if isDMAOffset(offset) {
		r.dma.WriteByte(offset, v)
		return
	}
	d, ok := r.descriptors[offset]
	if !ok {
		return
	}
	old := r.shadow[offset]
	masked := (old &^ d.WriteMask) | (v & d.WriteMask)
	r.shadow[offset] = masked
	if d.OnWrite != nil {
		d.OnWrite(old, v&d.WriteMask)
	}
}

// Read16 and Read32 decompose into byte accesses at this level, matching
// the byte-granularity descriptor table above.
func (r *Registers) Read16(offset uint32) uint16 {
	return uint16(r.Read8(offset)) | uint16(r.Read8(offset+1))<<8
}

func (r *Registers) Read32(offset uint32) uint32 {
	return uint32(r.Read16(offset)) | uint32(r.Read16(offset+2))<<16
}

func (r *Registers) Write16(offset uint32, v uint16) {
	r.Write8(offset, uint8(v))
	r.Write8(offset+1, uint8(v>>8))
}

func (r *Registers) Write32(offset uint32, v uint32) {
	r.Write16(offset, uint16(v))
	r.Write16(offset+2, uint16(v>>16))
}
