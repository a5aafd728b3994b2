// Package bus defines the memory bus interfaces shared between the CPU, the
// DMA controller and the memory bank: different collaborators see the bus
// through different, narrow interfaces rather than a single God interface.
package bus

// CPUBus is the interface the CPU pipeline uses to fetch instructions and
// perform load/store accesses. Any width may cross any address; alignment
// and mirroring are the implementation's responsibility.
type CPUBus interface {
	Read8(addr uint32) uint8
	Read16(addr uint32) uint16
	Read32(addr uint32) uint32
	Write8(addr uint32, v uint8)
	Write16(addr uint32, v uint16)
	Write32(addr uint32, v uint32)
}

// DMABus is the interface the DMA controller uses to move data. It is
// identical in shape to CPUBus but kept as a distinct name to mark which
// accesses are DMA-driven rather than CPU-driven. Because the method sets
// are identical, any value that satisfies CPUBus also satisfies DMABus (and
// vice versa) without a conversion.
type DMABus interface {
	Read8(addr uint32) uint8
	Read16(addr uint32) uint16
	Read32(addr uint32) uint32
	Write8(addr uint32, v uint8)
	Write16(addr uint32, v uint16)
	Write32(addr uint32, v uint32)
}

// DebuggerBus exposes peek/poke access that bypasses side effects, for
// read_register-style debugger integration. Never used by the
// executing core itself.
type DebuggerBus interface {
	Peek8(addr uint32) uint8
	Poke8(addr uint32, v uint8)
}
