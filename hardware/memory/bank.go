package memory

import (
	"math/bits"

	gbaerrors "github.com/gba-core/gba/errors"
	"github.com/gba-core/gba/hardware/dma"
	"github.com/gba-core/gba/hardware/memory/io"
	"github.com/gba-core/gba/hardware/memory/memorymap"
)

// vramObjBoundary is the offset within VRAM where the OBJ tile bank begins
// in the common tile-based display modes. Bank has no visibility into
// DISPCNT's mode bits, so it always applies the tile-mode boundary rather
// than switching to the bitmap-mode boundary (0x14000) - the difference
// only matters for 8-bit writes in modes 3-5, which games essentially never
// perform against OBJ VRAM.
const vramObjBoundary = 0x10000

// Bank is the Memory Bank (component B): the eight raw byte arrays backing
// the GBA's address space, plus the read/write/alignment rules layered on
// top of them.
type Bank struct {
	bios  [memorymap.SizeBIOS]byte
	ewram [memorymap.SizeEWRAM]byte
	iwram [memorymap.SizeIWRAM]byte
	io    *io.Registers
	pram  [memorymap.SizePALRAM]byte
	vram  [memorymap.SizeVRAM]byte
	oam   [memorymap.SizeOAM]byte
	rom   []byte
	sram  [memorymap.SizeSRAM]byte

	lastPrefetch uint32
}

// NewBank builds a Bank with its I/O register file wired to dmaCtrl, so
// that writes to the DMA control registers reach the channel state machine.
func NewBank(dmaCtrl *dma.Controller) *Bank {
	return &Bank{io: io.NewRegisters(dmaCtrl)}
}

// IO exposes the I/O register file for collaborators (the PPU, the input
// handler) that need to drive registers Bank itself has no opinion about.
func (b *Bank) IO() *io.Registers { return b.io }

// Clone returns an independent copy of b wired to a different DMA
// controller. The fixed-size RAM/VRAM/OAM/SRAM arrays and the BIOS array
// copy by value automatically; rom is shared (Bank never mutates it after
// LoadROM, so aliasing it is safe), and io is rebuilt against dmaCtrl.
func (b *Bank) Clone(dmaCtrl *dma.Controller) *Bank {
	clone := *b
	clone.io = b.io.Clone(dmaCtrl)
	return &clone
}

// LoadBIOS copies a 16 KiB BIOS image into place. A short image is zero
// padded at the end; a larger image is rejected with BIOSWrongSize, since
// an oversized dump almost certainly isn't a real GBA BIOS.
func (b *Bank) LoadBIOS(data []byte) error {
	if len(data) > len(b.bios) {
		return gbaerrors.New(gbaerrors.BIOSWrongSize, len(data), len(b.bios))
	}
	copy(b.bios[:], data)
	return nil
}

// LoadROM copies a cartridge ROM image, rejecting one too large for the
// 32 MiB cartridge window rather than silently truncating it.
func (b *Bank) LoadROM(data []byte) error {
	if uint32(len(data)) > memorymap.SizeROM {
		return gbaerrors.New(gbaerrors.ROMTooLarge, len(data), memorymap.SizeROM)
	}
	b.rom = make([]byte, len(data))
	copy(b.rom, data)
	return nil
}

// SetLastPrefetch records the most recent word the CPU pipeline fetched,
// which is what an open-bus read returns.
func (b *Bank) SetLastPrefetch(v uint32) { b.lastPrefetch = v }

// OpenBus returns the value an access to an unmapped region currently sees.
func (b *Bank) OpenBus() uint32 { return b.lastPrefetch }

// Read8 reads one byte, honouring each region's access rules.
func (b *Bank) Read8(addr uint32) uint8 {
	region, offset := memorymap.Decode(addr)
	return b.read8(region, offset, addr)
}

func (b *Bank) read8(region memorymap.Region, offset, addr uint32) uint8 {
	switch region {
	case memorymap.BIOS:
		return b.bios[offset]
	case memorymap.EWRAM:
		return b.ewram[offset]
	case memorymap.IWRAM:
		return b.iwram[offset]
	case memorymap.IO:
		return b.io.Read8(offset)
	case memorymap.PALRAM:
		return b.pram[offset]
	case memorymap.VRAM:
		return b.vram[offset]
	case memorymap.OAM:
		return b.oam[offset]
	case memorymap.ROM:
		if offset >= uint32(len(b.rom)) {
			return uint8(b.lastPrefetch >> ((addr & 3) * 8))
		}
		return b.rom[offset]
	case memorymap.SRAM:
		return b.sram[offset]
	}
	return uint8(b.lastPrefetch >> ((addr & 3) * 8))
}

// Read16 reads a 16-bit half-word. A misaligned address rotates the
// aligned half-word right by 8 bits rather than faulting, matching the
// ARM7TDMI's load behaviour.
func (b *Bank) Read16(addr uint32) uint16 {
	region, offset := memorymap.Decode(addr)
	if region == memorymap.SRAM {
		v := b.sram[offset]
		return uint16(v) | uint16(v)<<8
	}
	aligned := memorymap.AlignOffset(offset, memorymap.Half)
	raw := b.read16(region, aligned, addr)
	shift := uint(offset&1) * 8
	return bits.RotateLeft16(raw, -int(shift))
}

func (b *Bank) read16(region memorymap.Region, offset, addr uint32) uint16 {
	switch region {
	case memorymap.BIOS:
		return uint16(b.bios[offset]) | uint16(b.bios[offset+1])<<8
	case memorymap.EWRAM:
		return uint16(b.ewram[offset]) | uint16(b.ewram[offset+1])<<8
	case memorymap.IWRAM:
		return uint16(b.iwram[offset]) | uint16(b.iwram[offset+1])<<8
	case memorymap.IO:
		return b.io.Read16(offset)
	case memorymap.PALRAM:
		return uint16(b.pram[offset]) | uint16(b.pram[offset+1])<<8
	case memorymap.VRAM:
		return uint16(b.vram[offset]) | uint16(b.vram[offset+1])<<8
	case memorymap.OAM:
		return uint16(b.oam[offset]) | uint16(b.oam[offset+1])<<8
	case memorymap.ROM:
		if offset+1 >= uint32(len(b.rom)) {
			return uint16(b.lastPrefetch >> ((addr & 2) * 8))
		}
		return uint16(b.rom[offset]) | uint16(b.rom[offset+1])<<8
	}
	return uint16(b.lastPrefetch >> ((addr & 2) * 8))
}

// Read32 reads a 32-bit word. A misaligned address rotates the aligned
// word right by (addr&3)*8 bits, the same open-bus-adjacent quirk as
// Read16 but across all four byte lanes.
func (b *Bank) Read32(addr uint32) uint32 {
	region, offset := memorymap.Decode(addr)
	if region == memorymap.SRAM {
		v := b.sram[offset]
		word := uint32(v)
		return word | word<<8 | word<<16 | word<<24
	}
	aligned := memorymap.AlignOffset(offset, memorymap.Word)
	raw := b.read32(region, aligned, addr)
	shift := uint(offset&3) * 8
	return bits.RotateLeft32(raw, -int(shift))
}

func (b *Bank) read32(region memorymap.Region, offset, addr uint32) uint32 {
	switch region {
	case memorymap.BIOS:
		return le32(b.bios[:], offset)
	case memorymap.EWRAM:
		return le32(b.ewram[:], offset)
	case memorymap.IWRAM:
		return le32(b.iwram[:], offset)
	case memorymap.IO:
		return b.io.Read32(offset)
	case memorymap.PALRAM:
		return le32(b.pram[:], offset)
	case memorymap.VRAM:
		return le32(b.vram[:], offset)
	case memorymap.OAM:
		return le32(b.oam[:], offset)
	case memorymap.ROM:
		if offset+3 >= uint32(len(b.rom)) {
			return b.lastPrefetch
		}
		return le32(b.rom, offset)
	}
	return b.lastPrefetch
}

func le32(data []byte, offset uint32) uint32 {
	return uint32(data[offset]) | uint32(data[offset+1])<<8 |
		uint32(data[offset+2])<<16 | uint32(data[offset+3])<<24
}

// Write8 writes one byte. Palette RAM and OAM ignore 8-bit writes
// outright; VRAM ignores them in the OBJ tile bank and otherwise
// replicates the byte across both halves of the containing half-word.
// BIOS and ROM are read-only.
func (b *Bank) Write8(addr uint32, v uint8) {
	region, offset := memorymap.Decode(addr)
	switch region {
	case memorymap.EWRAM:
		b.ewram[offset] = v
	case memorymap.IWRAM:
		b.iwram[offset] = v
	case memorymap.IO:
		b.io.Write8(offset, v)
	case memorymap.PALRAM:
		// 8-bit writes to palette RAM are ignored.
	case memorymap.VRAM:
		if offset >= vramObjBoundary {
			return
		}
		half := offset &^ 1
		b.vram[half] = v
		b.vram[half+1] = v
	case memorymap.OAM:
		// 8-bit writes to OAM are ignored.
	case memorymap.SRAM:
		b.sram[offset] = v
	case memorymap.BIOS, memorymap.ROM:
		// read-only
	}
}

// Write16 writes a half-word, force-aligning the address rather than
// rotating (unlike the read path).
func (b *Bank) Write16(addr uint32, v uint16) {
	region, offset := memorymap.Decode(addr)
	offset = memorymap.AlignOffset(offset, memorymap.Half)
	switch region {
	case memorymap.EWRAM:
		b.ewram[offset], b.ewram[offset+1] = byte(v), byte(v>>8)
	case memorymap.IWRAM:
		b.iwram[offset], b.iwram[offset+1] = byte(v), byte(v>>8)
	case memorymap.IO:
		b.io.Write16(offset, v)
	case memorymap.PALRAM:
		b.pram[offset], b.pram[offset+1] = byte(v), byte(v>>8)
	case memorymap.VRAM:
		b.vram[offset], b.vram[offset+1] = byte(v), byte(v>>8)
	case memorymap.OAM:
		b.oam[offset], b.oam[offset+1] = byte(v), byte(v>>8)
	case memorymap.SRAM:
		b.sram[offset] = byte(v)
	case memorymap.BIOS, memorymap.ROM:
		// read-only
	}
}

// Write32 writes a word, force-aligning the address.
func (b *Bank) Write32(addr uint32, v uint32) {
	region, offset := memorymap.Decode(addr)
	offset = memorymap.AlignOffset(offset, memorymap.Word)
	switch region {
	case memorymap.EWRAM:
		putLE32(b.ewram[:], offset, v)
	case memorymap.IWRAM:
		putLE32(b.iwram[:], offset, v)
	case memorymap.IO:
		b.io.Write32(offset, v)
	case memorymap.PALRAM:
		putLE32(b.pram[:], offset, v)
	case memorymap.VRAM:
		putLE32(b.vram[:], offset, v)
	case memorymap.OAM:
		putLE32(b.oam[:], offset, v)
	case memorymap.SRAM:
		b.sram[offset] = byte(v)
	case memorymap.BIOS, memorymap.ROM:
		// read-only
	}
}

func putLE32(data []byte, offset uint32, v uint32) {
	data[offset] = byte(v)
	data[offset+1] = byte(v >> 8)
	data[offset+2] = byte(v >> 16)
	data[offset+3] = byte(v >> 24)
}
