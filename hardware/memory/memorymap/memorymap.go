package memorymap

// Region identifies one of the GBA's address-space regions.
type Region int

// The regions of the GBA's address space, classified by the top nibble of
// the address.
const (
	OpenBus Region = iota
	BIOS
	EWRAM
	IWRAM
	IO
	PALRAM
	VRAM
	OAM
	ROM
	SRAM
)

func (r Region) String() string {
	switch r {
	case BIOS:
		return "BIOS"
	case EWRAM:
		return "EWRAM"
	case IWRAM:
		return "IWRAM"
	case IO:
		return "IO"
	case PALRAM:
		return "PALRAM"
	case VRAM:
		return "VRAM"
	case OAM:
		return "OAM"
	case ROM:
		return "ROM"
	case SRAM:
		return "SRAM"
	}
	return "OpenBus"
}

// Region base addresses and sizes.
const (
	BaseBIOS   = uint32(0x0000_0000)
	SizeBIOS   = uint32(0x0000_4000) // 16 KiB

	BaseEWRAM  = uint32(0x0200_0000)
	SizeEWRAM  = uint32(0x0004_0000) // 256 KiB
	MaskEWRAM  = SizeEWRAM - 1

	BaseIWRAM  = uint32(0x0300_0000)
	SizeIWRAM  = uint32(0x0000_8000) // 32 KiB
	MaskIWRAM  = SizeIWRAM - 1

	BaseIO     = uint32(0x0400_0000)
	SizeIO     = uint32(0x0000_0400) // 1 KiB
	MaskIO     = SizeIO - 1

	BasePALRAM = uint32(0x0500_0000)
	SizePALRAM = uint32(0x0000_0400) // 1 KiB
	MaskPALRAM = SizePALRAM - 1

	BaseVRAM = uint32(0x0600_0000)
	SizeVRAM = uint32(0x0001_8000) // 96 KiB - NOT a power of two
	// MaskVRAM clears bit 15 for offsets in 0x18000-0x1FFFF, so that
	// addresses with bit 16 set fold onto the top 32 KiB of the region
	// (0x10000-0x17FFF), not the full 96 KiB; see foldVRAM.
	MaskVRAM = uint32(0x1_7FFF)

	BaseOAM = uint32(0x0700_0000)
	SizeOAM = uint32(0x0000_0400) // 1 KiB
	MaskOAM = SizeOAM - 1

	BaseROM  = uint32(0x0800_0000)
	TopROM   = uint32(0x0DFF_FFFF)
	SizeROM  = uint32(0x0200_0000) // 32 MiB, the largest a cartridge can be
	MaskROM  = uint32(0x01FF_FFFF) // all three wait-state windows alias this

	BaseSRAM = uint32(0x0E00_0000)
	SizeSRAM = uint32(0x0001_0000) // 64 KiB
	MaskSRAM = SizeSRAM - 1
)

// Width is the size in bytes of a memory access.
type Width int

// The three access widths the bus supports.
const (
	Byte Width = 1
	Half Width = 2
	Word Width = 4
)

// Decode classifies addr by its top nibble and folds it onto its region's
// backing array through the region's mirror mask. The
// returned offset is always a valid index into a backing array of the
// region's declared Size, except for ROM (whose caller must additionally
// bounds-check against the actual cartridge size) and OpenBus (whose offset
// is meaningless).
func Decode(addr uint32) (Region, uint32) {
	switch addr >> 24 {
	case 0x0:
		if addr < SizeBIOS {
			return BIOS, addr
		}
		return OpenBus, 0
	case 0x2:
		return EWRAM, addr & MaskEWRAM
	case 0x3:
		return IWRAM, addr & MaskIWRAM
	case 0x4:
		if addr&0xFFFF < SizeIO {
			return IO, addr & MaskIO
		}
		return OpenBus, 0
	case 0x5:
		return PALRAM, addr & MaskPALRAM
	case 0x6:
		return VRAM, foldVRAM(addr & 0x1FFFF)
	case 0x7:
		return OAM, addr & MaskOAM
	case 0x8, 0x9, 0xA, 0xB, 0xC, 0xD:
		return ROM, addr & MaskROM
	case 0xE, 0xF:
		return SRAM, addr & MaskSRAM
	}
	return OpenBus, 0
}

// foldVRAM applies the 96 KiB folding rule: the region repeats every 128
// KiB (addr & 0x1FFFF has already been applied by the caller) but the top
// 32 KiB of each 128 KiB block (0x18000-0x1FFFF) is itself a mirror of the
// preceding 32 KiB block (0x10000-0x17FFF), because 96 KiB isn't a power of
// two.
func foldVRAM(addr uint32) uint32 {
	if addr&0x18000 == 0x18000 {
		return addr & MaskVRAM
	}
	return addr & 0x1FFFF
}

// AlignOffset masks off the low bits of offset so that it is aligned to
// width - used for writes, which force-align rather than rotate.
func AlignOffset(offset uint32, width Width) uint32 {
	return offset &^ uint32(width-1)
}
