package thumb

import (
	"github.com/gba-core/gba/hardware/cpu/registers"
	"github.com/gba-core/gba/hardware/memory/bus"
)

// execPCRelativeLoad implements format 6: LDR Rd, [PC, #Word8*4]. PC reads
// word-aligned regardless of the low bit the Thumb pipeline may otherwise
// carry in it.
func execPCRelativeLoad(opcode uint16, regs *registers.File, mem bus.CPUBus) {
	rd := int((opcode & 0x0700) >> 8)
	word8 := uint32(opcode&0x00FF) * 4
	base := regs.PC() &^ 2
	regs.SetR(rd, mem.Read32(base+word8))
}

// execLoadStoreRegOffset implements format 7: LDR/STR/LDRB/STRB Rd,[Rb,Ro].
func execLoadStoreRegOffset(opcode uint16, regs *registers.File, mem bus.CPUBus) {
	load := opcode&0x0800 != 0
	byteWidth := opcode&0x0400 != 0
	ro := int((opcode & 0x01C0) >> 6)
	rb := int((opcode & 0x0038) >> 3)
	rd := int(opcode & 0x0007)

	addr := regs.R(rb) + regs.R(ro)
	if load {
		if byteWidth {
			regs.SetR(rd, uint32(mem.Read8(addr)))
		} else {
			regs.SetR(rd, mem.Read32(addr))
		}
	} else {
		if byteWidth {
			mem.Write8(addr, uint8(regs.R(rd)))
		} else {
			mem.Write32(addr, regs.R(rd))
		}
	}
}

// execLoadStoreSignExtended implements format 8: LDRH/LDRSB/LDRSH/STRH
// Rd,[Rb,Ro].
func execLoadStoreSignExtended(opcode uint16, regs *registers.File, mem bus.CPUBus) {
	signExtend := opcode&0x0800 != 0
	halfword := opcode&0x0400 != 0
	ro := int((opcode & 0x01C0) >> 6)
	rb := int((opcode & 0x0038) >> 3)
	rd := int(opcode & 0x0007)

	addr := regs.R(rb) + regs.R(ro)
	switch {
	case !signExtend && !halfword:
		mem.Write16(addr, uint16(regs.R(rd)))
	case !signExtend && halfword:
		regs.SetR(rd, uint32(mem.Read16(addr)))
	case signExtend && !halfword:
		regs.SetR(rd, uint32(int32(int8(mem.Read8(addr)))))
	default:
		regs.SetR(rd, uint32(int32(int16(mem.Read16(addr)))))
	}
}

// execLoadStoreImmOffset implements format 9: LDR/STR/LDRB/STRB
// Rd,[Rb,#Offset5]. Offset5 counts words for the word form and bytes for
// the byte form.
func execLoadStoreImmOffset(opcode uint16, regs *registers.File, mem bus.CPUBus) {
	byteWidth := opcode&0x1000 != 0
	load := opcode&0x0800 != 0
	offset5 := uint32((opcode & 0x07C0) >> 6)
	rb := int((opcode & 0x0038) >> 3)
	rd := int(opcode & 0x0007)

	offset := offset5
	if !byteWidth {
		offset *= 4
	}
	addr := regs.R(rb) + offset

	if load {
		if byteWidth {
			regs.SetR(rd, uint32(mem.Read8(addr)))
		} else {
			regs.SetR(rd, mem.Read32(addr))
		}
	} else {
		if byteWidth {
			mem.Write8(addr, uint8(regs.R(rd)))
		} else {
			mem.Write32(addr, regs.R(rd))
		}
	}
}

// execLoadStoreHalfword implements format 10: LDRH/STRH Rd,[Rb,#Offset5*2].
func execLoadStoreHalfword(opcode uint16, regs *registers.File, mem bus.CPUBus) {
	load := opcode&0x0800 != 0
	offset := uint32((opcode&0x07C0)>>6) * 2
	rb := int((opcode & 0x0038) >> 3)
	rd := int(opcode & 0x0007)

	addr := regs.R(rb) + offset
	if load {
		regs.SetR(rd, uint32(mem.Read16(addr)))
	} else {
		mem.Write16(addr, uint16(regs.R(rd)))
	}
}

// execSPRelativeLoadStore implements format 11: LDR/STR Rd,[SP,#Word8*4].
func execSPRelativeLoadStore(opcode uint16, regs *registers.File, mem bus.CPUBus) {
	load := opcode&0x0800 != 0
	rd := int((opcode & 0x0700) >> 8)
	word8 := uint32(opcode&0x00FF) * 4

	addr := regs.R(13) + word8
	if load {
		regs.SetR(rd, mem.Read32(addr))
	} else {
		mem.Write32(addr, regs.R(rd))
	}
}
