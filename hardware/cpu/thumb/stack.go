package thumb

import (
	"github.com/gba-core/gba/hardware/cpu/registers"
	"github.com/gba-core/gba/hardware/memory/bus"
)

// execLoadAddress implements format 12: ADD Rd,PC,#Word8*4 or
// ADD Rd,SP,#Word8*4. PC reads word-aligned, the same as format 6.
func execLoadAddress(opcode uint16, regs *registers.File) {
	sp := opcode&0x0800 != 0
	rd := int((opcode & 0x0700) >> 8)
	word8 := uint32(opcode&0x00FF) * 4

	base := regs.PC() &^ 2
	if sp {
		base = regs.R(13)
	}
	regs.SetR(rd, base+word8)
}

// execAddOffsetToSP implements format 13: ADD/SUB SP,#SWord7*4.
func execAddOffsetToSP(opcode uint16, regs *registers.File) {
	negative := opcode&0x0080 != 0
	offset := uint32(opcode&0x007F) * 4
	if negative {
		regs.SetR(13, regs.R(13)-offset)
	} else {
		regs.SetR(13, regs.R(13)+offset)
	}
}

// execPushPop implements format 14: PUSH/POP {Rlist}, optionally including
// LR on a push or PC on a pop. Returns true if it wrote r15.
func execPushPop(opcode uint16, regs *registers.File, mem bus.CPUBus) bool {
	load := opcode&0x0800 != 0
	includeLinkOrPC := opcode&0x0100 != 0
	list := opcode & 0x00FF

	count := 0
	for i := 0; i < 8; i++ {
		if list&(1<<i) != 0 {
			count++
		}
	}
	if includeLinkOrPC {
		count++
	}

	wroteR15 := false
	if load {
		addr := regs.R(13)
		for i := 0; i < 8; i++ {
			if list&(1<<i) != 0 {
				regs.SetR(i, mem.Read32(addr))
				addr += 4
			}
		}
		if includeLinkOrPC {
			regs.SetPC(mem.Read32(addr) &^ 1)
			addr += 4
			wroteR15 = true
		}
		regs.SetR(13, addr)
		return wroteR15
	}

	addr := regs.R(13) - uint32(count)*4
	regs.SetR(13, addr)
	for i := 0; i < 8; i++ {
		if list&(1<<i) != 0 {
			mem.Write32(addr, regs.R(i))
			addr += 4
		}
	}
	if includeLinkOrPC {
		mem.Write32(addr, regs.R(14))
	}
	return false
}
