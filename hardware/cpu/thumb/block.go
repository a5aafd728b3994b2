package thumb

import (
	"github.com/gba-core/gba/hardware/cpu/registers"
	"github.com/gba-core/gba/hardware/memory/bus"
)

// execMultipleLoadStore implements format 15: STMIA/LDMIA Rb!,{Rlist},
// always incrementing and always writing back. Returns true if it wrote
// r15 - which can't happen from the register list (r8-r15 aren't
// addressable here) but stays consistent with the other block-transfer
// executors' signature.
func execMultipleLoadStore(opcode uint16, regs *registers.File, mem bus.CPUBus) bool {
	load := opcode&0x0800 != 0
	rb := int((opcode & 0x0700) >> 8)
	list := opcode & 0x00FF

	addr := regs.R(rb)
	for i := 0; i < 8; i++ {
		if list&(1<<i) == 0 {
			continue
		}
		if load {
			regs.SetR(i, mem.Read32(addr))
		} else {
			mem.Write32(addr, regs.R(i))
		}
		addr += 4
	}
	regs.SetR(rb, addr)
	return false
}
