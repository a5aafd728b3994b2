package arm

import (
	"github.com/gba-core/gba/hardware/cpu/registers"
	"github.com/gba-core/gba/hardware/memory/bus"
)

// singleDataTransfer executes LDR/STR and their byte variants. Returns true
// if it wrote r15.
func singleDataTransfer(instr uint32, regs *registers.File, mem bus.CPUBus) bool {
	rn := int((instr >> 16) & 0xF)
	rd := int((instr >> 12) & 0xF)
	pre := instr&(1<<24) != 0
	writeBack := instr&(1<<21) != 0 || !pre
	byteWidth := instr&(1<<22) != 0
	load := instr&(1<<20) != 0

	offset := offset12(instr, regs)
	base := regs.R(rn)
	addr := base
	if pre {
		addr = base + offset
	}

	wroteR15 := false
	if load {
		var value uint32
		if byteWidth {
			value = uint32(mem.Read8(addr))
		} else {
			value = mem.Read32(addr)
		}
		regs.SetR(rd, value)
		wroteR15 = rd == 15
	} else {
		value := regs.R(rd)
		if rd == 15 {
			value += 4 // STR of PC stores the instruction's address + 12.
		}
		if byteWidth {
			mem.Write8(addr, uint8(value))
		} else {
			mem.Write32(addr, value)
		}
	}

	if writeBack && (!load || rd != rn) {
		regs.SetR(rn, base+offset)
	}

	return wroteR15
}

// halfwordKind identifies LDRH/STRH/LDRSB/LDRSH's operand width and sign
// extension.
type halfwordKind int

const (
	hwHalf halfwordKind = iota
	hwSignedByte
	hwSignedHalf
)

func halfwordTransferKind(instr uint32) (kind halfwordKind, load bool) {
	load = instr&(1<<20) != 0
	switch (instr >> 5) & 0x3 {
	case 0x1:
		return hwHalf, load
	case 0x2:
		return hwSignedByte, load
	default:
		return hwSignedHalf, load
	}
}

// isHalfwordTransfer reports whether instr is one of LDRH/STRH/LDRSB/
// LDRSH: bits 27-25 zero, bit 7 and bit 4 both set, and bits 6-5 nonzero
// (00 would be SWP/multiply instead).
func isHalfwordTransfer(instr uint32) bool {
	return (instr>>25)&0x7 == 0 && instr&(1<<7) != 0 && instr&(1<<4) != 0 && (instr>>5)&0x3 != 0
}

// halfwordTransfer executes LDRH/STRH/LDRSB/LDRSH.
func halfwordTransfer(instr uint32, regs *registers.File, mem bus.CPUBus) {
	rn := int((instr >> 16) & 0xF)
	rd := int((instr >> 12) & 0xF)
	pre := instr&(1<<24) != 0
	writeBack := instr&(1<<21) != 0 || !pre

	offset := offset8(instr, regs)
	base := regs.R(rn)
	addr := base
	if pre {
		addr = base + offset
	}

	kind, load := halfwordTransferKind(instr)
	if load {
		var value uint32
		switch kind {
		case hwHalf:
			value = uint32(mem.Read16(addr))
		case hwSignedByte:
			value = uint32(int32(int8(mem.Read8(addr))))
		case hwSignedHalf:
			value = uint32(int32(int16(mem.Read16(addr))))
		}
		regs.SetR(rd, value)
	} else {
		mem.Write16(addr, uint16(regs.R(rd)))
	}

	if writeBack {
		regs.SetR(rn, base+offset)
	}
}

// blockDataTransfer executes LDM/STM. Returns true if it wrote r15.
func blockDataTransfer(instr uint32, regs *registers.File, mem bus.CPUBus) bool {
	rn := int((instr >> 16) & 0xF)
	list := instr & 0xFFFF
	pre := instr&(1<<24) != 0
	up := instr&(1<<23) != 0
	sBit := instr&(1<<22) != 0
	writeBack := instr&(1<<21) != 0
	load := instr&(1<<20) != 0

	count := 0
	for i := 0; i < 16; i++ {
		if list&(1<<i) != 0 {
			count++
		}
	}

	base := regs.R(rn)
	var start uint32
	var final uint32
	if up {
		start = base
		final = base + uint32(count)*4
	} else {
		start = base - uint32(count)*4
		final = start
	}
	addr := start
	if pre == up {
		addr += 4
	}

	userBank := sBit && (!load || list&(1<<15) == 0)
	wroteR15 := false

	for i := 0; i < 16; i++ {
		if list&(1<<i) == 0 {
			continue
		}
		if load {
			value := mem.Read32(addr)
			if i == 15 {
				regs.SetPC(value &^ 3)
				wroteR15 = true
				if sBit {
					regs.SetCPSR(regs.SPSR())
				}
			} else {
				writeRegister(regs, i, value, userBank)
			}
		} else {
			value := readRegister(regs, i, userBank)
			if i == 15 {
				value += 4 // STM of PC stores address + 12.
			}
			mem.Write32(addr, value)
		}
		addr += 4
	}

	if writeBack {
		regs.SetR(rn, final)
	}

	return wroteR15
}

// writeRegister/readRegister route through the user-mode register bank
// when S is set on an LDM/STM that isn't loading PC - the documented
// mechanism a privileged-mode exception handler uses to save or restore a
// task's user registers without a full mode switch.
func writeRegister(regs *registers.File, n int, v uint32, userBank bool) {
	if userBank {
		regs.SetUserR(n, v)
		return
	}
	regs.SetR(n, v)
}

func readRegister(regs *registers.File, n int, userBank bool) uint32 {
	if userBank {
		return regs.UserR(n)
	}
	return regs.R(n)
}
