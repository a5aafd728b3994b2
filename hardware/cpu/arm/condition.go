package arm

import "github.com/gba-core/gba/hardware/cpu/registers"

// EvalCondition tests instr's top four bits against the N/Z/C/V flags in
// cpsr. The sixteen condition codes are the standard ARM predicate table;
// 0b1111 (NV) never fires on the ARM7TDMI.
func EvalCondition(instr uint32, cpsr registers.Status) bool {
	n, z, c, v := cpsr.N(), cpsr.Z(), cpsr.C(), cpsr.V()
	switch instr >> 28 {
	case 0x0: // EQ
		return z
	case 0x1: // NE
		return !z
	case 0x2: // CS/HS
		return c
	case 0x3: // CC/LO
		return !c
	case 0x4: // MI
		return n
	case 0x5: // PL
		return !n
	case 0x6: // VS
		return v
	case 0x7: // VC
		return !v
	case 0x8: // HI
		return c && !z
	case 0x9: // LS
		return !c || z
	case 0xA: // GE
		return n == v
	case 0xB: // LT
		return n != v
	case 0xC: // GT
		return !z && n == v
	case 0xD: // LE
		return z || n != v
	case 0xE: // AL
		return true
	default: // NV
		return false
	}
}
