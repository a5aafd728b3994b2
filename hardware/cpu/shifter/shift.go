package shifter

// Type identifies one of the four ARM shift operations.
type Type uint8

const (
	LSL Type = iota
	LSR
	ASR
	ROR
)

// Shift applies the barrel shifter to value. immediate distinguishes the
// two ways an amount of zero can arise: an immediate-encoded shift field of
// zero re-encodes LSR/ASR #32 and ROR #0 as RRX, while a register-specified
// amount of zero always leaves value and the carry flag unchanged
// regardless of shift type.
func Shift(value uint32, kind Type, amount uint32, immediate bool, carryIn bool) (result uint32, carryOut bool) {
	switch kind {
	case LSL:
		return shiftLSL(value, amount, carryIn)
	case LSR:
		if amount == 0 {
			if !immediate {
				return value, carryIn
			}
			amount = 32
		}
		return shiftLSR(value, amount)
	case ASR:
		if amount == 0 {
			if !immediate {
				return value, carryIn
			}
			amount = 32
		}
		return shiftASR(value, amount)
	case ROR:
		if amount == 0 {
			if !immediate {
				return value, carryIn
			}
			return rrx(value, carryIn)
		}
		return shiftROR(value, amount)
	}
	return value, carryIn
}

func shiftLSL(value, amount uint32, carryIn bool) (uint32, bool) {
	switch {
	case amount == 0:
		return value, carryIn
	case amount < 32:
		carryOut := (value>>(32-amount))&1 != 0
		return value << amount, carryOut
	case amount == 32:
		return 0, value&1 != 0
	default:
		return 0, false
	}
}

func shiftLSR(value, amount uint32) (uint32, bool) {
	switch {
	case amount < 32:
		carryOut := (value>>(amount-1))&1 != 0
		return value >> amount, carryOut
	case amount == 32:
		return 0, value&0x8000_0000 != 0
	default:
		return 0, false
	}
}

func shiftASR(value, amount uint32) (uint32, bool) {
	if amount >= 32 {
		if value&0x8000_0000 != 0 {
			return 0xFFFF_FFFF, true
		}
		return 0, false
	}
	carryOut := (value>>(amount-1))&1 != 0
	return uint32(int32(value) >> amount), carryOut
}

func shiftROR(value, amount uint32) (uint32, bool) {
	m := amount % 32
	if m == 0 {
		// ROR by a multiple of 32 leaves the value unchanged; carry takes
		// the top bit, matching a rotate that just completed a full turn.
		return value, value&0x8000_0000 != 0
	}
	result := (value >> m) | (value << (32 - m))
	carryOut := (value>>(m-1))&1 != 0
	return result, carryOut
}

// rrx implements ROR #0's re-encoding as a 33-bit rotate through the carry
// flag.
func rrx(value uint32, carryIn bool) (uint32, bool) {
	result := value >> 1
	if carryIn {
		result |= 0x8000_0000
	}
	return result, value&1 != 0
}
