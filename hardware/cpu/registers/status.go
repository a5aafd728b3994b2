package registers

import "fmt"

// Status is a CPSR or SPSR_<mode> value: four condition flags, the
// interrupt-disable pair, the Thumb bit and the mode field, all packed into
// one plain 32-bit word with getter/setter methods rather than a bit-field
// struct - the layout is documented here once instead of scattered across
// named fields.
//
// Bit layout:
//
//	bit  31   N (negative)
//	bit  30   Z (zero)
//	bit  29   C (carry)
//	bit  28   V (overflow)
//	bit  7    I (IRQ disable)
//	bit  6    F (FIQ disable)
//	bit  5    T (Thumb state)
//	bits 0-4  mode
type Status uint32

const (
	flagN = uint32(1) << 31
	flagZ = uint32(1) << 30
	flagC = uint32(1) << 29
	flagV = uint32(1) << 28
	flagI = uint32(1) << 7
	flagF = uint32(1) << 6
	flagT = uint32(1) << 5
	modeMask = uint32(0x1F)
)

// NewStatus builds a Status word for the given mode with interrupts
// disabled and Thumb off - the state the core enters on reset and on trap
// to an exception mode.
func NewStatus(m Mode) Status {
	return Status(uint32(m) | flagI | flagF)
}

func (s Status) N() bool { return uint32(s)&flagN != 0 }
func (s Status) Z() bool { return uint32(s)&flagZ != 0 }
func (s Status) C() bool { return uint32(s)&flagC != 0 }
func (s Status) V() bool { return uint32(s)&flagV != 0 }
func (s Status) I() bool { return uint32(s)&flagI != 0 }
func (s Status) F() bool { return uint32(s)&flagF != 0 }
func (s Status) T() bool { return uint32(s)&flagT != 0 }

func (s Status) Mode() Mode { return Mode(uint32(s) & modeMask) }

func (s Status) setFlag(flag uint32, v bool) Status {
	if v {
		return Status(uint32(s) | flag)
	}
	return Status(uint32(s) &^ flag)
}

func (s Status) WithN(v bool) Status { return s.setFlag(flagN, v) }
func (s Status) WithZ(v bool) Status { return s.setFlag(flagZ, v) }
func (s Status) WithC(v bool) Status { return s.setFlag(flagC, v) }
func (s Status) WithV(v bool) Status { return s.setFlag(flagV, v) }
func (s Status) WithI(v bool) Status { return s.setFlag(flagI, v) }
func (s Status) WithF(v bool) Status { return s.setFlag(flagF, v) }
func (s Status) WithT(v bool) Status { return s.setFlag(flagT, v) }

// WithMode returns s with its mode field replaced. The condition flags,
// interrupt-disable bits and T-bit are untouched.
func (s Status) WithMode(m Mode) Status {
	return Status((uint32(s) &^ modeMask) | uint32(m))
}

// WithNZ sets N and Z from a computed result, the common case for
// flag-setting data-processing and load instructions.
func (s Status) WithNZ(result uint32) Status {
	return s.WithN(result&0x8000_0000 != 0).WithZ(result == 0)
}

func (s Status) String() string {
	flag := func(b bool, c string) string {
		if b {
			return c
		}
		return "-"
	}
	return fmt.Sprintf("[%s%s%s%s %s%s%s %s]",
		flag(s.N(), "N"), flag(s.Z(), "Z"), flag(s.C(), "C"), flag(s.V(), "V"),
		flag(s.I(), "I"), flag(s.F(), "F"), flag(s.T(), "T"),
		s.Mode())
}
