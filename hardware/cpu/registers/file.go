package registers

// File is the ARM7TDMI register file: the sixteen general registers
// visible at any moment, the private banks that back r8-r14 in the modes
// that shadow them, and the current and saved status words.
type File struct {
	r [16]uint32

	sharedR8_12 [5]uint32 // r8-r12 for every mode except FIQ
	fiqR8_12    [5]uint32 // r8-r12 while in FIQ mode

	bankedR13 [6]uint32 // indexed by bankIndex(mode)
	bankedR14 [6]uint32

	cpsr Status
	spsr [6]Status // spsr[0] (User/System) is never valid; HasSPSR guards it
}

// NewFile builds a register file in the reset state: PC at entry, mode
// System, Thumb off, interrupts disabled, every other register zero.
func NewFile(entry uint32) *File {
	f := &File{cpsr: NewStatus(System)}
	f.r[15] = entry
	return f
}

// R returns the current value of r0-r15.
func (f *File) R(n int) uint32 { return f.r[n] }

// SetR overwrites r0-r15 directly. Callers that write r15 are responsible
// for triggering a pipeline reload; File itself has no notion of a
// pipeline.
func (f *File) SetR(n int, v uint32) { f.r[n] = v }

// PC returns the raw value of r15.
func (f *File) PC() uint32 { return f.r[15] }

// SetPC is shorthand for SetR(15, v).
func (f *File) SetPC(v uint32) { f.r[15] = v }

// CPSR returns the current program status word.
func (f *File) CPSR() Status { return f.cpsr }

// SetCPSR replaces the whole status word, including the mode field, which
// switches the visible r8-r14 window if the mode field changed.
func (f *File) SetCPSR(s Status) {
	if s.Mode() != f.cpsr.Mode() {
		f.switchBank(s.Mode())
	}
	f.cpsr = s
}

// SPSR returns the saved status word for the current mode. Reading it in
// User or System mode (which have none) returns the CPSR unchanged, since
// the ARM reference leaves this case as unpredictable and returning
// something well-defined is preferable to a zero value.
func (f *File) SPSR() Status {
	if !f.cpsr.Mode().HasSPSR() {
		return f.cpsr
	}
	return f.spsr[bankIndex(f.cpsr.Mode())]
}

// SetSPSR writes the saved status word for the current mode. A no-op in
// User or System mode.
func (f *File) SetSPSR(s Status) {
	if !f.cpsr.Mode().HasSPSR() {
		return
	}
	f.spsr[bankIndex(f.cpsr.Mode())] = s
}

// switchBank saves r8-r14 for the outgoing mode and loads them for the
// incoming one. r8-r12 are only banked in FIQ; every other mode shares one
// copy.
func (f *File) switchBank(newMode Mode) {
	oldMode := f.cpsr.Mode()
	if oldMode == newMode {
		return
	}

	if oldMode == FIQ {
		copy(f.fiqR8_12[:], f.r[8:13])
	} else {
		copy(f.sharedR8_12[:], f.r[8:13])
	}
	f.bankedR13[bankIndex(oldMode)] = f.r[13]
	f.bankedR14[bankIndex(oldMode)] = f.r[14]

	if newMode == FIQ {
		copy(f.r[8:13], f.fiqR8_12[:])
	} else {
		copy(f.r[8:13], f.sharedR8_12[:])
	}
	f.r[13] = f.bankedR13[bankIndex(newMode)]
	f.r[14] = f.bankedR14[bankIndex(newMode)]
}

// UserR reads r0-r14 as User/System mode sees them, regardless of the
// current mode - the register window LDM/STM's S-bit selects for a block
// transfer that doesn't touch r15. r0-r7 and r15 aren't banked at all, so
// they read the same as R.
func (f *File) UserR(n int) uint32 {
	switch {
	case n < 8 || n == 15:
		return f.r[n]
	case n <= 12:
		if f.cpsr.Mode() == FIQ {
			return f.sharedR8_12[n-8]
		}
		return f.r[n]
	case n == 13:
		if bankIndex(f.cpsr.Mode()) == 0 {
			return f.r[13]
		}
		return f.bankedR13[0]
	default: // 14
		if bankIndex(f.cpsr.Mode()) == 0 {
			return f.r[14]
		}
		return f.bankedR14[0]
	}
}

// SetUserR is UserR's write counterpart.
func (f *File) SetUserR(n int, v uint32) {
	switch {
	case n < 8 || n == 15:
		f.r[n] = v
	case n <= 12:
		if f.cpsr.Mode() == FIQ {
			f.sharedR8_12[n-8] = v
		} else {
			f.r[n] = v
		}
	case n == 13:
		if bankIndex(f.cpsr.Mode()) == 0 {
			f.r[13] = v
		} else {
			f.bankedR13[0] = v
		}
	default: // 14
		if bankIndex(f.cpsr.Mode()) == 0 {
			f.r[14] = v
		} else {
			f.bankedR14[0] = v
		}
	}
}

// EnterMode performs the register side of an exception entry: switch to
// newMode, save the outgoing CPSR to the new mode's SPSR, and return the
// old CPSR so the caller can derive the return address it came from. It
// does not touch PC, the T-bit or the interrupt-disable bits - those are
// exception-specific and set by the caller after EnterMode returns.
func (f *File) EnterMode(newMode Mode) (old Status) {
	old = f.cpsr
	f.SetCPSR(old.WithMode(newMode))
	f.SetSPSR(old)
	return old
}
