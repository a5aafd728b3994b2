// Package errors is a helper package for the error type, adapted from the
// teacher project's errors package. It defines a single GBAError type, an
// implementation of the error interface built around an Errno and a set of
// format Values, so that call sites don't need to hand-format error strings.
//
// The Host misuse category of the core's error handling design uses this
// package (invalid register index, running without a loaded ROM, a ROM too
// large for the cartridge window), and so do the CPU's unimplemented and
// undefined-coprocessor instruction errors, which reach the host only when
// preferences.CPU.HaltOnUnimplemented is set and are otherwise trapped into
// the guest's Undefined vector. Other guest faults (data/prefetch abort) are
// not surfaced as a Go error; memory accesses outside any mapped region
// return the open-bus value, never a fault.
package errors
