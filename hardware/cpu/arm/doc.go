// Package arm decodes and executes 32-bit ARM instructions (component G).
//
// Execute assumes its caller (the pipeline package) has already advanced
// regs.PC() to point two instructions past the one being executed, matching
// the ARM7TDMI's three-stage pipeline: an operand read of r15 during
// execution sees the address of the current instruction plus 8, not its own
// address. Branch target arithmetic and the PC+12 value stored by STM's r15
// slot both rely on that convention already holding when Execute is called.
//
// The condition-code, data-processing and PSR-transfer decoding here follows
// the ARM7TDMI reference architecture manual's actual bit layout rather than
// the buggy comparison-inside-argument-list some C ports of this decoder are
// known to carry (a stray `bitfield_get_range(op, 23, 25 == 0b10)` that
// always evaluates the inner comparison against nothing meaningful): MRS and
// MSR are told apart by bit 21, and the field mask that gates a partial-PSR
// write is read from bits 16-19 of the instruction word for both the
// register and the immediate form of MSR.
package arm
