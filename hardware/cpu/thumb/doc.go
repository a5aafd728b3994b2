// Package thumb decodes and executes the 16-bit Thumb instruction set.
//
// Execute assumes regs.PC() already reads as this instruction's address
// plus 4, the two-stage-ahead pipeline convention the caller realises by
// advancing r15 by 2 (one halfword) twice before calling Execute - the
// Thumb equivalent of the ARM package's PC+8 convention.
//
// Every Thumb instruction is unconditional except format 16 (conditional
// branch), which carries its own 4-bit condition field and evaluates it
// with a local copy of the ARM package's condition check (evalCondition),
// using the same encoding.
package thumb
