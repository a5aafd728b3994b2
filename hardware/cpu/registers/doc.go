// Package registers implements the ARM7TDMI register file (component E):
// the sixteen general registers, the banked copies of r8-r14 that each
// processor mode owns privately, and the current/saved program status
// words. The visible registers[0..15] array is a small typed wrapper (in
// the spirit of a program-counter-shaped Register type) rather than a
// packed struct, and mode banking is a table indexed by Mode rather than a
// dozen named fields.
package registers
