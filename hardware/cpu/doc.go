// Package cpu is the pipeline and scheduling layer (component I): it wraps
// the register file, the ARM and Thumb decoders and the memory bus into a
// single fetch-decode-execute loop, and folds in the two pieces of state
// that sit outside any one instruction - the three-stage pipeline and the
// IRQ poll that happens between instructions rather than inside one.
//
// Pipeline convention. A real ARM7TDMI fetches the next instruction while
// the current one executes, so by the time Execute reads r15 it already
// points two instructions ahead (PC+8 in ARM state, PC+4 in Thumb - both
// packages' doc comments spell this out from the decoder's side). Step
// reproduces that by keeping one fetched-but-not-yet-run word in latch:
// entering Step, PC already reads as the latched instruction's address
// plus one instruction width, matching what arm.Execute/thumb.Execute
// expect. Step takes the latch, fetches the next word into it, advances
// PC by one more width, and only then runs the instruction - at which
// point PC reads two widths ahead of the instruction actually executing,
// exactly as the decoders assume.
//
// A taken branch, a mode switch or an exception entry invalidates both
// prefetch stages at once. The ARM7TDMI data sheet describes a reload as
// "PC is written, then two fetches", but a literal second fetch beyond the
// first would discard the branch target and execute the instruction after
// it instead. primePipeline performs the single fetch that actually
// matters - the first instruction at the new PC - and leaves the "two
// fetches" language to describe the two-cycle latency a real reload costs
// against the instruction stream, not two fetch calls in this code.
package cpu
