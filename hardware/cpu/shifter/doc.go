// Package shifter implements the barrel shifter and flag-producing ALU
// shared by most data-processing instructions (component F). The six
// shift-by-zero corner cases are transcribed from
// original_source/source/core/core.c's core_compute_shift rather than
// re-derived, since they are exactly the part of the ARM7TDMI that is easy
// to get subtly wrong from the reference manual alone.
package shifter
