// Package dma implements the DMA Controller (component D): four channels,
// each a small state machine (idle, armed, transferring), arbitrated so
// that the lowest-numbered triggered channel runs first and CPU execution
// halts for the duration of a burst.
//
// The state machine shape follows hardware/riot/timer's Timer (an explicit
// Divider/TicksRemaining/ReadMemory/Step machine driven by register writes
// and a Step() called once per CPU cycle), generalised to four channels and
// an event interface (OnHBlank/OnVBlank) rather than the shared-struct
// callback style of original_source/source/core/core.c.
package dma
