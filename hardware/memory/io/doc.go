// Package io implements the I/O Register File (component C): a sparse,
// descriptor-driven map over the 1 KiB I/O window, grounded on the
// teacher's hardware/memory chip_tia.go/chip_riot.go descriptor-dispatch
// style and the register layout given in
// original_source/include/memory.h's enum io_regs and struct dma_channel.
package io
