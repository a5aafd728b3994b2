// Package memory implements the Memory Bank (component B) and, in its io
// sub-package, the I/O Register File (component C).
//
// Bank owns the eight raw byte arrays for the GBA's regions (BIOS, EWRAM,
// IWRAM, PALRAM, VRAM, OAM, ROM and cartridge SRAM), hands the I/O window
// to the io sub-package, and
// implements the aligned/unaligned 8/16/32-bit read and write semantics on
// top of the address decoder in the memorymap sub-package.
package memory
