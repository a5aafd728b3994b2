// Package memorymap implements the address decoder (component A of the core
// design): given a 32-bit address, it classifies the
// address by region and folds it onto that region's backing array through
// the region's mirror mask.
//
// The GBA has nine real regions, keyed off the top nibble of the address,
// and one of them (VRAM) folds with an asymmetric, non-power-of-two mask -
// see Decode for the details.
package memorymap
