package dma

// AddrControl selects how a channel's source or destination address moves
// after each unit transfer.
type AddrControl uint8

// The four addressing modes shared by source and destination control
// fields (destination additionally supports IncrementReload).
const (
	Increment AddrControl = iota
	Decrement
	Fixed
	IncrementReload // destination-only: behaves like Increment, but the
	// latched destination is restored when the channel re-arms for repeat.
)

// Timing selects the event that triggers a channel once armed.
type Timing uint8

// The four DMA start-timing modes.
const (
	Immediate Timing = iota
	VBlank
	HBlank
	Special
)

// Width is the size, in bytes, of each unit a channel transfers.
type Width uint8

// The two transfer widths a channel can be configured for.
const (
	Width16 Width = 2
	Width32 Width = 4
)

// state is the channel's lifecycle position.
type state uint8

const (
	idle state = iota
	armed
	transferring
)

// control is the 16-bit DMAnCNT_H control word, exposed through accessor
// functions over a plain word rather than a packed bit-field struct -
// following the DESIGN NOTES' guidance that this avoids endianness/packing
// dependencies and makes the layout independently testable.
//
// Bit layout (cross-checked against
// original_source/include/memory.h's struct dma_channel.control):
//
//	bits 0-4    unused
//	bits 5-6    destination control
//	bits 7-8    source control
//	bit  9      repeat
//	bit  10     transfer width (0=16bit, 1=32bit)
//	bit  11     gamepak DRQ (channel 3 only; not modelled)
//	bits 12-13  timing
//	bit  14     IRQ on end
//	bit  15     enable
type control uint16

func (c control) dstControl() AddrControl { return AddrControl((c >> 5) & 0b11) }
func (c control) srcControl() AddrControl { return AddrControl((c >> 7) & 0b11) }
func (c control) repeat() bool            { return c&(1<<9) != 0 }
func (c control) width() Width {
	if c&(1<<10) != 0 {
		return Width32
	}
	return Width16
}
func (c control) timing() Timing  { return Timing((c >> 12) & 0b11) }
func (c control) irqOnEnd() bool  { return c&(1<<14) != 0 }
func (c control) enabled() bool   { return c&(1<<15) != 0 }
func (c control) withEnabled(v bool) control {
	if v {
		return c | (1 << 15)
	}
	return c &^ (1 << 15)
}

// Channel is one of the four DMA transfer engines.
type Channel struct {
	// Number is the channel's index, 0-3.
	Number int

	// src/dst/count hold the live register contents as last written by the
	// CPU; srcLatch/dstLatch/countLatch hold the values captured at the
	// 0->1 transition of the enable bit.
	src, dst   uint32
	count      uint32
	ctrl       control
	srcLatch   uint32
	dstLatch   uint32
	countLatch uint32

	// armed is distinct from ctrl.enabled(): armed tracks whether this
	// channel is actively waiting for or running its configured trigger,
	// so that a write that leaves the enable bit at 1 does not re-arm a
	// channel that is already running.
	armed bool
	st    state
}

// countMask returns the count-register's valid bit width: 14 bits for
// channels 0-2, 16 bits for channel 3.
func (c *Channel) countMask() uint32 {
	if c.Number == 3 {
		return 0xFFFF
	}
	return 0x3FFF
}

// unitCount returns the number of transfer units for this burst: a count
// register of zero means "maximum" (the mask+1 value), per GBA convention.
func (c *Channel) unitCount() uint32 {
	n := c.count & c.countMask()
	if n == 0 {
		return c.countMask() + 1
	}
	return n
}
