package dma

import (
	"github.com/gba-core/gba/hardware/memory/bus"
	"github.com/gba-core/gba/logger"
)

// registerBase is the offset, within the 1 KiB I/O window, of DMA0SAD - the
// first byte of the first channel's register block: source, destination,
// count and control for channels 0-3, 12 bytes each.
const registerBase = 0x00B0

// bytesPerChannel is the size of one channel's register block: a 32-bit
// source latch, a 32-bit destination latch, a 16-bit count and a 16-bit
// control word.
const bytesPerChannel = 12

// IRQLine lets the DMA controller request a channel's "transfer complete"
// interrupt without depending on the CPU package - the IRQ index for
// channel n is IRQLine's caller's business (typically IRQ_DMA0+n).
type IRQLine interface {
	RequestDMA(channel int)
}

// Controller owns the four DMA channels and arbitrates between them.
type Controller struct {
	channels [4]Channel
	irq      IRQLine
}

// NewController creates a Controller with all four channels idle, per
// created at reset, all zero.
func NewController(irq IRQLine) *Controller {
	c := &Controller{irq: irq}
	for i := range c.channels {
		c.channels[i].Number = i
	}
	return c
}

// Reset returns every channel to its idle, all-zero state.
func (c *Controller) Reset() {
	for i := range c.channels {
		c.channels[i] = Channel{Number: i}
	}
}

// Channel returns a read-only view of channel n's state, for debugger
// integration. Panics if n is out of range - callers are expected to loop
// 0..3; this is programmer error, not something a Go error return should
// paper over.
func (c *Controller) Channel(n int) Channel {
	return c.channels[n]
}

// Clone returns an independent copy of c wired to a different IRQLine -
// used by Core.Snapshot, which needs the copy's channels to report DMA
// completion against the snapshot's own memory bank rather than the
// original's.
func (c *Controller) Clone(irq IRQLine) *Controller {
	clone := &Controller{irq: irq}
	clone.channels = c.channels
	return clone
}

// ReadByte reads one byte from the DMA register block at ioOffset, an
// offset relative to the start of the 1 KiB I/O window. ok is false if
// ioOffset does not fall within any channel's register block.
func (c *Controller) ReadByte(ioOffset uint32) (v uint8, ok bool) {
	ch, pos, ok := c.locate(ioOffset)
	if !ok {
		return 0, false
	}
	return ch.readByte(pos), true
}

// WriteByte writes one byte into the DMA register block at ioOffset. Writes
// to the high byte of the control word (pos 11) may arm the channel; see
// arm().
func (c *Controller) WriteByte(ioOffset uint32, v uint8) (ok bool) {
	idx, pos, ok := c.index(ioOffset)
	if !ok {
		return false
	}
	ch := &c.channels[idx]

	wasEnabled := ch.ctrl.enabled()
	ch.writeByte(pos, v)

	if pos == 11 && !wasEnabled && ch.ctrl.enabled() {
		c.arm(idx)
	} else if pos == 11 && wasEnabled && !ch.ctrl.enabled() {
		ch.armed = false
		ch.st = idle
	}
	return true
}

func (c *Controller) locate(ioOffset uint32) (*Channel, uint32, bool) {
	idx, pos, ok := c.index(ioOffset)
	if !ok {
		return nil, 0, false
	}
	return &c.channels[idx], pos, true
}

func (c *Controller) index(ioOffset uint32) (idx int, pos uint32, ok bool) {
	if ioOffset < registerBase || ioOffset >= registerBase+4*bytesPerChannel {
		return 0, 0, false
	}
	rel := ioOffset - registerBase
	return int(rel / bytesPerChannel), rel % bytesPerChannel, true
}

func (ch *Channel) readByte(pos uint32) uint8 {
	switch {
	case pos < 4:
		return uint8(ch.src >> (8 * pos))
	case pos < 8:
		return uint8(ch.dst >> (8 * (pos - 4)))
	case pos < 10:
		return uint8(ch.count >> (8 * (pos - 8)))
	default:
		return uint8(uint16(ch.ctrl) >> (8 * (pos - 10)))
	}
}

func (ch *Channel) writeByte(pos uint32, v uint8) {
	shift := uint(8 * (pos % 4))
	switch {
	case pos < 4:
		ch.src = setByte(ch.src, shift, v)
	case pos < 8:
		ch.dst = setByte(ch.dst, shift, v)
	case pos < 10:
		shift = uint(8 * (pos - 8))
		ch.count = uint32(setByte(uint32(uint16(ch.count)), shift, v))
	default:
		shift = uint(8 * (pos - 10))
		ch.ctrl = control(setByte(uint32(uint16(ch.ctrl)), shift, v))
	}
}

func setByte(word uint32, shift uint, v uint8) uint32 {
	mask := uint32(0xFF) << shift
	return (word &^ mask) | (uint32(v) << shift)
}

// arm performs the 0->1 enable-bit transition: latch
// src/dst/count/control and move the channel to Armed. Immediate-timing
// channels are left Armed here; the scheduler drains them via
// RunImmediate before the CPU executes its next instruction.
func (c *Controller) arm(idx int) {
	ch := &c.channels[idx]
	ch.srcLatch = ch.src
	ch.dstLatch = ch.dst
	ch.countLatch = ch.count
	ch.armed = true
	ch.st = armed
	logger.Logf(logger.Allow, "dma", "channel %d armed (timing=%d width=%d count=%d)",
		idx, ch.ctrl.timing(), ch.ctrl.width(), ch.unitCount())
}

// RunImmediate drains every channel armed for Immediate timing, lowest
// index first, until none remain armed for Immediate - the "scheduler
// drains armed channels before returning to the CPU.
// It returns the total number of cycles consumed.
func (c *Controller) RunImmediate(b bus.DMABus) int {
	total := 0
	for {
		idx, ok := c.nextTriggered(Immediate)
		if !ok {
			return total
		}
		total += c.run(idx, b)
	}
}

// OnHBlank triggers every channel armed for HBlank timing except channel 0,
// which is excluded from HBlank DMA on real hardware.
func (c *Controller) OnHBlank(b bus.DMABus) int {
	total := 0
	for {
		idx, ok := c.nextTriggeredExcluding(HBlank, 0)
		if !ok {
			return total
		}
		total += c.run(idx, b)
	}
}

// OnVBlank triggers every channel armed for VBlank timing.
func (c *Controller) OnVBlank(b bus.DMABus) int {
	total := 0
	for {
		idx, ok := c.nextTriggered(VBlank)
		if !ok {
			return total
		}
		total += c.run(idx, b)
	}
}

// OnFIFONeeded triggers the given channel (1 or 2) if it is armed for
// Special timing, forcing the FIFO-A/B refill shape: 32-bit,
// fixed destination, 4 units, regardless of the channel's configured count
// and destination control.
func (c *Controller) OnFIFONeeded(channel int, b bus.DMABus) int {
	if channel != 1 && channel != 2 {
		return 0
	}
	ch := &c.channels[channel]
	if !ch.armed || ch.ctrl.timing() != Special {
		return 0
	}
	return c.runFIFO(channel, b)
}

// nextTriggered returns the lowest-numbered channel armed for the given
// timing.
func (c *Controller) nextTriggered(t Timing) (int, bool) {
	for i := range c.channels {
		ch := &c.channels[i]
		if ch.armed && ch.st == armed && ch.ctrl.timing() == t {
			return i, true
		}
	}
	return 0, false
}

func (c *Controller) nextTriggeredExcluding(t Timing, exclude int) (int, bool) {
	for i := range c.channels {
		if i == exclude {
			continue
		}
		ch := &c.channels[i]
		if ch.armed && ch.st == armed && ch.ctrl.timing() == t {
			return i, true
		}
	}
	return 0, false
}
