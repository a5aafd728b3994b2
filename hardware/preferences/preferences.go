// Package preferences collates the configuration knobs for the CPU/bus/DMA
// core: one prefs.Disk-backed group per component, in the shape of a small
// typed struct of prefs.Bool/Int/String values. Only two knobs are exposed
// so far: how to treat an instruction the decoder doesn't recognise, and
// how verbose guest-fault logging should be.
package preferences

import (
	"github.com/gba-core/gba/prefs"
)

// CPU collates the preference values that affect CPU/DMA behaviour in a
// configuration-dependent way.
type CPU struct {
	dsk *prefs.Disk

	// HaltOnUnimplemented selects development-mode behaviour for an
	// instruction the decoder does not recognise: when true, Core.RunFor
	// stops and reports errors.UnimplementedInstruction instead of treating
	// the instruction as Undefined (the release-mode behaviour).
	HaltOnUnimplemented prefs.Bool

	// ExtendedFaultLogging includes a register dump in the log entry
	// emitted for guest faults (undefined instruction, data/prefetch
	// abort) rather than a one-line summary.
	ExtendedFaultLogging prefs.Bool
}

// NewCPU creates a CPU preference set with release-mode defaults and loads
// any saved values from path. A missing file is not an error.
func NewCPU(path string) (*CPU, error) {
	p := &CPU{}
	p.SetDefaults()

	dsk, err := prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}
	p.dsk = dsk

	if err := p.dsk.Add("cpu.haltOnUnimplemented", &p.HaltOnUnimplemented); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("cpu.extendedFaultLogging", &p.ExtendedFaultLogging); err != nil {
		return nil, err
	}
	if err := p.dsk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to their release-mode defaults.
func (p *CPU) SetDefaults() {
	p.HaltOnUnimplemented.Set(false)
	p.ExtendedFaultLogging.Set(false)
}

// Save persists the current preference values.
func (p *CPU) Save() error {
	return p.dsk.Save()
}

func (p *CPU) String() string {
	return p.dsk.String()
}
