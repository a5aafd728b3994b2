package thumb

import (
	gbaerrors "github.com/gba-core/gba/errors"
	"github.com/gba-core/gba/hardware/cpu/registers"
	"github.com/gba-core/gba/hardware/memory/bus"
)

// Result reports the effect of executing one Thumb instruction.
type Result struct {
	// PipelineReload is true if the instruction wrote r15, meaning the
	// caller must refill both prefetch stages before continuing.
	PipelineReload bool
}

// Execute decodes and runs one 16-bit Thumb instruction against regs and
// mem. regs.PC() must already read as this instruction's address plus 4
// (see the package doc).
//
// The format checks are ordered exactly as the ARM7TDMI data sheet's
// format table lists them, working from the most specific bit pattern
// (format 19) down to the least (format 1), since several of the wider
// formats are special cases nested inside a narrower one further down
// the table (format 17's SWI sits inside format 16's conditional-branch
// range, and format 2 carves a corner out of format 1's coarser mask,
// checked later).
func Execute(opcode uint16, regs *registers.File, mem bus.CPUBus) (Result, error) {
	switch {
	case opcode&0xF000 == 0xF000:
		reload := execLongBranchWithLink(opcode, regs)
		return Result{PipelineReload: reload}, nil

	case opcode&0xF800 == 0xE000:
		execUnconditionalBranch(opcode, regs)
		return Result{PipelineReload: true}, nil

	case opcode&0xFF00 == 0xDF00:
		execSoftwareInterrupt(regs)
		return Result{PipelineReload: true}, nil

	case opcode&0xF000 == 0xD000:
		reload := execConditionalBranch(opcode, regs)
		return Result{PipelineReload: reload}, nil

	case opcode&0xF000 == 0xC000:
		reload := execMultipleLoadStore(opcode, regs, mem)
		return Result{PipelineReload: reload}, nil

	case opcode&0xF600 == 0xB400:
		reload := execPushPop(opcode, regs, mem)
		return Result{PipelineReload: reload}, nil

	case opcode&0xFF00 == 0xB000:
		execAddOffsetToSP(opcode, regs)
		return Result{}, nil

	case opcode&0xF000 == 0xA000:
		execLoadAddress(opcode, regs)
		return Result{}, nil

	case opcode&0xF000 == 0x9000:
		execSPRelativeLoadStore(opcode, regs, mem)
		return Result{}, nil

	case opcode&0xF000 == 0x8000:
		execLoadStoreHalfword(opcode, regs, mem)
		return Result{}, nil

	case opcode&0xE000 == 0x6000:
		execLoadStoreImmOffset(opcode, regs, mem)
		return Result{}, nil

	case opcode&0xF200 == 0x5200:
		execLoadStoreSignExtended(opcode, regs, mem)
		return Result{}, nil

	case opcode&0xF200 == 0x5000:
		execLoadStoreRegOffset(opcode, regs, mem)
		return Result{}, nil

	case opcode&0xF800 == 0x4800:
		execPCRelativeLoad(opcode, regs, mem)
		return Result{}, nil

	case opcode&0xFC00 == 0x4400:
		reload := execHiRegisterOps(opcode, regs)
		return Result{PipelineReload: reload}, nil

	case opcode&0xFC00 == 0x4000:
		execALUOperations(opcode, regs)
		return Result{}, nil

	case opcode&0xE000 == 0x2000:
		execMovCmpAddSubImm(opcode, regs)
		return Result{}, nil

	case opcode&0xF800 == 0x1800:
		execAddSubtract(opcode, regs)
		return Result{}, nil

	case opcode&0xE000 == 0x0000:
		execMoveShiftedRegister(opcode, regs)
		return Result{}, nil
	}

	return Result{}, gbaerrors.New(gbaerrors.UnimplementedInstruction, uint32(opcode), regs.PC()-4)
}
