package arm

import (
	gbaerrors "github.com/gba-core/gba/errors"
	"github.com/gba-core/gba/hardware/cpu/registers"
	"github.com/gba-core/gba/hardware/memory/bus"
)

// Result reports the effect of executing one ARM instruction.
type Result struct {
	// PipelineReload is true if the instruction wrote r15 or changed
	// CPSR.T, meaning the caller must refill both prefetch stages before
	// continuing.
	PipelineReload bool
}

// Execute decodes and runs one ARM instruction against regs and mem.
// regs.PC() must already read as this instruction's address plus 8 (see
// the package doc); the caller is responsible for advancing r15 before and
// after calling Execute, exactly as it would on real hardware's pipeline.
func Execute(instr uint32, regs *registers.File, mem bus.CPUBus) (Result, error) {
	if !EvalCondition(instr, regs.CPSR()) {
		return Result{}, nil
	}

	switch {
	case isBranchExchange(instr):
		branchExchange(instr, regs)
		return Result{PipelineReload: true}, nil

	case (instr>>25)&0x7 == 0x5:
		branch(instr, regs)
		return Result{PipelineReload: true}, nil

	case (instr>>25)&0x7 == 0x4:
		wroteR15 := blockDataTransfer(instr, regs, mem)
		return Result{PipelineReload: wroteR15}, nil

	case (instr>>24)&0xF == 0xF:
		softwareInterrupt(regs)
		return Result{PipelineReload: true}, nil

	case isMultiplyLong(instr):
		multiplyLong(instr, regs)
		return Result{}, nil

	case isMultiply(instr):
		multiply(instr, regs)
		return Result{}, nil

	case isHalfwordTransfer(instr):
		halfwordTransfer(instr, regs, mem)
		return Result{}, nil

	case (instr>>25)&0x7 == 0x3 && instr&(1<<4) != 0:
		// Undefined instruction space: bits 27-25 = 011 with bit 4 set
		// (bit 4 clear in this range is LDR/STR with a register offset).
		return Result{}, gbaerrors.New(gbaerrors.UndefinedCoprocessorInstruction, instr, regs.PC()-8)

	case (instr>>25)&0x7 == 0x6 || (instr>>25)&0x7 == 0x7:
		// Coprocessor data transfer / data operation / register transfer.
		// The GBA has no coprocessor, so this is always a fault.
		return Result{}, gbaerrors.New(gbaerrors.UndefinedCoprocessorInstruction, instr, regs.PC()-8)

	case (instr>>26)&0x3 == 0x1:
		wroteR15 := singleDataTransfer(instr, regs, mem)
		return Result{PipelineReload: wroteR15}, nil

	case (instr>>26)&0x3 == 0x0 && isPSRTransfer(instr):
		psrTransfer(instr, regs)
		return Result{}, nil

	case (instr>>26)&0x3 == 0x0:
		wroteR15 := dataProcessing(instr, regs)
		return Result{PipelineReload: wroteR15}, nil
	}

	return Result{}, gbaerrors.New(gbaerrors.UnimplementedInstruction, instr, regs.PC()-8)
}

// TrapUndefined performs the register-file side of vectoring to Undefined
// mode. The pipeline package calls this when Execute returns
// errors.UndefinedCoprocessorInstruction and preferences.CPU.HaltOnUnimplemented
// is false; when it's true the pipeline instead halts and surfaces the
// error, which is why this is exported as a separate step rather than
// folded into Execute.
func TrapUndefined(regs *registers.File) {
	undefinedInstruction(regs)
}
