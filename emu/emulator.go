package emu

import (
	"fmt"

	"github.com/ajainPSU/ECE486-Project/insts"
)

// DefaultMaxInstructions bounds a functional run so a program that
// never reaches HALT cannot loop forever.
const DefaultMaxInstructions = 1_000_000

// ExecResult represents the architectural effect of one instruction.
type ExecResult struct {
	// NextPC is the address of the next instruction in program order,
	// or the branch target when the instruction is a taken branch.
	NextPC uint32

	// BranchTaken is true when a control-transfer instruction
	// redirected the PC. BranchTarget is meaningful only in that case.
	BranchTaken  bool
	BranchTarget uint32

	// Halted is true when the instruction was HALT.
	Halted bool
}

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Halted is true if the program reached HALT.
	Halted bool

	// Err is set if an error occurred during execution.
	Err error
}

// RunResult summarizes a completed functional-mode run.
type RunResult struct {
	// FinalPC is the PC value when the run ended. After HALT it is the
	// halt address plus 4.
	FinalPC uint32

	// Halted is true when the run ended at a HALT instruction. False
	// means fetch ran off the end of memory without halting.
	Halted bool
}

// Emulator executes MIPS-lite instructions functionally. It is also the
// single source of instruction semantics for the timing pipeline, whose
// writeback stage commits each instruction through Execute.
type Emulator struct {
	regFile *RegFile
	memory  *Memory
	decoder *insts.Decoder

	pc     uint32
	halted bool
	counts Counts

	maxInstructions uint64
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithMaxInstructions sets the maximum number of instructions to
// execute. A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// NewEmulator creates a new MIPS-lite emulator with zeroed registers
// and memory.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		regFile:         &RegFile{},
		memory:          NewMemory(),
		decoder:         insts.NewDecoder(),
		maxInstructions: DefaultMaxInstructions,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// PC returns the current program counter.
func (e *Emulator) PC() uint32 {
	return e.pc
}

// Halted reports whether a HALT instruction has been executed.
func (e *Emulator) Halted() bool {
	return e.halted
}

// Counts returns the retired-instruction statistics.
func (e *Emulator) Counts() Counts {
	return e.counts
}

// LoadProgram places a program image at address 0 and resets the PC to
// the first instruction.
func (e *Emulator) LoadProgram(words []uint32) {
	e.memory.LoadWords(words)
	e.pc = 0
}

// Execute applies one instruction's architectural effect: register and
// memory updates, instruction counting, and next-PC selection. It does
// not touch the emulator's own PC, so the timing pipeline can commit
// in-flight instructions through it at writeback.
func (e *Emulator) Execute(inst insts.Instruction, pc uint32) (ExecResult, error) {
	e.counts.Record(inst.Category())

	rs := e.regFile.ReadReg(inst.Rs)
	rt := e.regFile.ReadReg(inst.Rt)

	switch inst.Op {
	case insts.OpADD, insts.OpADDI, insts.OpSUB, insts.OpSUBI,
		insts.OpMUL, insts.OpMULI, insts.OpOR, insts.OpORI,
		insts.OpAND, insts.OpANDI, insts.OpXOR, insts.OpXORI:
		if dest, ok := inst.DestReg(); ok {
			e.regFile.WriteReg(dest, ALUResult(inst, rs, rt))
		}
		return ExecResult{NextPC: pc + WordSize}, nil

	case insts.OpLDW:
		addr := EffectiveAddress(inst, rs)
		value, err := e.memory.ReadWord(addr)
		if err != nil {
			return ExecResult{}, fmt.Errorf("%v at PC=0x%X: %w", inst.Op, pc, err)
		}
		if dest, ok := inst.DestReg(); ok {
			e.regFile.WriteReg(dest, value)
		}
		return ExecResult{NextPC: pc + WordSize}, nil

	case insts.OpSTW:
		addr := EffectiveAddress(inst, rs)
		if err := e.memory.WriteWord(addr, rt); err != nil {
			return ExecResult{}, fmt.Errorf("%v at PC=0x%X: %w", inst.Op, pc, err)
		}
		return ExecResult{NextPC: pc + WordSize}, nil

	case insts.OpBZ, insts.OpBEQ, insts.OpJR:
		taken, target := BranchOutcome(inst, pc, rs, rt)
		if !taken {
			return ExecResult{NextPC: pc + WordSize}, nil
		}
		return ExecResult{
			NextPC:       target,
			BranchTaken:  true,
			BranchTarget: target,
		}, nil

	case insts.OpHALT:
		// HALT retires like any instruction: PC advances past it.
		return ExecResult{NextPC: pc + WordSize, Halted: true}, nil

	default:
		// NOP and invalid encodings.
		return ExecResult{NextPC: pc + WordSize}, nil
	}
}

// Step executes a single instruction at the current PC.
func (e *Emulator) Step() StepResult {
	if e.halted {
		return StepResult{Halted: true}
	}

	if e.maxInstructions > 0 && e.counts.Total >= e.maxInstructions {
		return StepResult{
			Err: fmt.Errorf("instruction limit of %d reached without HALT", e.maxInstructions),
		}
	}

	word, err := e.memory.Fetch(e.pc)
	if err != nil {
		return StepResult{Err: fmt.Errorf("fetch: %w", err)}
	}

	inst := e.decoder.Decode(word)

	result, err := e.Execute(inst, e.pc)
	if err != nil {
		return StepResult{Err: err}
	}

	e.pc = result.NextPC
	e.halted = result.Halted

	return StepResult{Halted: result.Halted}
}

// Run executes instructions until HALT, until fetch runs past the end
// of memory (an abnormal but reportable end), or until an error occurs.
func (e *Emulator) Run() (RunResult, error) {
	for !e.halted {
		if e.pc >= MemSizeBytes {
			return RunResult{FinalPC: e.pc}, nil
		}

		result := e.Step()
		if result.Err != nil {
			return RunResult{FinalPC: e.pc}, result.Err
		}
	}

	return RunResult{FinalPC: e.pc, Halted: true}, nil
}
