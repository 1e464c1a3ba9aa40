package pipeline

import (
	"fmt"

	"github.com/ajainPSU/ECE486-Project/emu"
	"github.com/ajainPSU/ECE486-Project/insts"
)

// DefaultMaxCycles bounds a timing run so a program that never reaches
// HALT cannot spin forever.
const DefaultMaxCycles = 200_000

// RunResult summarizes a completed timing-mode run.
type RunResult struct {
	// FinalPC is the architectural PC when the run ended. After a HALT
	// commit it is the halt address plus 4.
	FinalPC uint32

	// Halted is true when a HALT instruction committed in WB. False
	// means the pipeline drained without one (fetch ran off memory).
	Halted bool

	// Stats holds the timing statistics for the run.
	Stats Statistics
}

// Pipeline simulates a 5-stage in-order pipeline (IF, ID, EX, MEM, WB)
// over a functional emulator. Branches resolve in EX with
// always-not-taken speculation; a taken branch squashes the two younger
// instructions and redirects fetch in the same cycle.
//
// Data hazards are handled per the selected policy: without forwarding,
// a consumer stalls in ID until its producer has left MEM; with
// forwarding, EX operands come from the MEM and WB latches and only the
// load-use case stalls, for exactly one cycle.
//
// Architectural state changes happen in one place: WB commits each
// instruction through the emulator's Execute, so every timing mode
// retires the exact semantics of functional mode.
type Pipeline struct {
	emulator *emu.Emulator
	decoder  *insts.Decoder
	hazard   *HazardUnit
	tracer   Tracer

	forwarding bool
	maxCycles  uint64

	stages [stageCount]Latch

	// pc is the address of the next instruction to fetch.
	pc uint32

	// fetchStopped is set when a HALT has been fetched or the PC ran
	// past the end of memory. A taken branch clears it: the fetched
	// HALT was speculative.
	fetchStopped bool

	halted  bool
	finalPC uint32

	stats Statistics
}

// PipelineOption is a functional option for configuring the Pipeline.
type PipelineOption func(*Pipeline)

// WithForwarding enables operand forwarding. Without it, every RAW
// hazard stalls until the producer commits.
func WithForwarding() PipelineOption {
	return func(p *Pipeline) {
		p.forwarding = true
	}
}

// WithTracer sets a tracer for pipeline events.
func WithTracer(t Tracer) PipelineOption {
	return func(p *Pipeline) {
		p.tracer = t
	}
}

// WithMaxCycles sets the cycle ceiling. A value of 0 means no limit.
func WithMaxCycles(max uint64) PipelineOption {
	return func(p *Pipeline) {
		p.maxCycles = max
	}
}

// NewPipeline creates a pipeline over the given emulator. The emulator
// carries the architectural state; the pipeline owns the timing.
func NewPipeline(emulator *emu.Emulator, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		emulator:  emulator,
		decoder:   insts.NewDecoder(),
		hazard:    NewHazardUnit(),
		tracer:    nopTracer{},
		maxCycles: DefaultMaxCycles,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Stats returns the timing statistics accumulated so far.
func (p *Pipeline) Stats() Statistics {
	return p.stats
}

// StageLatch returns a copy of the latch for the given stage.
func (p *Pipeline) StageLatch(s Stage) Latch {
	return p.stages[s]
}

// Tick simulates one clock cycle. Stages are evaluated in reverse
// order (MEM, EX, ID, IF) on the instructions currently occupying
// them, then the pipeline shifts atomically and the instruction
// entering WB commits.
func (p *Pipeline) Tick() error {
	p.stats.Cycles++
	p.tracer.CycleStart(p.stats.Cycles)

	p.memStage()

	flush, target := p.exStage()

	stall := false
	if !flush {
		stall = p.idStage()
	}

	if flush {
		p.stats.Flushes += 2
		p.tracer.Flush(p.stats.Cycles, target)
		p.pc = target
		p.fetchStopped = false
	}

	p.shift(stall, flush)

	if !stall {
		if err := p.fetch(); err != nil {
			return err
		}
	}

	return p.writeback()
}

// memStage performs the data-memory read for a LDW, replacing the
// effective address in the latch with the loaded value so EX can
// forward it this same cycle. Errors surface at commit.
func (p *Pipeline) memStage() {
	mem := &p.stages[StageMEM]
	if !mem.Valid || mem.Inst.Op != insts.OpLDW {
		return
	}

	value, err := p.emulator.Memory().ReadWord(uint32(mem.Result))
	if err != nil {
		return
	}
	mem.Result = value
}

// exStage computes results and resolves branches for the instruction
// in EX. It reports whether a taken branch squashes the younger stages
// and where fetch should resume.
func (p *Pipeline) exStage() (flush bool, target uint32) {
	ex := &p.stages[StageEX]
	if !ex.Valid {
		return false, 0
	}

	rs := p.operand(ex.Inst.Rs)
	rt := p.operand(ex.Inst.Rt)
	inst := ex.Inst

	switch {
	case inst.IsBranch():
		taken, resolvedTarget := emu.BranchOutcome(inst, ex.PC, rs, rt)
		ex.BranchTaken = taken
		ex.BranchTarget = resolvedTarget
		if taken {
			return true, resolvedTarget
		}

	case inst.Op == insts.OpLDW || inst.Op == insts.OpSTW:
		ex.Result = int32(emu.EffectiveAddress(inst, rs))

	default:
		ex.Result = emu.ALUResult(inst, rs, rt)
	}

	return false, 0
}

// operand resolves a source register value for EX. With forwarding it
// walks the MEM latch, the WB latch, then the register file; without,
// the register file alone is correct because stalls have already
// ordered the producer's commit before this read.
func (p *Pipeline) operand(reg uint8) int32 {
	if p.forwarding {
		return p.hazard.ForwardedValue(
			reg, p.emulator.RegFile(),
			&p.stages[StageMEM], &p.stages[StageWB],
		)
	}
	return p.emulator.RegFile().ReadReg(reg)
}

// idStage runs hazard detection for the instruction in decode and
// reports whether the front of the pipeline must stall this cycle.
func (p *Pipeline) idStage() bool {
	id := &p.stages[StageID]
	if !id.Valid {
		return false
	}

	var stall bool
	if p.forwarding {
		stall = p.hazard.LoadUseHazard(id.Inst, &p.stages[StageEX])
	} else {
		stall = p.hazard.RAWHazard(id.Inst, &p.stages[StageEX], &p.stages[StageMEM])
	}

	if stall {
		p.stats.Stalls++
		p.tracer.Stall(p.stats.Cycles, id.PC, id.Inst)
	}
	return stall
}

// shift advances the pipeline one stage. A stall freezes IF and ID and
// feeds a bubble into EX; a flush squashes IF and ID behind the taken
// branch.
func (p *Pipeline) shift(stall, flush bool) {
	p.stages[StageWB] = p.stages[StageMEM]
	p.stages[StageMEM] = p.stages[StageEX]

	switch {
	case stall:
		p.stages[StageEX].Clear()
	case flush:
		p.stages[StageEX].Clear()
		p.stages[StageID].Clear()
		p.stages[StageIF].Clear()
	default:
		p.stages[StageEX] = p.stages[StageID]
		p.stages[StageID] = p.stages[StageIF]
		p.stages[StageIF].Clear()
	}
}

// fetch brings the next instruction into IF. Fetch stops at a HALT or
// when the PC runs past the end of memory; the pipeline then drains.
func (p *Pipeline) fetch() error {
	if p.fetchStopped {
		return nil
	}

	if p.pc >= emu.MemSizeBytes {
		p.fetchStopped = true
		return nil
	}

	word, err := p.emulator.Memory().Fetch(p.pc)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	inst := p.decoder.Decode(word)
	p.stages[StageIF] = Latch{Valid: true, PC: p.pc, Inst: inst}

	if inst.Op == insts.OpHALT {
		p.fetchStopped = true
	}

	p.pc += emu.WordSize
	return nil
}

// writeback commits the instruction that just entered WB through the
// emulator. The shift overwrites WB every cycle, so each instruction
// commits exactly once; the latch stays visible to the forwarding
// chain until then.
func (p *Pipeline) writeback() error {
	wb := &p.stages[StageWB]
	if !wb.Valid {
		return nil
	}

	result, err := p.emulator.Execute(wb.Inst, wb.PC)
	if err != nil {
		return fmt.Errorf("commit at PC=0x%X: %w", wb.PC, err)
	}

	p.stats.Instructions++
	p.tracer.Commit(p.stats.Cycles, wb.PC, wb.Inst)
	p.finalPC = result.NextPC

	if result.Halted {
		p.halted = true
	}

	return nil
}

func (p *Pipeline) empty() bool {
	for i := range p.stages {
		if p.stages[i].Valid {
			return false
		}
	}
	return true
}

// Run simulates cycles until a HALT commits, the pipeline drains
// without one, or the cycle ceiling is hit.
func (p *Pipeline) Run() (RunResult, error) {
	for {
		if p.maxCycles > 0 && p.stats.Cycles >= p.maxCycles {
			return RunResult{FinalPC: p.finalPC, Stats: p.stats},
				fmt.Errorf("cycle limit of %d reached without HALT", p.maxCycles)
		}

		if err := p.Tick(); err != nil {
			return RunResult{FinalPC: p.finalPC, Stats: p.stats}, err
		}

		if p.halted {
			return RunResult{FinalPC: p.finalPC, Halted: true, Stats: p.stats}, nil
		}

		if p.fetchStopped && p.empty() {
			return RunResult{FinalPC: p.finalPC, Stats: p.stats}, nil
		}
	}
}
