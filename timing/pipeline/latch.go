// Package pipeline provides the 5-stage pipeline implementation for
// timing simulation.
package pipeline

import "github.com/ajainPSU/ECE486-Project/insts"

// Stage identifies a pipeline stage.
type Stage int

// Pipeline stages, in program-flow order.
const (
	StageIF Stage = iota
	StageID
	StageEX
	StageMEM
	StageWB

	stageCount
)

// String returns the stage abbreviation.
func (s Stage) String() string {
	switch s {
	case StageIF:
		return "IF"
	case StageID:
		return "ID"
	case StageEX:
		return "EX"
	case StageMEM:
		return "MEM"
	case StageWB:
		return "WB"
	default:
		return "??"
	}
}

// Latch holds the instruction occupying one pipeline stage. An invalid
// latch is a bubble.
type Latch struct {
	// Valid indicates the latch holds a real instruction.
	Valid bool

	// PC is the address the instruction was fetched from.
	PC uint32

	// Inst is the decoded instruction.
	Inst insts.Instruction

	// Result is filled by the execute stage (ALU result or effective
	// address) and replaced by the loaded value when a LDW passes the
	// memory stage. It feeds the forwarding paths.
	Result int32

	// Branch resolution, filled by the execute stage. BranchTarget is
	// meaningful only when BranchTaken is true.
	BranchTaken  bool
	BranchTarget uint32
}

// Clear resets the latch to a bubble.
func (l *Latch) Clear() {
	*l = Latch{}
}
