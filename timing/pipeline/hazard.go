package pipeline

import (
	"github.com/ajainPSU/ECE486-Project/emu"
	"github.com/ajainPSU/ECE486-Project/insts"
)

// ForwardSource indicates where a forwarded operand value comes from.
type ForwardSource int

const (
	// ForwardNone means no forwarding needed - use the register file value.
	ForwardNone ForwardSource = iota
	// ForwardFromMEM means forward the result of the instruction in MEM.
	ForwardFromMEM
	// ForwardFromWB means forward the result of the instruction in WB.
	ForwardFromWB
)

// HazardUnit detects data hazards and resolves forwarded operands. The
// destination and source register questions are answered by the
// instruction methods, so both pipeline variants and the functional
// executor agree on them.
type HazardUnit struct{}

// NewHazardUnit creates a new hazard detection unit.
func NewHazardUnit() *HazardUnit {
	return &HazardUnit{}
}

// RAWHazard reports whether the instruction in ID reads a register that
// an instruction in EX or MEM will write. Used by the no-forwarding
// pipeline, which must stall until the producer has committed.
// Instructions in WB commit before decode sees them, so they never
// count.
func (h *HazardUnit) RAWHazard(consumer insts.Instruction, ex, mem *Latch) bool {
	return h.writesSourceOf(consumer, ex) || h.writesSourceOf(consumer, mem)
}

// LoadUseHazard reports whether the instruction in ID consumes the
// destination of a LDW in EX. With forwarding this is the only stall
// condition: the loaded value is one cycle too far away to forward.
func (h *HazardUnit) LoadUseHazard(consumer insts.Instruction, ex *Latch) bool {
	if !ex.Valid || ex.Inst.Op != insts.OpLDW {
		return false
	}
	return h.writesSourceOf(consumer, ex)
}

func (h *HazardUnit) writesSourceOf(consumer insts.Instruction, producer *Latch) bool {
	if !producer.Valid {
		return false
	}

	dest, ok := producer.Inst.DestReg()
	if !ok {
		return false
	}

	if consumer.UsesRs() && consumer.Rs == dest {
		return true
	}
	if consumer.UsesRt() && consumer.Rt == dest {
		return true
	}
	return false
}

// ForwardSourceFor determines where the execute stage should take a
// source register's value from. The MEM latch has priority over the WB
// latch: it carries the younger value.
func (h *HazardUnit) ForwardSourceFor(reg uint8, mem, wb *Latch) ForwardSource {
	// Register 0 always reads 0, never forwarded.
	if reg == 0 {
		return ForwardNone
	}

	if mem.Valid {
		if dest, ok := mem.Inst.DestReg(); ok && dest == reg {
			return ForwardFromMEM
		}
	}

	if wb.Valid {
		if dest, ok := wb.Inst.DestReg(); ok && dest == reg {
			return ForwardFromWB
		}
	}

	return ForwardNone
}

// ForwardedValue resolves a source register's operand value through the
// forwarding chain: MEM latch result, then WB latch result, then the
// register file.
func (h *HazardUnit) ForwardedValue(reg uint8, regFile *emu.RegFile, mem, wb *Latch) int32 {
	switch h.ForwardSourceFor(reg, mem, wb) {
	case ForwardFromMEM:
		return mem.Result
	case ForwardFromWB:
		return wb.Result
	default:
		return regFile.ReadReg(reg)
	}
}
