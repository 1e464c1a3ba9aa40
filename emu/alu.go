package emu

import "github.com/ajainPSU/ECE486-Project/insts"

// ALUResult computes the result of an arithmetic or logical instruction
// from its operand values. The function is pure so the pipeline's
// execute stage can apply it to forwarded operands and the writeback
// commit can apply it to architectural ones, with one set of semantics.
func ALUResult(inst insts.Instruction, rs, rt int32) int32 {
	switch inst.Op {
	case insts.OpADD:
		return rs + rt
	case insts.OpADDI:
		return rs + inst.Imm
	case insts.OpSUB:
		return rs - rt
	case insts.OpSUBI:
		return rs - inst.Imm
	case insts.OpMUL:
		return rs * rt
	case insts.OpMULI:
		return rs * inst.Imm
	case insts.OpOR:
		return rs | rt
	case insts.OpORI:
		return rs | inst.Imm
	case insts.OpAND:
		return rs & rt
	case insts.OpANDI:
		return rs & inst.Imm
	case insts.OpXOR:
		return rs ^ rt
	case insts.OpXORI:
		return rs ^ inst.Imm
	default:
		return 0
	}
}

// EffectiveAddress computes the memory address of a LDW or STW from its
// base register value.
func EffectiveAddress(inst insts.Instruction, rs int32) uint32 {
	return uint32(rs + inst.Imm)
}

// BranchOutcome resolves a control-transfer instruction from its
// operand values. For BZ and BEQ the target is PC + 4 plus the
// word-indexed immediate; JR jumps to the register value and is always
// taken. Target is meaningful only when taken is true.
func BranchOutcome(inst insts.Instruction, pc uint32, rs, rt int32) (taken bool, target uint32) {
	switch inst.Op {
	case insts.OpBZ:
		taken = rs == 0
	case insts.OpBEQ:
		taken = rs == rt
	case insts.OpJR:
		return true, uint32(rs)
	default:
		return false, 0
	}
	if !taken {
		return false, 0
	}
	return true, uint32(int32(pc) + WordSize + inst.Imm*WordSize)
}
