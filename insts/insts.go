// Package insts provides MIPS-lite instruction definitions and decoding.
//
// This package implements decoding of 32-bit MIPS-lite machine words into
// structured instruction representations. The ISA has 18 opcodes in two
// encoding formats:
//   - R-format: ADD, SUB, MUL, OR, AND, XOR
//   - I-format: ADDI, SUBI, MULI, ORI, ANDI, XORI, LDW, STW, BZ, BEQ,
//     JR, HALT (JR and HALT ignore the immediate field)
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x04220010) // ADDI R2, R1, #16
//	fmt.Printf("Op: %v, Rt: %d, Rs: %d, Imm: %d\n", inst.Op, inst.Rt, inst.Rs, inst.Imm)
package insts

// Op represents a MIPS-lite opcode. The constant values are the 6-bit
// opcode field encodings.
type Op uint8

// MIPS-lite opcodes.
const (
	OpADD  Op = 0x00
	OpADDI Op = 0x01
	OpSUB  Op = 0x02
	OpSUBI Op = 0x03
	OpMUL  Op = 0x04
	OpMULI Op = 0x05
	OpOR   Op = 0x06
	OpORI  Op = 0x07
	OpAND  Op = 0x08
	OpANDI Op = 0x09
	OpXOR  Op = 0x0A
	OpXORI Op = 0x0B
	OpLDW  Op = 0x0C
	OpSTW  Op = 0x0D
	OpBZ   Op = 0x0E
	OpBEQ  Op = 0x0F
	OpJR   Op = 0x10
	OpHALT Op = 0x11
	OpNOP  Op = 0x12
)

// String returns the opcode mnemonic.
func (op Op) String() string {
	switch op {
	case OpADD:
		return "ADD"
	case OpADDI:
		return "ADDI"
	case OpSUB:
		return "SUB"
	case OpSUBI:
		return "SUBI"
	case OpMUL:
		return "MUL"
	case OpMULI:
		return "MULI"
	case OpOR:
		return "OR"
	case OpORI:
		return "ORI"
	case OpAND:
		return "AND"
	case OpANDI:
		return "ANDI"
	case OpXOR:
		return "XOR"
	case OpXORI:
		return "XORI"
	case OpLDW:
		return "LDW"
	case OpSTW:
		return "STW"
	case OpBZ:
		return "BZ"
	case OpBEQ:
		return "BEQ"
	case OpJR:
		return "JR"
	case OpHALT:
		return "HALT"
	case OpNOP:
		return "NOP"
	default:
		return "UNKNOWN"
	}
}

// Format represents an instruction encoding format.
type Format uint8

// Instruction formats.
const (
	FormatInvalid Format = iota // unrecognized opcode, treated as a NOP
	FormatR                     // op | rs | rt | rd | unused
	FormatI                     // op | rs | rt | imm16
)

// Category classifies an instruction for run statistics.
type Category uint8

// Instruction categories.
const (
	CategoryNone       Category = iota // NOP and invalid encodings
	CategoryArithmetic                 // ADD, ADDI, SUB, SUBI, MUL, MULI
	CategoryLogical                    // OR, ORI, AND, ANDI, XOR, XORI
	CategoryMemory                     // LDW, STW
	CategoryControl                    // BZ, BEQ, JR, HALT
)

// String returns the category name used in reports.
func (c Category) String() string {
	switch c {
	case CategoryArithmetic:
		return "Arithmetic"
	case CategoryLogical:
		return "Logical"
	case CategoryMemory:
		return "Memory access"
	case CategoryControl:
		return "Control transfer"
	default:
		return "None"
	}
}

// Instruction represents a decoded MIPS-lite instruction.
type Instruction struct {
	Op     Op     // Operation code
	Format Format // Encoding format

	Rs uint8 // First source register, bits [25:21]
	Rt uint8 // Second source or destination register, bits [20:16]
	Rd uint8 // Destination register (R-format only), bits [15:11]

	// Imm is the 16-bit immediate field sign-extended at decode time.
	Imm int32
}

// IsNop reports whether the instruction has no architectural effect.
func (i Instruction) IsNop() bool {
	return i.Op == OpNOP
}

// IsBranch reports whether the instruction can redirect control flow.
// HALT is not a branch: it ends the run rather than retargeting fetch.
func (i Instruction) IsBranch() bool {
	return i.Op == OpBZ || i.Op == OpBEQ || i.Op == OpJR
}

// DestReg returns the register the instruction writes, if any. R-format
// ALU instructions write Rd; immediate ALU instructions and LDW write Rt.
// Register 0 is hardwired to zero, so it is excluded here once for every
// hazard-detection and writeback consumer.
func (i Instruction) DestReg() (uint8, bool) {
	var dest uint8
	switch i.Op {
	case OpADD, OpSUB, OpMUL, OpOR, OpAND, OpXOR:
		dest = i.Rd
	case OpADDI, OpSUBI, OpMULI, OpORI, OpANDI, OpXORI, OpLDW:
		dest = i.Rt
	default:
		return 0, false
	}
	if dest == 0 {
		return 0, false
	}
	return dest, true
}

// WritesReg reports whether the instruction writes a register other than
// register 0.
func (i Instruction) WritesReg() bool {
	_, ok := i.DestReg()
	return ok
}

// UsesRs reports whether Rs is a true source operand. Register 0 always
// reads zero and can never carry a dependence.
func (i Instruction) UsesRs() bool {
	switch i.Op {
	case OpHALT, OpNOP:
		return false
	}
	if i.Format == FormatInvalid {
		return false
	}
	return i.Rs != 0
}

// UsesRt reports whether Rt is a true source operand. Rt is a source for
// R-format ALU instructions, for BEQ (comparison operand), and for STW
// (the value being stored).
func (i Instruction) UsesRt() bool {
	switch i.Op {
	case OpADD, OpSUB, OpMUL, OpOR, OpAND, OpXOR, OpBEQ, OpSTW:
		return i.Rt != 0
	}
	return false
}

// SourceRegs returns the registers the instruction reads, excluding
// register 0.
func (i Instruction) SourceRegs() []uint8 {
	var srcs []uint8
	if i.UsesRs() {
		srcs = append(srcs, i.Rs)
	}
	if i.UsesRt() {
		srcs = append(srcs, i.Rt)
	}
	return srcs
}

// Category returns the statistics category for the instruction.
func (i Instruction) Category() Category {
	switch i.Op {
	case OpADD, OpADDI, OpSUB, OpSUBI, OpMUL, OpMULI:
		return CategoryArithmetic
	case OpOR, OpORI, OpAND, OpANDI, OpXOR, OpXORI:
		return CategoryLogical
	case OpLDW, OpSTW:
		return CategoryMemory
	case OpBZ, OpBEQ, OpJR, OpHALT:
		return CategoryControl
	default:
		return CategoryNone
	}
}
