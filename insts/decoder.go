package insts

// Decoder decodes MIPS-lite machine words into instructions.
type Decoder struct{}

// NewDecoder creates a new MIPS-lite instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit MIPS-lite instruction word. Decode is total:
// words with an unrecognized opcode field come back as a NOP with
// FormatInvalid so the rest of the simulator never sees a partial
// instruction.
//
// Encoding: opcode | rs | rt | rd/imm16
//
//	bits [31:26] opcode
//	bits [25:21] rs
//	bits [20:16] rt
//	bits [15:11] rd        (R-format)
//	bits [15:0]  imm16     (I-format, sign-extended)
func (d *Decoder) Decode(word uint32) Instruction {
	op := Op((word >> 26) & 0x3F)

	switch op {
	case OpADD, OpSUB, OpMUL, OpOR, OpAND, OpXOR:
		return Instruction{
			Op:     op,
			Format: FormatR,
			Rs:     uint8((word >> 21) & 0x1F),
			Rt:     uint8((word >> 16) & 0x1F),
			Rd:     uint8((word >> 11) & 0x1F),
		}
	case OpADDI, OpSUBI, OpMULI, OpORI, OpANDI, OpXORI,
		OpLDW, OpSTW, OpBZ, OpBEQ:
		return Instruction{
			Op:     op,
			Format: FormatI,
			Rs:     uint8((word >> 21) & 0x1F),
			Rt:     uint8((word >> 16) & 0x1F),
			Imm:    int32(int16(word & 0xFFFF)),
		}
	case OpJR:
		// JR only uses rs; the remaining fields are ignored.
		return Instruction{
			Op:     op,
			Format: FormatI,
			Rs:     uint8((word >> 21) & 0x1F),
		}
	case OpHALT:
		return Instruction{Op: OpHALT, Format: FormatI}
	case OpNOP:
		return Instruction{Op: OpNOP, Format: FormatI}
	default:
		return Instruction{Op: OpNOP, Format: FormatInvalid}
	}
}
