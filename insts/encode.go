package insts

// EncodeR assembles an R-format instruction word.
func EncodeR(op Op, rd, rs, rt uint8) uint32 {
	return uint32(op)<<26 |
		uint32(rs&0x1F)<<21 |
		uint32(rt&0x1F)<<16 |
		uint32(rd&0x1F)<<11
}

// EncodeI assembles an I-format instruction word. The immediate is
// truncated to its 16-bit field; Decode sign-extends it back.
func EncodeI(op Op, rt, rs uint8, imm int16) uint32 {
	return uint32(op)<<26 |
		uint32(rs&0x1F)<<21 |
		uint32(rt&0x1F)<<16 |
		uint32(uint16(imm))
}
