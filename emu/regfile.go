// Package emu provides functional MIPS-lite emulation.
package emu

// RegFile represents the MIPS-lite register file: 32 general-purpose
// 32-bit registers. Register 0 is hardwired to zero; it reads as 0 and
// writes to it are discarded. The register file also remembers which
// registers a program has written, for the final-state report.
type RegFile struct {
	regs    [32]int32
	written [32]bool
}

// ReadReg reads a register value. Register 0 always returns 0.
// Registers >= 32 (sentinel values) also return 0.
func (r *RegFile) ReadReg(reg uint8) int32 {
	if reg == 0 || reg >= 32 {
		return 0
	}
	return r.regs[reg]
}

// WriteReg writes a value to a register. Writes to register 0 and to
// registers >= 32 are ignored.
func (r *RegFile) WriteReg(reg uint8, value int32) {
	if reg == 0 || reg >= 32 {
		return
	}
	r.regs[reg] = value
	r.written[reg] = true
}

// Written reports whether the register has been written during the run.
func (r *RegFile) Written(reg uint8) bool {
	if reg >= 32 {
		return false
	}
	return r.written[reg]
}

// WrittenRegs returns the registers written during the run, in
// ascending order. Register 0 never appears.
func (r *RegFile) WrittenRegs() []uint8 {
	var regs []uint8
	for i := uint8(1); i < 32; i++ {
		if r.written[i] {
			regs = append(regs, i)
		}
	}
	return regs
}
