package emu

import "github.com/ajainPSU/ECE486-Project/insts"

// Counts aggregates retired-instruction statistics by category. NOPs
// and invalid encodings count toward the total only.
type Counts struct {
	Total           uint64
	Arithmetic      uint64
	Logical         uint64
	MemoryAccess    uint64
	ControlTransfer uint64
}

// Record counts one retired instruction.
func (c *Counts) Record(cat insts.Category) {
	c.Total++
	switch cat {
	case insts.CategoryArithmetic:
		c.Arithmetic++
	case insts.CategoryLogical:
		c.Logical++
	case insts.CategoryMemory:
		c.MemoryAccess++
	case insts.CategoryControl:
		c.ControlTransfer++
	}
}
