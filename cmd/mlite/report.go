package main

import (
	"fmt"
	"io"

	"github.com/ajainPSU/ECE486-Project/emu"
	"github.com/ajainPSU/ECE486-Project/timing/pipeline"
)

// Report is the end-of-run summary printed for every mode: instruction
// counts by category, the final architectural state, and, for timing
// modes, the pipeline statistics.
type Report struct {
	ImagePath string
	Mode      string
	FinalPC   uint32
	Halted    bool

	// Stats is nil in functional mode.
	Stats *pipeline.Statistics
}

// Print writes the report, reading the final register and memory state
// from the emulator.
func (r *Report) Print(w io.Writer, emulator *emu.Emulator) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Program: %s\n", r.ImagePath)
	fmt.Fprintf(w, "Mode: %s\n", r.Mode)
	if !r.Halted {
		fmt.Fprintf(w, "Warning: program ended without HALT\n")
	}

	counts := emulator.Counts()
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Instruction counts:\n")
	fmt.Fprintf(w, "  Total:             %d\n", counts.Total)
	fmt.Fprintf(w, "  Arithmetic:        %d\n", counts.Arithmetic)
	fmt.Fprintf(w, "  Logical:           %d\n", counts.Logical)
	fmt.Fprintf(w, "  Memory access:     %d\n", counts.MemoryAccess)
	fmt.Fprintf(w, "  Control transfer:  %d\n", counts.ControlTransfer)

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Final state:\n")
	fmt.Fprintf(w, "  PC: %d\n", r.FinalPC)
	for _, reg := range emulator.RegFile().WrittenRegs() {
		fmt.Fprintf(w, "  R%d: %d\n", reg, emulator.RegFile().ReadReg(reg))
	}

	modified := emulator.Memory().ModifiedAddrs()
	if len(modified) > 0 {
		fmt.Fprintf(w, "\n")
		fmt.Fprintf(w, "Memory:\n")
		for _, addr := range modified {
			value, err := emulator.Memory().ReadWord(addr)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "  [%d]: %d\n", addr, value)
		}
	}

	if r.Stats != nil {
		fmt.Fprintf(w, "\n")
		fmt.Fprintf(w, "Timing:\n")
		fmt.Fprintf(w, "  Cycles:  %d\n", r.Stats.Cycles)
		fmt.Fprintf(w, "  Stalls:  %d\n", r.Stats.Stalls)
		fmt.Fprintf(w, "  Flushes: %d\n", r.Stats.Flushes)
		fmt.Fprintf(w, "  CPI:     %.2f\n", r.Stats.CPI())
	}
}
