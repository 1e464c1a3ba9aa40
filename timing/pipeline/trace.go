package pipeline

import (
	"fmt"
	"io"

	"github.com/ajainPSU/ECE486-Project/insts"
)

// Tracer receives pipeline events as they happen. The engine only
// reports through it; a tracer can never influence timing decisions.
type Tracer interface {
	// CycleStart is called at the beginning of every clock cycle.
	CycleStart(cycle uint64)

	// Stall is called when the instruction at pc holds in decode for a
	// cycle because of a data hazard.
	Stall(cycle uint64, pc uint32, inst insts.Instruction)

	// Flush is called when a taken branch squashes the fetch and
	// decode stages and redirects fetch to target.
	Flush(cycle uint64, target uint32)

	// Commit is called when an instruction retires in writeback.
	Commit(cycle uint64, pc uint32, inst insts.Instruction)
}

// nopTracer is the default tracer; it discards every event.
type nopTracer struct{}

func (nopTracer) CycleStart(uint64)                       {}
func (nopTracer) Stall(uint64, uint32, insts.Instruction) {}
func (nopTracer) Flush(uint64, uint32)                    {}
func (nopTracer) Commit(uint64, uint32, insts.Instruction) {
}

// WriterTracer writes one line per event to an io.Writer.
type WriterTracer struct {
	w io.Writer
}

// NewWriterTracer creates a tracer that logs events to w.
func NewWriterTracer(w io.Writer) *WriterTracer {
	return &WriterTracer{w: w}
}

// CycleStart logs the cycle boundary.
func (t *WriterTracer) CycleStart(cycle uint64) {
	fmt.Fprintf(t.w, "cycle %d\n", cycle)
}

// Stall logs a data-hazard stall.
func (t *WriterTracer) Stall(cycle uint64, pc uint32, inst insts.Instruction) {
	fmt.Fprintf(t.w, "cycle %d: stall %v at PC=0x%X\n", cycle, inst.Op, pc)
}

// Flush logs a branch misprediction flush.
func (t *WriterTracer) Flush(cycle uint64, target uint32) {
	fmt.Fprintf(t.w, "cycle %d: flush, redirect to PC=0x%X\n", cycle, target)
}

// Commit logs an instruction retiring.
func (t *WriterTracer) Commit(cycle uint64, pc uint32, inst insts.Instruction) {
	fmt.Fprintf(t.w, "cycle %d: commit %v at PC=0x%X\n", cycle, inst.Op, pc)
}
