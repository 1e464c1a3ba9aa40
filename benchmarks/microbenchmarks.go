// Package benchmarks provides small MIPS-lite programs for comparing
// the timing modes against each other and against functional mode.
package benchmarks

import "github.com/ajainPSU/ECE486-Project/insts"

// Benchmark defines a single benchmark program with its expected
// architectural result.
type Benchmark struct {
	// Name identifies the benchmark.
	Name string

	// Description explains what the benchmark exercises.
	Description string

	// Program is the memory image, one instruction per word.
	Program []uint32

	// ResultReg and ResultValue give the register to check after the
	// run and the value it must hold.
	ResultReg   uint8
	ResultValue int32
}

// Microbenchmarks returns the standard benchmark set. Each program
// targets one pipeline behavior: independent issue, RAW dependency
// chains, memory traffic, and branch-heavy control flow.
func Microbenchmarks() []Benchmark {
	return []Benchmark{
		arithmeticSequential(),
		dependencyChain(),
		memorySequential(),
		countdownLoop(),
	}
}

// arithmeticSequential issues independent ADDIs so neither timing mode
// should stall.
func arithmeticSequential() Benchmark {
	program := make([]uint32, 0, 21)
	for round := 0; round < 4; round++ {
		for reg := uint8(1); reg <= 5; reg++ {
			program = append(program, insts.EncodeI(insts.OpADDI, reg, reg, 1))
		}
	}
	program = append(program, insts.EncodeI(insts.OpHALT, 0, 0, 0))

	return Benchmark{
		Name:        "arithmetic_sequential",
		Description: "20 independent ADDIs, no hazards",
		Program:     program,
		ResultReg:   1,
		ResultValue: 4,
	}
}

// dependencyChain increments one register back to back, the worst case
// for the no-forwarding pipeline.
func dependencyChain() Benchmark {
	program := make([]uint32, 0, 21)
	for i := 0; i < 20; i++ {
		program = append(program, insts.EncodeI(insts.OpADDI, 1, 1, 1))
	}
	program = append(program, insts.EncodeI(insts.OpHALT, 0, 0, 0))

	return Benchmark{
		Name:        "dependency_chain",
		Description: "20 dependent ADDIs, a RAW hazard per instruction",
		Program:     program,
		ResultReg:   1,
		ResultValue: 20,
	}
}

// memorySequential stores a counter to consecutive words and loads the
// last one back, ending with a load-use pair.
func memorySequential() Benchmark {
	program := []uint32{
		insts.EncodeI(insts.OpADDI, 1, 0, 0x200), // base
		insts.EncodeI(insts.OpADDI, 2, 0, 7),     // value
		insts.EncodeI(insts.OpSTW, 2, 1, 0),
		insts.EncodeI(insts.OpSTW, 2, 1, 4),
		insts.EncodeI(insts.OpSTW, 2, 1, 8),
		insts.EncodeI(insts.OpLDW, 3, 1, 8),
		insts.EncodeR(insts.OpADD, 4, 3, 3), // load-use consumer
		insts.EncodeI(insts.OpHALT, 0, 0, 0),
	}

	return Benchmark{
		Name:        "memory_sequential",
		Description: "stores, a load, and a load-use consumer",
		Program:     program,
		ResultReg:   4,
		ResultValue: 14,
	}
}

// countdownLoop sums 1..10 with a backward branch per iteration.
func countdownLoop() Benchmark {
	program := []uint32{
		insts.EncodeI(insts.OpADDI, 1, 0, 10),
		insts.EncodeI(insts.OpADDI, 2, 0, 0),
		insts.EncodeR(insts.OpADD, 2, 2, 1),  // loop: sum += counter
		insts.EncodeI(insts.OpSUBI, 1, 1, 1), // counter--
		insts.EncodeI(insts.OpBZ, 0, 1, 1),   // exit when counter == 0
		insts.EncodeI(insts.OpBEQ, 0, 0, -4), // back to loop
		insts.EncodeI(insts.OpHALT, 0, 0, 0),
	}

	return Benchmark{
		Name:        "countdown_loop",
		Description: "10-iteration loop, branch-heavy",
		Program:     program,
		ResultReg:   2,
		ResultValue: 55,
	}
}
