package benchmarks_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ajainPSU/ECE486-Project/benchmarks"
	"github.com/ajainPSU/ECE486-Project/emu"
	"github.com/ajainPSU/ECE486-Project/timing/pipeline"
)

func runFunctional(b benchmarks.Benchmark) *emu.Emulator {
	emulator := emu.NewEmulator()
	emulator.LoadProgram(b.Program)
	result, err := emulator.Run()
	Expect(err).To(BeNil())
	Expect(result.Halted).To(BeTrue())
	return emulator
}

func runTiming(b benchmarks.Benchmark, opts ...pipeline.PipelineOption) (
	*emu.Emulator, pipeline.Statistics,
) {
	emulator := emu.NewEmulator()
	emulator.LoadProgram(b.Program)
	pipe := pipeline.NewPipeline(emulator, opts...)
	result, err := pipe.Run()
	Expect(err).To(BeNil())
	Expect(result.Halted).To(BeTrue())
	return emulator, result.Stats
}

var _ = Describe("CPI comparison", func() {
	for _, b := range benchmarks.Microbenchmarks() {
		b := b

		Describe(b.Name, func() {
			It("should retire the same result in every mode", func() {
				functional := runFunctional(b)
				noFwd, _ := runTiming(b)
				withFwd, _ := runTiming(b, pipeline.WithForwarding())

				expected := functional.RegFile().ReadReg(b.ResultReg)
				Expect(expected).To(Equal(b.ResultValue))
				Expect(noFwd.RegFile().ReadReg(b.ResultReg)).To(Equal(expected))
				Expect(withFwd.RegFile().ReadReg(b.ResultReg)).To(Equal(expected))
			})

			It("should never be slower with forwarding", func() {
				_, noFwd := runTiming(b)
				_, withFwd := runTiming(b, pipeline.WithForwarding())

				Expect(withFwd.Cycles).To(BeNumerically("<=", noFwd.Cycles))
				Expect(withFwd.Stalls).To(BeNumerically("<=", noFwd.Stalls))
				Expect(withFwd.CPI()).To(BeNumerically("<=", noFwd.CPI()))
			})
		})
	}

	It("should show the forwarding gain on the dependency chain", func() {
		var chain benchmarks.Benchmark
		for _, b := range benchmarks.Microbenchmarks() {
			if b.Name == "dependency_chain" {
				chain = b
			}
		}
		Expect(chain.Program).NotTo(BeEmpty())

		_, noFwd := runTiming(chain)
		_, withFwd := runTiming(chain, pipeline.WithForwarding())

		// Every ADDI after the first stalls twice without forwarding and
		// not at all with it.
		Expect(noFwd.Stalls).To(Equal(uint64(38)))
		Expect(withFwd.Stalls).To(BeZero())
	})

	It("should not stall the independent arithmetic stream", func() {
		var seq benchmarks.Benchmark
		for _, b := range benchmarks.Microbenchmarks() {
			if b.Name == "arithmetic_sequential" {
				seq = b
			}
		}
		Expect(seq.Program).NotTo(BeEmpty())

		_, noFwd := runTiming(seq)

		Expect(noFwd.Stalls).To(BeZero())
		Expect(noFwd.Flushes).To(BeZero())
		Expect(noFwd.Cycles).To(Equal(uint64(len(seq.Program) + 4)))
	})
})
