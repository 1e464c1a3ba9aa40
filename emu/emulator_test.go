package emu_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ajainPSU/ECE486-Project/emu"
	"github.com/ajainPSU/ECE486-Project/insts"
)

var _ = Describe("Emulator", func() {
	var e *emu.Emulator

	BeforeEach(func() {
		e = emu.NewEmulator()
	})

	Describe("NewEmulator", func() {
		It("should create an emulator with initialized components", func() {
			Expect(e).NotTo(BeNil())
			Expect(e.RegFile()).NotTo(BeNil())
			Expect(e.Memory()).NotTo(BeNil())
		})
	})

	Describe("LoadProgram", func() {
		It("should place the image at address 0 and reset the PC", func() {
			program := []uint32{
				insts.EncodeI(insts.OpADDI, 1, 0, 5),
				insts.EncodeI(insts.OpHALT, 0, 0, 0),
			}

			e.LoadProgram(program)

			word, err := e.Memory().Fetch(0)
			Expect(err).To(BeNil())
			Expect(word).To(Equal(program[0]))
			Expect(e.PC()).To(Equal(uint32(0)))
		})
	})

	Describe("Step", func() {
		Context("ALU instructions", func() {
			It("should execute ADDI", func() {
				e.LoadProgram([]uint32{insts.EncodeI(insts.OpADDI, 2, 1, 16)})
				e.RegFile().WriteReg(1, 10)

				result := e.Step()

				Expect(result.Err).To(BeNil())
				Expect(e.RegFile().ReadReg(2)).To(Equal(int32(26)))
				Expect(e.PC()).To(Equal(uint32(4)))
			})

			It("should execute SUB", func() {
				e.LoadProgram([]uint32{insts.EncodeR(insts.OpSUB, 3, 1, 2)})
				e.RegFile().WriteReg(1, 10)
				e.RegFile().WriteReg(2, 3)

				result := e.Step()

				Expect(result.Err).To(BeNil())
				Expect(e.RegFile().ReadReg(3)).To(Equal(int32(7)))
			})

			It("should execute MULI with a negative immediate", func() {
				e.LoadProgram([]uint32{insts.EncodeI(insts.OpMULI, 2, 1, -3)})
				e.RegFile().WriteReg(1, 7)

				e.Step()

				Expect(e.RegFile().ReadReg(2)).To(Equal(int32(-21)))
			})

			It("should execute XOR", func() {
				e.LoadProgram([]uint32{insts.EncodeR(insts.OpXOR, 3, 1, 2)})
				e.RegFile().WriteReg(1, 0b1100)
				e.RegFile().WriteReg(2, 0b1010)

				e.Step()

				Expect(e.RegFile().ReadReg(3)).To(Equal(int32(0b0110)))
			})

			It("should discard writes to register 0", func() {
				e.LoadProgram([]uint32{insts.EncodeI(insts.OpADDI, 0, 1, 99)})
				e.RegFile().WriteReg(1, 1)

				e.Step()

				Expect(e.RegFile().ReadReg(0)).To(Equal(int32(0)))
			})
		})

		Context("memory instructions", func() {
			It("should execute LDW", func() {
				e.LoadProgram([]uint32{insts.EncodeI(insts.OpLDW, 2, 1, 8)})
				e.RegFile().WriteReg(1, 0x100)
				Expect(e.Memory().WriteWord(0x108, -42)).To(Succeed())

				result := e.Step()

				Expect(result.Err).To(BeNil())
				Expect(e.RegFile().ReadReg(2)).To(Equal(int32(-42)))
			})

			It("should execute STW", func() {
				e.LoadProgram([]uint32{insts.EncodeI(insts.OpSTW, 2, 1, 4)})
				e.RegFile().WriteReg(1, 0x200)
				e.RegFile().WriteReg(2, 77)

				result := e.Step()

				Expect(result.Err).To(BeNil())
				value, err := e.Memory().ReadWord(0x204)
				Expect(err).To(BeNil())
				Expect(value).To(Equal(int32(77)))
			})

			It("should fail on an out-of-range address", func() {
				e.LoadProgram([]uint32{insts.EncodeI(insts.OpLDW, 2, 1, 0)})
				e.RegFile().WriteReg(1, 0x2000)

				result := e.Step()

				Expect(result.Err).To(HaveOccurred())
				var addrErr *emu.AddressError
				Expect(errors.As(result.Err, &addrErr)).To(BeTrue())
				Expect(addrErr.Addr).To(Equal(uint32(0x2000)))
			})
		})

		Context("control-transfer instructions", func() {
			It("should take BZ when the register is zero", func() {
				// Target: PC + 4 + 3*4 = 16
				e.LoadProgram([]uint32{insts.EncodeI(insts.OpBZ, 0, 1, 3)})

				e.Step()

				Expect(e.PC()).To(Equal(uint32(16)))
			})

			It("should fall through BZ when the register is nonzero", func() {
				e.LoadProgram([]uint32{insts.EncodeI(insts.OpBZ, 0, 1, 3)})
				e.RegFile().WriteReg(1, 1)

				e.Step()

				Expect(e.PC()).To(Equal(uint32(4)))
			})

			It("should take BEQ when the operands are equal", func() {
				e.LoadProgram([]uint32{insts.EncodeI(insts.OpBEQ, 2, 1, 5)})
				e.RegFile().WriteReg(1, 9)
				e.RegFile().WriteReg(2, 9)

				e.Step()

				Expect(e.PC()).To(Equal(uint32(24)))
			})

			It("should take a backward BEQ", func() {
				program := []uint32{
					insts.EncodeI(insts.OpNOP, 0, 0, 0),
					insts.EncodeI(insts.OpNOP, 0, 0, 0),
					insts.EncodeI(insts.OpBEQ, 0, 0, -3),
				}
				e.LoadProgram(program)
				e.Step()
				e.Step()

				e.Step()

				// PC = 8 + 4 + (-3)*4 = 0
				Expect(e.PC()).To(Equal(uint32(0)))
			})

			It("should jump through JR", func() {
				e.LoadProgram([]uint32{insts.EncodeI(insts.OpJR, 0, 31, 0)})
				e.RegFile().WriteReg(31, 0x40)

				e.Step()

				Expect(e.PC()).To(Equal(uint32(0x40)))
			})
		})

		Context("HALT", func() {
			It("should halt and advance the PC past HALT", func() {
				e.LoadProgram([]uint32{insts.EncodeI(insts.OpHALT, 0, 0, 0)})

				result := e.Step()

				Expect(result.Halted).To(BeTrue())
				Expect(e.Halted()).To(BeTrue())
				Expect(e.PC()).To(Equal(uint32(4)))
			})
		})
	})

	Describe("Run", func() {
		It("should run a program to completion", func() {
			// R1 = 5; R2 = 10; R3 = R1 + R2; HALT
			program := []uint32{
				insts.EncodeI(insts.OpADDI, 1, 0, 5),
				insts.EncodeI(insts.OpADDI, 2, 0, 10),
				insts.EncodeR(insts.OpADD, 3, 1, 2),
				insts.EncodeI(insts.OpHALT, 0, 0, 0),
			}
			e.LoadProgram(program)

			result, err := e.Run()

			Expect(err).To(BeNil())
			Expect(result.Halted).To(BeTrue())
			Expect(result.FinalPC).To(Equal(uint32(16)))
			Expect(e.RegFile().ReadReg(3)).To(Equal(int32(15)))
		})

		It("should execute a counted loop", func() {
			// R1 = 5 (counter); R2 = 0 (sum)
			// loop: R2 += R1; R1 -= 1; BZ R1, +2 -> exit; BEQ R0, R0, loop
			program := []uint32{
				insts.EncodeI(insts.OpADDI, 1, 0, 5),
				insts.EncodeI(insts.OpADDI, 2, 0, 0),
				insts.EncodeR(insts.OpADD, 2, 2, 1),
				insts.EncodeI(insts.OpSUBI, 1, 1, 1),
				insts.EncodeI(insts.OpBZ, 0, 1, 1),
				insts.EncodeI(insts.OpBEQ, 0, 0, -4),
				insts.EncodeI(insts.OpHALT, 0, 0, 0),
			}
			e.LoadProgram(program)

			result, err := e.Run()

			Expect(err).To(BeNil())
			Expect(result.Halted).To(BeTrue())
			Expect(e.RegFile().ReadReg(2)).To(Equal(int32(15)))
			Expect(e.RegFile().ReadReg(1)).To(Equal(int32(0)))
		})

		It("should report an abnormal end when fetch runs off memory", func() {
			// No HALT anywhere; PC walks off the end of the 4KB space.
			program := make([]uint32, emu.NumWords)
			for i := range program {
				program[i] = insts.EncodeI(insts.OpNOP, 0, 0, 0)
			}
			e.LoadProgram(program)

			result, err := e.Run()

			Expect(err).To(BeNil())
			Expect(result.Halted).To(BeFalse())
			Expect(result.FinalPC).To(Equal(uint32(emu.MemSizeBytes)))
		})

		It("should stop at the instruction ceiling", func() {
			e = emu.NewEmulator(emu.WithMaxInstructions(10))
			// BEQ R0, R0, -1 branches to itself forever.
			e.LoadProgram([]uint32{insts.EncodeI(insts.OpBEQ, 0, 0, -1)})

			_, err := e.Run()

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Counts", func() {
		It("should count retired instructions by category", func() {
			program := []uint32{
				insts.EncodeI(insts.OpADDI, 1, 0, 0x100), // arithmetic
				insts.EncodeI(insts.OpORI, 2, 0, 0xF),    // logical
				insts.EncodeI(insts.OpSTW, 2, 1, 0),      // memory
				insts.EncodeI(insts.OpNOP, 0, 0, 0),      // total only
				insts.EncodeI(insts.OpHALT, 0, 0, 0),     // control
			}
			e.LoadProgram(program)

			_, err := e.Run()
			Expect(err).To(BeNil())

			counts := e.Counts()
			Expect(counts.Total).To(Equal(uint64(5)))
			Expect(counts.Arithmetic).To(Equal(uint64(1)))
			Expect(counts.Logical).To(Equal(uint64(1)))
			Expect(counts.MemoryAccess).To(Equal(uint64(1)))
			Expect(counts.ControlTransfer).To(Equal(uint64(1)))
		})
	})

	Describe("final-state tracking", func() {
		It("should record written registers and modified memory", func() {
			program := []uint32{
				insts.EncodeI(insts.OpADDI, 1, 0, 0x100),
				insts.EncodeI(insts.OpADDI, 2, 0, 7),
				insts.EncodeI(insts.OpSTW, 2, 1, 4),
				insts.EncodeI(insts.OpHALT, 0, 0, 0),
			}
			e.LoadProgram(program)

			_, err := e.Run()
			Expect(err).To(BeNil())

			Expect(e.RegFile().WrittenRegs()).To(Equal([]uint8{1, 2}))
			Expect(e.Memory().ModifiedAddrs()).To(Equal([]uint32{0x104}))
		})
	})
})
