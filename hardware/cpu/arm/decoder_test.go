package arm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gba-core/gba/hardware/cpu/arm"
	"github.com/gba-core/gba/hardware/cpu/registers"
)

var _ = Describe("Decoder", func() {
	var (
		regs *registers.File
		mem  *fakeMem
	)

	BeforeEach(func() {
		regs = registers.NewFile(0)
		mem = &fakeMem{}
		atPC(regs, 0)
	})

	Describe("Data Processing Immediate", func() {
		It("decodes AND R2,R0,#0x0F", func() {
			regs.SetR(0, 0xFF)
			// cond=AL I=1 AND S=0 Rn=0 Rd=2 rot=0 imm8=0x0F -> 0xE200200F
			_, err := arm.Execute(0xE200200F, regs, mem)
			Expect(err).NotTo(HaveOccurred())
			Expect(regs.R(2)).To(Equal(uint32(0x0F)))
		})

		It("decodes EOR R3,R1,#0xFF", func() {
			regs.SetR(1, 0xFF00)
			// 0xE22130FF
			_, err := arm.Execute(0xE22130FF, regs, mem)
			Expect(err).NotTo(HaveOccurred())
			Expect(regs.R(3)).To(Equal(uint32(0xFFFF)))
		})

		It("decodes SUBS R4,R0,#1 and sets the borrow-as-carry-clear flag", func() {
			regs.SetR(0, 0)
			// 0xE2504001
			_, err := arm.Execute(0xE2504001, regs, mem)
			Expect(err).NotTo(HaveOccurred())
			Expect(regs.R(4)).To(Equal(uint32(0xFFFF_FFFF)))
			Expect(regs.CPSR().C()).To(BeFalse())
			Expect(regs.CPSR().N()).To(BeTrue())
		})

		It("decodes CMP R0,#5 as a comparison rather than a PSR transfer when S is set", func() {
			regs.SetR(0, 5)
			// 0xE3500005 (S=1 distinguishes CMP from MRS/MSR's shared bit shape)
			_, err := arm.Execute(0xE3500005, regs, mem)
			Expect(err).NotTo(HaveOccurred())
			Expect(regs.R(0)).To(Equal(uint32(5)), "CMP must not write its destination")
			Expect(regs.CPSR().Z()).To(BeTrue())
		})

		It("decodes TST R0,#0x01 leaving R0 untouched", func() {
			regs.SetR(0, 0x02)
			// 0xE3100001
			_, err := arm.Execute(0xE3100001, regs, mem)
			Expect(err).NotTo(HaveOccurred())
			Expect(regs.R(0)).To(Equal(uint32(0x02)))
			Expect(regs.CPSR().Z()).To(BeTrue(), "0x02 & 0x01 == 0")
		})

		It("decodes MVN R5,#0", func() {
			// 0xE3E05000
			_, err := arm.Execute(0xE3E05000, regs, mem)
			Expect(err).NotTo(HaveOccurred())
			Expect(regs.R(5)).To(Equal(uint32(0xFFFF_FFFF)))
		})

		It("decodes BIC R0,R0,#0xFF clearing only the low byte", func() {
			regs.SetR(0, 0xABCD_EF12)
			// 0xE3C000FF
			_, err := arm.Execute(0xE3C000FF, regs, mem)
			Expect(err).NotTo(HaveOccurred())
			Expect(regs.R(0)).To(Equal(uint32(0xABCD_EF00)))
		})

		It("decodes ADC R6,R0,#1 folding in a set carry flag", func() {
			regs.SetR(0, 1)
			regs.SetCPSR(regs.CPSR().WithC(true))
			// 0xE2A06001
			_, err := arm.Execute(0xE2A06001, regs, mem)
			Expect(err).NotTo(HaveOccurred())
			Expect(regs.R(6)).To(Equal(uint32(3)))
		})

		It("decodes a rotated 8-bit immediate, ORR R2,R1,#0xF0000000", func() {
			regs.SetR(1, 0)
			// imm8=0x0F rot=2 (rotate right by 4) -> 0xF0000000; 0xE381220F
			_, err := arm.Execute(0xE381220F, regs, mem)
			Expect(err).NotTo(HaveOccurred())
			Expect(regs.R(2)).To(Equal(uint32(0xF000_0000)))
		})
	})

	Describe("Data Processing Register", func() {
		It("decodes ADD R2,R0,R1,LSL#2", func() {
			regs.SetR(0, 1)
			regs.SetR(1, 4)
			// 0xE0802101
			_, err := arm.Execute(0xE0802101, regs, mem)
			Expect(err).NotTo(HaveOccurred())
			Expect(regs.R(2)).To(Equal(uint32(1 + 4<<2)))
		})

		It("decodes MOVS R0,R1,ROR#1 and carries the rotated-out bit into C", func() {
			regs.SetR(1, 1)
			// 0xE1B000E1
			_, err := arm.Execute(0xE1B000E1, regs, mem)
			Expect(err).NotTo(HaveOccurred())
			Expect(regs.R(0)).To(Equal(uint32(0x8000_0000)))
			Expect(regs.CPSR().C()).To(BeTrue())
		})
	})

	Describe("Multiply Instructions", func() {
		It("decodes MLA R3,R0,R1,R2 as Rd = Rm*Rs + Rn", func() {
			regs.SetR(0, 3) // Rm
			regs.SetR(1, 4) // Rs
			regs.SetR(2, 5) // Rn (accumulate)
			// 0xE0232190
			_, err := arm.Execute(0xE0232190, regs, mem)
			Expect(err).NotTo(HaveOccurred())
			Expect(regs.R(3)).To(Equal(uint32(3*4 + 5)))
		})
	})

	Describe("Halfword and Signed Transfer Instructions", func() {
		It("decodes STRH R1,[R0,#4] then LDRH R2,[R0,#4] as a round trip", func() {
			regs.SetR(0, 0x1000)
			regs.SetR(1, 0xBEEF)
			// 0xE1C010B4
			_, err := arm.Execute(0xE1C010B4, regs, mem)
			Expect(err).NotTo(HaveOccurred())
			// 0xE1D020B4
			_, err = arm.Execute(0xE1D020B4, regs, mem)
			Expect(err).NotTo(HaveOccurred())
			Expect(regs.R(2)).To(Equal(uint32(0xBEEF)))
		})

		It("decodes LDRSB R3,[R0,#0] sign-extending a negative byte", func() {
			regs.SetR(0, 0x2000)
			mem.Write8(0x2000, 0x80)
			// 0xE1D030D0
			_, err := arm.Execute(0xE1D030D0, regs, mem)
			Expect(err).NotTo(HaveOccurred())
			Expect(regs.R(3)).To(Equal(uint32(0xFFFF_FF80)))
		})
	})

	Describe("Single Data Transfer Instructions", func() {
		It("decodes STRB R1,[R0,#1] touching only the addressed byte", func() {
			regs.SetR(0, 0x3000)
			regs.SetR(1, 0xABCD_EF99)
			mem.Write32(0x3000, 0x1111_1111)
			// 0xE5C01001
			_, err := arm.Execute(0xE5C01001, regs, mem)
			Expect(err).NotTo(HaveOccurred())
			Expect(mem.Read8(0x3001)).To(Equal(uint8(0x99)))
			Expect(mem.Read8(0x3000)).To(Equal(uint8(0x11)))
		})
	})

	Describe("Block Data Transfer Instructions", func() {
		It("decodes STMIA R0!,{R1,R2} then LDMIA R0!,{R1,R2} as a round trip", func() {
			regs.SetR(0, 0x4000)
			regs.SetR(1, 0x1111_1111)
			regs.SetR(2, 0x2222_2222)
			// 0xE8A00006
			_, err := arm.Execute(0xE8A00006, regs, mem)
			Expect(err).NotTo(HaveOccurred())
			Expect(regs.R(0)).To(Equal(uint32(0x4008)))

			regs.SetR(1, 0)
			regs.SetR(2, 0)
			regs.SetR(0, 0x4000)
			// 0xE8B00006
			_, err = arm.Execute(0xE8B00006, regs, mem)
			Expect(err).NotTo(HaveOccurred())
			Expect(regs.R(1)).To(Equal(uint32(0x1111_1111)))
			Expect(regs.R(2)).To(Equal(uint32(0x2222_2222)))
		})
	})

	Describe("PSR Transfer Instructions", func() {
		It("decodes MRS R3,CPSR", func() {
			regs.SetCPSR(regs.CPSR().WithZ(true))
			// 0xE10F3000
			_, err := arm.Execute(0xE10F3000, regs, mem)
			Expect(err).NotTo(HaveOccurred())
			Expect(regs.R(3) & 0x4000_0000).To(Equal(uint32(0x4000_0000)), "Z should be visible in the transferred word")
		})

		It("decodes MSR CPSR_f,R0 touching only the flag byte", func() {
			regs.SetR(0, 0xF000_0000)
			before := regs.CPSR()
			// 0xE128F000
			_, err := arm.Execute(0xE128F000, regs, mem)
			Expect(err).NotTo(HaveOccurred())
			Expect(regs.CPSR().Mode()).To(Equal(before.Mode()), "the mode field sits outside the flags byte and must be untouched")
			Expect(regs.CPSR().N()).To(BeTrue())
		})

		It("decodes a rotated MSR immediate instead of applying RRX semantics", func() {
			// imm8=0x34 rot=15 (rotate right by 30) -> 0xD0 in the low byte;
			// this exercises the rot==0 vs rot!=0 split in the immediate
			// operand decode, the same split operand2 already made.
			// 0xE321FF34, field mask c (bits19-16=0001)
			_, err := arm.Execute(0xE321FF34, regs, mem)
			Expect(err).NotTo(HaveOccurred())
			Expect(uint32(regs.CPSR()) & 0xFF).To(Equal(uint32(0xD0)))
		})

		It("decodes an unrotated MSR immediate without corrupting it via RRX", func() {
			// imm8=0x1F rot=0 -> System mode in the c field, no rotation
			// needed. A naive unconditional ROR-by-zero-as-RRX would instead
			// rotate the carry flag into bit 31 and halve the value.
			// 0xE321F01F
			_, err := arm.Execute(0xE321F01F, regs, mem)
			Expect(err).NotTo(HaveOccurred())
			Expect(regs.CPSR().Mode()).To(Equal(registers.System))
		})
	})

	Describe("Branch Instructions", func() {
		It("decodes BL adding the link-bit offset and saving the return address", func() {
			atPC(regs, 0x1000)
			// 0xEB000002: link=1, offset=2 words -> PC-relative +8, plus the
			// fixed architectural +8 pipeline bias already folded into PC().
			res, err := arm.Execute(0xEB000002, regs, mem)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.PipelineReload).To(BeTrue())
			Expect(regs.R(14)).To(Equal(uint32(0x1004)))
			Expect(regs.PC()).To(Equal(uint32(0x1000 + 8 + 8)))
		})

		It("decodes BX switching to Thumb when the target's low bit is set", func() {
			regs.SetR(0, 0x2001)
			// BX R0: 0xE12FFF10
			res, err := arm.Execute(0xE12FFF10, regs, mem)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.PipelineReload).To(BeTrue())
			Expect(regs.CPSR().T()).To(BeTrue())
			Expect(regs.PC()).To(Equal(uint32(0x2000)))
		})
	})

	Describe("Unknown Instructions", func() {
		It("surfaces the undefined-coprocessor-space encoding as an error without panicking", func() {
			// bits27-25=011, bit4=1: 0xE6000010
			_, err := arm.Execute(0xE6000010, regs, mem)
			Expect(err).To(HaveOccurred())
		})

		It("surfaces a coprocessor data operation as an error", func() {
			// bits27-25=110: cond(E) 110 + zero rest -> 0xEC000000
			_, err := arm.Execute(0xEC000000, regs, mem)
			Expect(err).To(HaveOccurred())
		})
	})
})
